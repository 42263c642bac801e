package dimension

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Axis identifies one of the seven SI base dimensions.
type Axis int

const (
	Length Axis = iota
	Mass
	Time
	Temperature
	AmountOfSubstance
	ElectricCurrent
	LuminousIntensity

	// NumAxes is the number of base axes.
	NumAxes
)

// axisSymbols are the conventional dimension symbols, indexed by Axis.
var axisSymbols = [NumAxes]string{"L", "M", "T", "Θ", "N", "I", "J"}

var axisNames = [NumAxes]string{
	"Length",
	"Mass",
	"Time",
	"Temperature",
	"AmountOfSubstance",
	"ElectricCurrent",
	"LuminousIntensity",
}

// Axes lists every axis in canonical order.
func Axes() []Axis {
	axes := make([]Axis, NumAxes)
	for i := range axes {
		axes[i] = Axis(i)
	}
	return axes
}

// Symbol returns the conventional dimension symbol (L, M, T, Θ, N, I, J).
func (a Axis) Symbol() string {
	if a < 0 || a >= NumAxes {
		return "?"
	}
	return axisSymbols[a]
}

func (a Axis) String() string {
	if a < 0 || a >= NumAxes {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxis accepts a dimension symbol, its ASCII spelling "Theta", or the
// full axis name.
func ParseAxis(s string) (Axis, error) {
	if s == "Theta" {
		return Temperature, nil
	}
	for i := Axis(0); i < NumAxes; i++ {
		if s == axisSymbols[i] || s == axisNames[i] {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown dimension axis %q", s)
}

// Vector holds one integer exponent per base axis.
type Vector [NumAxes]int

// Of builds a Vector from a sparse map. Missing axes are zero.
func Of(exponents map[Axis]int) Vector {
	var v Vector
	for axis, exp := range exponents {
		if axis >= 0 && axis < NumAxes {
			v[axis] = exp
		}
	}
	return v
}

// Combine returns the exponents of a product: a[axis] + b[axis].
func Combine(a, b Vector) Vector {
	var out Vector
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// Subtract returns the exponents of a quotient: a[axis] - b[axis].
func Subtract(a, b Vector) Vector {
	var out Vector
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

// Scale returns v raised to the integer power n.
func Scale(v Vector, n int) Vector {
	var out Vector
	for i := range out {
		out[i] = v[i] * n
	}
	return out
}

// Equal reports whether a and b have the same exponent on every axis.
func Equal(a, b Vector) bool {
	return a == b
}

// IsZero reports whether v is dimensionless.
func (v Vector) IsZero() bool {
	return v == Vector{}
}

// Exponent returns the exponent of a single axis.
func (v Vector) Exponent(a Axis) int {
	if a < 0 || a >= NumAxes {
		return 0
	}
	return v[a]
}

// Map returns the non-zero exponents keyed by axis symbol.
func (v Vector) Map() map[string]int {
	m := make(map[string]int)
	for i, exp := range v {
		if exp != 0 {
			m[axisSymbols[i]] = exp
		}
	}
	return m
}

// String renders v as space-separated factors, e.g. "M L^-1 T^-2".
// A dimensionless vector renders as "1".
func (v Vector) String() string {
	var parts []string
	// Mass first reads the way derived units are usually written.
	for _, a := range []Axis{Mass, Length, Time, Temperature, AmountOfSubstance, ElectricCurrent, LuminousIntensity} {
		switch exp := v[a]; exp {
		case 0:
		case 1:
			parts = append(parts, axisSymbols[a])
		default:
			parts = append(parts, fmt.Sprintf("%s^%d", axisSymbols[a], exp))
		}
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " ")
}

// MarshalJSON encodes v as its sparse symbol map.
func (v Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Map())
}

// UnmarshalJSON decodes a sparse map keyed by axis symbol or name.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed, err := FromNames(m)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromNames builds a Vector from a map keyed by anything ParseAxis accepts.
func FromNames(m map[string]int) (Vector, error) {
	var v Vector
	for name, exp := range m {
		axis, err := ParseAxis(name)
		if err != nil {
			return Vector{}, err
		}
		v[axis] = exp
	}
	return v, nil
}
