package units

import "github.com/cadcheme/cheuc/internal/dimension"

// Definition declares one unit symbol with its factor to the SI base unit.
type Definition struct {
	Symbol     string
	Factor     float64
	Dimensions dimension.Vector
}

// Prefix is a multiplicative scale marker such as "k" (1e3).
type Prefix struct {
	Symbol     string  `json:"symbol"`
	Multiplier float64 `json:"multiplier"`
}

// Definitions is the raw material a Table is built from.
//
// Order matters in two places: entries defined later replace earlier ones
// with the same symbol, and Prefixes is the order in which the resolver
// tries to strip a prefix from an unknown symbol.
type Definitions struct {
	Base    []Definition
	Derived []Definition

	Prefixes []Prefix

	// Prefixable lists the symbols that get a generated entry for every prefix.
	Prefixable []string

	// Exclude lists generated symbols that must not be added to the table.
	Exclude []string
}

// Clone returns a deep copy so callers can extend the defaults safely.
func (d Definitions) Clone() Definitions {
	return Definitions{
		Base:       append([]Definition(nil), d.Base...),
		Derived:    append([]Definition(nil), d.Derived...),
		Prefixes:   append([]Prefix(nil), d.Prefixes...),
		Prefixable: append([]string(nil), d.Prefixable...),
		Exclude:    append([]string(nil), d.Exclude...),
	}
}

var (
	length      = dimension.Of(map[dimension.Axis]int{dimension.Length: 1})
	mass        = dimension.Of(map[dimension.Axis]int{dimension.Mass: 1})
	duration    = dimension.Of(map[dimension.Axis]int{dimension.Time: 1})
	temperature = dimension.Of(map[dimension.Axis]int{dimension.Temperature: 1})
	current     = dimension.Of(map[dimension.Axis]int{dimension.ElectricCurrent: 1})
	amount      = dimension.Of(map[dimension.Axis]int{dimension.AmountOfSubstance: 1})
	luminous    = dimension.Of(map[dimension.Axis]int{dimension.LuminousIntensity: 1})

	force     = dimension.Of(map[dimension.Axis]int{dimension.Mass: 1, dimension.Length: 1, dimension.Time: -2})
	pressure  = dimension.Of(map[dimension.Axis]int{dimension.Mass: 1, dimension.Length: -1, dimension.Time: -2})
	energy    = dimension.Of(map[dimension.Axis]int{dimension.Mass: 1, dimension.Length: 2, dimension.Time: -2})
	power     = dimension.Of(map[dimension.Axis]int{dimension.Mass: 1, dimension.Length: 2, dimension.Time: -3})
	volume    = dimension.Of(map[dimension.Axis]int{dimension.Length: 3})
	viscosity = dimension.Of(map[dimension.Axis]int{dimension.Mass: 1, dimension.Length: -1, dimension.Time: -1})
)

// DefaultDefinitions returns the built-in chemical-engineering unit set.
// Every call returns fresh slices.
func DefaultDefinitions() Definitions {
	return Definitions{
		Base: []Definition{
			{"m", 1.0, length},
			{"ft", 0.3048, length},
			{"in", 0.0254, length},

			{"g", 0.001, mass},
			{"kg", 1.0, mass},
			{"lb", 0.453592, mass},
			{"lbm", 0.453592, mass},

			{"s", 1.0, duration},
			{"min", 60.0, duration},
			{"hr", 3600.0, duration},
			{"h", 3600.0, duration},

			// Linear anchor only; affine conversions never read this entry.
			{"K", 1.0, temperature},

			{"A", 1.0, current},

			{"mol", 1.0, amount},
			{"gmol", 1.0, amount},
			{"lbmol", 453.59237, amount},

			{"cd", 1.0, luminous},
		},
		Derived: []Definition{
			{"N", 1.0, force},
			{"lbf", 4.44822, force},

			{"Pa", 1.0, pressure},
			{"bar", 1e5, pressure},
			{"atm", 101325.0, pressure},
			{"psi", 6894.76, pressure},
			{"psia", 6894.76, pressure},
			{"torr", 133.322, pressure},
			{"mmHg", 133.322, pressure},

			{"J", 1.0, energy},
			{"cal", 4.184, energy},
			{"Btu", 1055.06, energy},
			{"kWh", 3.6e6, energy},

			{"W", 1.0, power},
			{"hp", 745.7, power},

			{"L", 0.001, volume},
			{"gal", 0.00378541, volume},

			{"cP", 0.001, viscosity},
			{"P", 0.1, viscosity},
		},
		Prefixes: []Prefix{
			{"Y", 1e24}, {"Z", 1e21}, {"E", 1e18}, {"P", 1e15}, {"T", 1e12}, {"G", 1e9}, {"M", 1e6},
			{"k", 1e3}, {"h", 1e2}, {"da", 1e1}, {"d", 1e-1}, {"c", 1e-2}, {"m", 1e-3},
			{"mu", 1e-6}, {"u", 1e-6}, {"n", 1e-9}, {"p", 1e-12}, {"f", 1e-15}, {"a", 1e-18},
			{"z", 1e-21}, {"y", 1e-24},
		},
		Prefixable: []string{"m", "g", "s", "A", "mol", "gmol", "cd", "Pa", "J", "W", "N", "L"},
		// kg-mol is written kmol; no generated kgmol entry.
		Exclude: []string{"kgmol"},
	}
}
