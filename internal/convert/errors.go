package convert

import (
	"errors"
	"fmt"

	"github.com/cadcheme/cheuc/internal/dimension"
	"github.com/cadcheme/cheuc/internal/expr"
	"github.com/cadcheme/cheuc/internal/units"
)

// Error codes reported by this package. UNKNOWN_UNIT and INVALID_EXPRESSION
// come from the units and expr packages.
const (
	CodeIncompatibleDimensions = "INCOMPATIBLE_DIMENSIONS"
	CodeUnknownTemperatureUnit = "UNKNOWN_TEMPERATURE_UNIT"
)

// IncompatibleDimensionsError reports a conversion between expressions whose
// dimension vectors differ on at least one axis.
type IncompatibleDimensionsError struct {
	From           string
	To             string
	FromDimensions dimension.Vector
	ToDimensions   dimension.Vector
}

func (e *IncompatibleDimensionsError) Error() string {
	return fmt.Sprintf("%s: %s has dimensions %s, but %s has dimensions %s",
		CodeIncompatibleDimensions, e.From, e.FromDimensions, e.To, e.ToDimensions)
}

// Code returns CodeIncompatibleDimensions.
func (e *IncompatibleDimensionsError) Code() string {
	return CodeIncompatibleDimensions
}

// UnknownTemperatureUnitError is returned by the Kelvin pivot for a symbol
// outside K, degC, degF and degR. Convert checks membership first, so it
// only surfaces through direct use of ToKelvin and FromKelvin.
type UnknownTemperatureUnitError struct {
	Unit string
}

func (e *UnknownTemperatureUnitError) Error() string {
	return fmt.Sprintf("%s: unknown temperature unit %q", CodeUnknownTemperatureUnit, e.Unit)
}

// Code returns CodeUnknownTemperatureUnit.
func (e *UnknownTemperatureUnitError) Code() string {
	return CodeUnknownTemperatureUnit
}

// IsIncompatibleDimensions reports whether err wraps an IncompatibleDimensionsError.
func IsIncompatibleDimensions(err error) bool {
	var ie *IncompatibleDimensionsError
	return errors.As(err, &ie)
}

// IsUnknownTemperatureUnit reports whether err wraps an UnknownTemperatureUnitError.
func IsUnknownTemperatureUnit(err error) bool {
	var te *UnknownTemperatureUnitError
	return errors.As(err, &te)
}

// Code returns the error code of the first coded error in err's chain, or ""
// when err is nil or carries no code.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

// Compile-time checks that every error kind carries a code.
var (
	_ interface{ Code() string } = (*IncompatibleDimensionsError)(nil)
	_ interface{ Code() string } = (*UnknownTemperatureUnitError)(nil)
	_ interface{ Code() string } = (*units.UnknownUnitError)(nil)
	_ interface{ Code() string } = (*expr.SyntaxError)(nil)
)
