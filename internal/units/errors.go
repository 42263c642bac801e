package units

import (
	"errors"
	"fmt"
)

// CodeUnknownUnit identifies tokens that resolve to no table entry.
const CodeUnknownUnit = "UNKNOWN_UNIT"

// UnknownUnitError reports a token that could not be resolved, even after
// trying every prefix.
type UnknownUnitError struct {
	// Token is the token as written, including any power suffix.
	Token string

	// Symbol is the token with its power suffix removed.
	Symbol string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("%s: unknown unit %q", CodeUnknownUnit, e.Token)
}

// Code returns CodeUnknownUnit.
func (e *UnknownUnitError) Code() string {
	return CodeUnknownUnit
}

// IsUnknownUnit reports whether err wraps an UnknownUnitError.
func IsUnknownUnit(err error) bool {
	var ue *UnknownUnitError
	return errors.As(err, &ue)
}
