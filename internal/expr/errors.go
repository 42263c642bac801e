package expr

import (
	"errors"
	"fmt"
)

// CodeInvalidExpression identifies expressions outside the supported grammar.
const CodeInvalidExpression = "INVALID_EXPRESSION"

// SyntaxError reports an expression that does not fit the grammar, such as
// a second "/", nested parentheses or an empty token.
type SyntaxError struct {
	Expression string
	Reason     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %q: %s", CodeInvalidExpression, e.Expression, e.Reason)
}

// Code returns CodeInvalidExpression.
func (e *SyntaxError) Code() string {
	return CodeInvalidExpression
}

// IsSyntaxError reports whether err wraps a SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
