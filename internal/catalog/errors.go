package catalog

import (
	"errors"
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CodeInvalidTable is the error code reported for unreadable or invalid
// unit-table files.
const CodeInvalidTable = "INVALID_TABLE"

// LoadError reports a unit-table file that could not be read, decoded or
// validated. Pos is set when the CUE evaluator reports a source position.
type LoadError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			CodeInvalidTable, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, CodeInvalidTable, e.Message)
	}
	return fmt.Sprintf("%s: %s", CodeInvalidTable, e.Message)
}

// Code returns CodeInvalidTable.
func (e *LoadError) Code() string {
	return CodeInvalidTable
}

// IsLoadError reports whether err is or wraps a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(path string, err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Path: path, Message: err.Error()}
	}

	first := errs[0]
	le := &LoadError{Path: path, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
