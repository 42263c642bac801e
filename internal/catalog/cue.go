package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource string

type cueSchema struct {
	ctx   *cue.Context
	table cue.Value
}

var loadSchema = sync.OnceValues(func() (*cueSchema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compiling table schema: %w", err)
	}
	table := v.LookupPath(cue.ParsePath("#Table"))
	if err := table.Err(); err != nil {
		return nil, fmt.Errorf("looking up #Table: %w", err)
	}
	return &cueSchema{ctx: ctx, table: table}, nil
})

// cueMu serialises use of the shared cue.Context, which is not safe for
// concurrent use.
var cueMu sync.Mutex

// ParseCUE decodes a CUE unit-table file. The file is unified with the
// closed #Table schema, so unknown fields, non-positive factors and
// malformed symbols are reported with their source position.
func ParseCUE(data []byte, path string) (*File, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	cueMu.Lock()
	defer cueMu.Unlock()

	v := schema.ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(path, err)
	}

	unified := schema.table.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(path, err)
	}

	var f File
	if err := unified.Decode(&f); err != nil {
		return nil, formatCUEError(path, err)
	}
	if _, err := f.Definitions(); err != nil {
		return nil, &LoadError{Path: path, Message: err.Error()}
	}
	return &f, nil
}
