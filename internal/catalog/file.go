package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/cadcheme/cheuc/internal/dimension"
	"github.com/cadcheme/cheuc/internal/units"
)

// File is the decoded content of a unit-table file.
type File struct {
	// Replace discards the built-in definitions instead of extending them.
	Replace bool `json:"replace" yaml:"replace"`

	Base       []UnitSpec   `json:"base" yaml:"base"`
	Derived    []UnitSpec   `json:"derived" yaml:"derived"`
	Prefixes   []PrefixSpec `json:"prefixes" yaml:"prefixes"`
	Prefixable []string     `json:"prefixable" yaml:"prefixable"`
	Exclude    []string     `json:"exclude" yaml:"exclude"`
}

// UnitSpec declares one unit. Dimensions are keyed by axis symbol or name
// (L, M, T, Theta or Θ, N, I, J).
type UnitSpec struct {
	Symbol     string         `json:"symbol" yaml:"symbol"`
	Factor     float64        `json:"factor" yaml:"factor"`
	Dimensions map[string]int `json:"dimensions" yaml:"dimensions"`
}

// PrefixSpec declares one prefix.
type PrefixSpec struct {
	Symbol     string  `json:"symbol" yaml:"symbol"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// Load reads a unit-table file, choosing the decoder by extension:
// .cue, .yaml or .yml.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("reading table file: %v", err)}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return ParseCUE(data, path)
	case ".yaml", ".yml":
		return ParseYAML(data, path)
	default:
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("unsupported table file extension %q (want .cue, .yaml or .yml)", ext)}
	}
}

// BuildTable loads path and builds a table from it applied on top of the
// built-in definitions.
func BuildTable(path string) (*units.Table, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	defs, err := f.Apply(units.DefaultDefinitions())
	if err != nil {
		return nil, err
	}
	table, err := units.NewTable(defs)
	if err != nil {
		return nil, &LoadError{Path: path, Message: err.Error()}
	}
	return table, nil
}

// Apply merges f into base. With Replace set the result holds only f's
// definitions; otherwise f's entries are appended, so a symbol f redefines
// wins over the built-in one.
func (f *File) Apply(base units.Definitions) (units.Definitions, error) {
	own, err := f.Definitions()
	if err != nil {
		return units.Definitions{}, err
	}
	if f.Replace {
		return own, nil
	}

	out := base.Clone()
	out.Base = append(out.Base, own.Base...)
	out.Derived = append(out.Derived, own.Derived...)
	out.Prefixes = append(out.Prefixes, own.Prefixes...)
	out.Prefixable = append(out.Prefixable, own.Prefixable...)
	out.Exclude = append(out.Exclude, own.Exclude...)
	return out, nil
}

// Definitions converts f to units.Definitions, validating symbols and axes.
// Symbols are NFC-normalised so that lookups of equivalent spellings agree.
func (f *File) Definitions() (units.Definitions, error) {
	var defs units.Definitions

	var err error
	if defs.Base, err = convertUnits("base", f.Base); err != nil {
		return units.Definitions{}, err
	}
	if defs.Derived, err = convertUnits("derived", f.Derived); err != nil {
		return units.Definitions{}, err
	}

	for i, p := range f.Prefixes {
		sym, err := normalizeSymbol(p.Symbol)
		if err != nil {
			return units.Definitions{}, fmt.Errorf("prefixes[%d]: %w", i, err)
		}
		if p.Multiplier <= 0 {
			return units.Definitions{}, fmt.Errorf("prefixes[%d]: multiplier must be positive", i)
		}
		defs.Prefixes = append(defs.Prefixes, units.Prefix{Symbol: sym, Multiplier: p.Multiplier})
	}

	if defs.Prefixable, err = normalizeSymbols("prefixable", f.Prefixable); err != nil {
		return units.Definitions{}, err
	}
	if defs.Exclude, err = normalizeSymbols("exclude", f.Exclude); err != nil {
		return units.Definitions{}, err
	}
	return defs, nil
}

func convertUnits(section string, specs []UnitSpec) ([]units.Definition, error) {
	out := make([]units.Definition, 0, len(specs))
	for i, spec := range specs {
		sym, err := normalizeSymbol(spec.Symbol)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", section, i, err)
		}
		if spec.Factor <= 0 {
			return nil, fmt.Errorf("%s[%d] %q: factor must be positive", section, i, sym)
		}
		dims, err := dimension.FromNames(spec.Dimensions)
		if err != nil {
			return nil, fmt.Errorf("%s[%d] %q: %w", section, i, sym, err)
		}
		out = append(out, units.Definition{Symbol: sym, Factor: spec.Factor, Dimensions: dims})
	}
	return out, nil
}

func normalizeSymbols(section string, symbols []string) ([]string, error) {
	out := make([]string, 0, len(symbols))
	for i, s := range symbols {
		sym, err := normalizeSymbol(s)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", section, i, err)
		}
		out = append(out, sym)
	}
	return out, nil
}

// normalizeSymbol rejects symbols the expression grammar could not address:
// empty, containing whitespace or . / ( ), or ending in a digit.
func normalizeSymbol(s string) (string, error) {
	sym := norm.NFC.String(s)
	if sym == "" {
		return "", fmt.Errorf("symbol is required")
	}
	if strings.ContainsAny(sym, "./()") || strings.IndexFunc(sym, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("symbol %q contains a separator or whitespace", sym)
	}
	if last := sym[len(sym)-1]; last >= '0' && last <= '9' {
		return "", fmt.Errorf("symbol %q ends in a digit and would read as a power", sym)
	}
	return sym, nil
}
