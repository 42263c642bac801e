package units

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/cadcheme/cheuc/internal/dimension"
)

// Kind records where a table entry came from.
type Kind string

const (
	KindBase     Kind = "base"
	KindDerived  Kind = "derived"
	KindPrefixed Kind = "prefixed"
)

// Entry is an immutable unit record keyed by its symbol.
type Entry struct {
	Symbol     string           `json:"symbol"`
	Factor     float64          `json:"factor"`
	Dimensions dimension.Vector `json:"dimensions"`
	Kind       Kind             `json:"kind"`

	// Prefix and Root are set for generated entries only.
	Prefix string `json:"prefix,omitempty"`
	Root   string `json:"root,omitempty"`
}

// Table is a read-only registry of unit entries and SI prefixes.
// It is safe for concurrent use once NewTable returns.
type Table struct {
	entries  map[string]Entry
	prefixes []Prefix
}

// NewTable validates defs and builds the table: base units, then derived
// units, then one generated entry per prefixable symbol and prefix (in
// prefix order) unless the generated symbol is excluded.
func NewTable(defs Definitions) (*Table, error) {
	t := &Table{
		entries:  make(map[string]Entry, len(defs.Base)+len(defs.Derived)+len(defs.Prefixes)*len(defs.Prefixable)),
		prefixes: make([]Prefix, 0, len(defs.Prefixes)),
	}

	for _, def := range defs.Base {
		if err := t.add(def, KindBase); err != nil {
			return nil, fmt.Errorf("base units: %w", err)
		}
	}
	for _, def := range defs.Derived {
		if err := t.add(def, KindDerived); err != nil {
			return nil, fmt.Errorf("derived units: %w", err)
		}
	}

	for _, p := range defs.Prefixes {
		if p.Symbol == "" {
			return nil, fmt.Errorf("prefixes: empty prefix symbol")
		}
		if !validFactor(p.Multiplier) {
			return nil, fmt.Errorf("prefixes: %q has invalid multiplier %v", p.Symbol, p.Multiplier)
		}
		t.prefixes = append(t.prefixes, p)
	}

	excluded := make(map[string]bool, len(defs.Exclude))
	for _, sym := range defs.Exclude {
		excluded[sym] = true
	}

	for _, rootSymbol := range defs.Prefixable {
		root, ok := t.entries[rootSymbol]
		if !ok {
			return nil, fmt.Errorf("prefixable unit %q is not defined", rootSymbol)
		}
		for _, p := range t.prefixes {
			symbol := p.Symbol + rootSymbol
			if excluded[symbol] {
				continue
			}
			t.entries[symbol] = Entry{
				Symbol:     symbol,
				Factor:     root.Factor * p.Multiplier,
				Dimensions: root.Dimensions,
				Kind:       KindPrefixed,
				Prefix:     p.Symbol,
				Root:       rootSymbol,
			}
		}
	}

	return t, nil
}

func (t *Table) add(def Definition, kind Kind) error {
	if def.Symbol == "" {
		return fmt.Errorf("empty unit symbol")
	}
	if !validFactor(def.Factor) {
		return fmt.Errorf("unit %q has invalid factor %v", def.Symbol, def.Factor)
	}
	t.entries[def.Symbol] = Entry{
		Symbol:     def.Symbol,
		Factor:     def.Factor,
		Dimensions: def.Dimensions,
		Kind:       kind,
	}
	return nil
}

func validFactor(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return NewTable(DefaultDefinitions())
})

// Default returns the shared table built from DefaultDefinitions.
// The built-in definitions are static, so a build failure is a programming
// error and panics.
func Default() *Table {
	t, err := defaultTable()
	if err != nil {
		panic(fmt.Sprintf("units: building default table: %v", err))
	}
	return t
}

// Lookup returns the entry for an exact symbol.
func (t *Table) Lookup(symbol string) (Entry, bool) {
	e, ok := t.entries[symbol]
	return e, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns every entry sorted by symbol.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// Prefixes returns the prefix table in resolution order.
func (t *Table) Prefixes() []Prefix {
	return append([]Prefix(nil), t.prefixes...)
}

// Compatible returns the entries whose dimensions equal v, sorted by symbol.
func (t *Table) Compatible(v dimension.Vector) []Entry {
	var out []Entry
	for _, e := range t.Entries() {
		if dimension.Equal(e.Dimensions, v) {
			out = append(out, e)
		}
	}
	return out
}
