package cli

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cadcheme/cheuc/internal/expr"
	"github.com/cadcheme/cheuc/internal/units"
)

// UnitsOptions holds flags for the units command.
type UnitsOptions struct {
	*RootOptions
	Compatible string // only list units with these dimensions
	Kind       string // base | derived | prefixed
	Prefixes   bool   // list the prefix table instead
}

// UnitsReport is the payload of the units command.
type UnitsReport struct {
	Units    []units.Entry  `json:"units,omitempty"`
	Prefixes []units.Prefix `json:"prefixes,omitempty"`
}

func (r UnitsReport) String() string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	if r.Prefixes != nil {
		fmt.Fprintln(w, "PREFIX\tMULTIPLIER")
		for _, p := range r.Prefixes {
			fmt.Fprintf(w, "%s\t%g\n", p.Symbol, p.Multiplier)
		}
	} else {
		fmt.Fprintln(w, "SYMBOL\tFACTOR\tDIMENSIONS\tKIND")
		for _, e := range r.Units {
			fmt.Fprintf(w, "%s\t%g\t%s\t%s\n", e.Symbol, e.Factor, e.Dimensions, e.Kind)
		}
	}
	w.Flush()
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// NewUnitsCommand creates the units command.
func NewUnitsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UnitsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List the unit table",
		Long: `List every unit symbol in the table with its SI factor and dimensions.

Examples:
  cheuc units
  cheuc units --compatible Pa
  cheuc units --kind base
  cheuc units --prefixes
  cheuc units --table extra.cue --compatible m`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnits(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Compatible, "compatible", "", "only list units with the dimensions of this expression")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only list units of this kind (base|derived|prefixed)")
	cmd.Flags().BoolVar(&opts.Prefixes, "prefixes", false, "list the prefix table")

	return cmd
}

func runUnits(cmd *cobra.Command, opts *UnitsOptions) error {
	f := opts.formatter(cmd)

	switch units.Kind(opts.Kind) {
	case "", units.KindBase, units.KindDerived, units.KindPrefixed:
	default:
		return f.Fail(ExitCommandError, ErrCodeInvalidArgument,
			fmt.Sprintf("invalid kind %q: must be base, derived or prefixed", opts.Kind), nil)
	}

	c, err := opts.converter(f, opts.logger(cmd))
	if err != nil {
		return err
	}
	table := c.Table()

	if opts.Prefixes {
		return f.Success(UnitsReport{Prefixes: table.Prefixes()})
	}

	entries := table.Entries()
	if opts.Compatible != "" {
		parsed, err := expr.Parse(table, opts.Compatible)
		if err != nil {
			return f.Fail(ExitFailure, errorCode(err), err.Error(), map[string]string{"expression": opts.Compatible})
		}
		entries = table.Compatible(parsed.Dimensions)
	}

	report := UnitsReport{Units: make([]units.Entry, 0, len(entries))}
	for _, e := range entries {
		if opts.Kind != "" && e.Kind != units.Kind(opts.Kind) {
			continue
		}
		report.Units = append(report.Units, e)
	}
	f.VerboseLog("%d of %d units listed", len(report.Units), table.Len())
	return f.Success(report)
}
