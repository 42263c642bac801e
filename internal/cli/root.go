package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/cadcheme/cheuc/internal/catalog"
	"github.com/cadcheme/cheuc/internal/convert"
	"github.com/cadcheme/cheuc/internal/units"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Table   string // unit-table file extending the built-in table
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cheuc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cheuc",
		Short: "cheuc - chemical engineering unit converter",
		Long: `Convert values between compound unit expressions with dimensional analysis.

Expressions are dot-separated products with an optional single division,
e.g. W/(m2.K), kmol/m3.hr or Btu/lb.degF. Bare temperature units
(K, degC, degF, degR) convert as absolute readings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Table, "table", "", "unit-table file (.cue, .yaml) extending the built-in units")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewUnitsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// logger returns a debug-level logger on stderr when verbose, matching the
// output format, and a discarding logger otherwise.
func (o *RootOptions) logger(cmd *cobra.Command) *Logger {
	if !o.Verbose {
		return NoopLogger()
	}
	var l *Logger
	if o.Format == "json" {
		l = NewJSONLogger(cmd.ErrOrStderr(), slog.LevelDebug)
	} else {
		l = NewTextLogger(cmd.ErrOrStderr(), slog.LevelDebug)
	}
	return l.WithCommand(cmd.Name())
}

// table returns the unit table selected by --table.
func (o *RootOptions) table() (*units.Table, error) {
	if o.Table == "" {
		return units.Default(), nil
	}
	return catalog.BuildTable(o.Table)
}

// converter returns a converter over the selected table. Table errors are
// reported through f and returned as command errors.
func (o *RootOptions) converter(f *OutputFormatter, logger *Logger) (*convert.Converter, error) {
	table, err := o.table()
	if err != nil {
		return nil, f.Fail(ExitCommandError, catalog.CodeInvalidTable, err.Error(), nil)
	}
	if o.Table != "" {
		f.VerboseLog("Loaded %d units from %s", table.Len(), o.Table)
	}
	return convert.New(table, convert.WithLogger(logger.Logger)), nil
}
