package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cadcheme/cheuc/internal/dimension"
	"github.com/cadcheme/cheuc/internal/expr"
	"github.com/cadcheme/cheuc/internal/units"
)

// InspectResult describes one parsed expression.
type InspectResult struct {
	Expression  string           `json:"expression"`
	Factor      float64          `json:"factor"`
	Dimensions  dimension.Vector `json:"dimensions"`
	Quantity    string           `json:"quantity,omitempty"`
	Temperature bool             `json:"temperature,omitempty"`
}

// InspectReport is the payload of the inspect command.
type InspectReport []InspectResult

func (r InspectReport) String() string {
	var b strings.Builder
	for i, res := range r {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s\n", res.Expression)
		fmt.Fprintf(&b, "  factor:     %g\n", res.Factor)
		fmt.Fprintf(&b, "  dimensions: %s\n", res.Dimensions)
		if res.Quantity != "" {
			fmt.Fprintf(&b, "  quantity:   %s\n", res.Quantity)
		}
		if res.Temperature {
			b.WriteString("  note:       absolute temperature when converted on its own\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <expression>...",
		Short: "Show the SI factor and dimensions of unit expressions",
		Long: `Parse each expression and print its factor to SI base units, its
dimension vector and, where known, the name of the quantity.

Examples:
  cheuc inspect "W/(m2.K)"
  cheuc inspect psia ft3/lbmol --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, rootOpts, args)
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, opts *RootOptions, expressions []string) error {
	f := opts.formatter(cmd)
	c, err := opts.converter(f, opts.logger(cmd))
	if err != nil {
		return err
	}

	report := make(InspectReport, 0, len(expressions))
	for _, e := range expressions {
		parsed, err := expr.Parse(c.Table(), e)
		if err != nil {
			return f.Fail(ExitFailure, errorCode(err), err.Error(), map[string]string{"expression": e})
		}
		res := InspectResult{
			Expression:  e,
			Factor:      parsed.Factor,
			Dimensions:  parsed.Dimensions,
			Temperature: units.IsTemperature(strings.TrimSpace(e)),
		}
		res.Quantity, _ = dimension.Quantity(parsed.Dimensions)
		report = append(report, res)
	}

	return f.Success(report)
}
