package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cadcheme/cheuc/internal/convert"
	"github.com/cadcheme/cheuc/internal/dimension"
	"github.com/cadcheme/cheuc/internal/store"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	History string // history database path (optional)
}

// ConvertResult is the payload of a successful conversion.
type ConvertResult struct {
	Value      float64          `json:"value"`
	From       string           `json:"from"`
	To         string           `json:"to"`
	Result     float64          `json:"result"`
	Ratio      float64          `json:"ratio"`
	Affine     bool             `json:"affine"`
	Dimensions dimension.Vector `json:"dimensions"`
	Quantity   string           `json:"quantity,omitempty"`
}

func (r ConvertResult) String() string {
	return fmt.Sprintf("%g %s = %g %s", r.Value, r.From, r.Result, r.To)
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a value between unit expressions",
		Long: `Convert a value from one unit expression to another.

Both expressions must have the same dimensions. With --history the attempt
is recorded in a SQLite database, whether or not it succeeds.

Exit codes:
  0 - Conversion succeeded
  1 - Conversion failed (unknown unit, incompatible dimensions, bad expression)
  2 - Command error (invalid value, unreadable table, database error)

Examples:
  cheuc convert 1 kW/(m2.K) W/(m2.K)
  cheuc convert 100 degC degF
  cheuc convert -- -40 degC degF
  cheuc convert 8.314 "J/(mol.K)" "psia.ft3/(lbmol.degR)" --format json
  cheuc convert 1 atm kPa --history conversions.db`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args[0], args[1], args[2])
		},
	}

	cmd.Flags().StringVar(&opts.History, "history", "", "record the conversion in this SQLite database")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *ConvertOptions, rawValue, from, to string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	f := opts.formatter(cmd)
	logger := opts.logger(cmd)

	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInvalidArgument,
			fmt.Sprintf("invalid value %q: must be a number", rawValue), nil)
	}

	c, err := opts.converter(f, logger)
	if err != nil {
		return err
	}

	cv, convErr := c.Prepare(from, to)
	var result float64
	if convErr == nil {
		result, convErr = cv.Apply(value)
	}
	logger.LogConversion(ctx, value, from, to, result, convErr)

	if opts.History != "" {
		if err := recordHistory(ctx, opts, logger, value, from, to, result, convErr); err != nil {
			return f.Fail(ExitCommandError, ErrCodeHistory, err.Error(), map[string]string{"db": opts.History})
		}
	}

	if convErr != nil {
		return f.Fail(ExitFailure, errorCode(convErr), convErr.Error(), conversionDetails(convErr))
	}

	out := ConvertResult{
		Value:      value,
		From:       from,
		To:         to,
		Result:     result,
		Ratio:      cv.Ratio,
		Affine:     cv.Affine,
		Dimensions: cv.From.Dimensions,
	}
	out.Quantity, _ = dimension.Quantity(cv.From.Dimensions)
	return f.Success(out)
}

// errorCode returns the code carried by err, or CONVERSION_FAILED.
func errorCode(err error) string {
	if code := convert.Code(err); code != "" {
		return code
	}
	return "CONVERSION_FAILED"
}

// conversionDetails returns structured details for errors that have them.
func conversionDetails(err error) any {
	var ie *convert.IncompatibleDimensionsError
	if errors.As(err, &ie) {
		return map[string]string{
			"from_dimensions": ie.FromDimensions.String(),
			"to_dimensions":   ie.ToDimensions.String(),
		}
	}
	return nil
}

func recordHistory(ctx context.Context, opts *ConvertOptions, logger *Logger, value float64, from, to string, result float64, convErr error) error {
	st, err := store.Open(opts.History)
	if err != nil {
		logger.LogHistory(ctx, opts.History, "", 0, err)
		return err
	}
	defer st.Close()

	rec := store.Record{Value: value, From: from, To: to, Table: opts.Table}
	if convErr != nil {
		rec.ErrorCode = errorCode(convErr)
		rec.ErrorMessage = convErr.Error()
	} else {
		rec.Result = &result
	}

	saved, err := st.Record(ctx, rec)
	logger.LogHistory(ctx, opts.History, saved.ID, saved.Seq, err)
	return err
}
