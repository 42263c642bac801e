package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cadcheme/cheuc/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Limit int
}

// HistoryReport is the payload of the history command.
type HistoryReport struct {
	Records []store.Record `json:"records"`
	Total   int            `json:"total"`
}

func (r HistoryReport) String() string {
	if len(r.Records) == 0 {
		return "No conversions recorded."
	}
	var b strings.Builder
	for _, rec := range r.Records {
		if rec.Succeeded() {
			fmt.Fprintf(&b, "#%d  %g %s = %g %s\n", rec.Seq, rec.Value, rec.From, *rec.Result, rec.To)
		} else {
			fmt.Fprintf(&b, "#%d  %g %s -> %s  [%s]\n", rec.Seq, rec.Value, rec.From, rec.To, rec.ErrorCode)
		}
	}
	fmt.Fprintf(&b, "%d of %d shown", len(r.Records), r.Total)
	return b.String()
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversions",
		Long: `List conversions recorded with convert --history, newest first.

Examples:
  cheuc history --db conversions.db
  cheuc history --db conversions.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "history database path (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum records to show (0 for all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	f := opts.formatter(cmd)

	if opts.Limit < 0 {
		return f.Fail(ExitCommandError, ErrCodeInvalidArgument, "limit must be non-negative", nil)
	}
	if _, err := os.Stat(opts.DB); os.IsNotExist(err) {
		return f.Fail(ExitCommandError, ErrCodeHistory, fmt.Sprintf("database not found: %s", opts.DB), nil)
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeHistory, err.Error(), nil)
	}
	defer st.Close()

	records, err := st.List(ctx, opts.Limit)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeHistory, err.Error(), nil)
	}
	total, err := st.Count(ctx)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeHistory, err.Error(), nil)
	}
	if records == nil {
		records = []store.Record{}
	}

	f.VerboseLog("Read %d of %d records from %s", len(records), total, opts.DB)
	return f.Success(HistoryReport{Records: records, Total: total})
}
