package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cadcheme/cheuc/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // suite file filter (glob pattern)
}

// SuiteResult holds the result of a single suite.
type SuiteResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Cases  int      `json:"cases"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Suites []SuiteResult `json:"suites"`
	Passed int           `json:"passed"`
	Failed int           `json:"failed"`
	Total  int           `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <suites-dir>",
		Short: "Run conversion suites",
		Long: `Run every YAML conversion suite in a directory.

Each case converts a value and checks the result against an expected value
within the suite tolerance, or checks the error code of a conversion that
must fail.

Exit codes:
  0 - All suites passed
  1 - One or more suites failed
  2 - Command error (invalid paths, malformed suites, etc.)

Examples:
  cheuc test ./suites
  cheuc test ./suites --filter "chem*"
  cheuc test ./suites --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter suite files by glob pattern")

	return cmd
}

func runTests(cmd *cobra.Command, opts *TestOptions, suitesDir string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	f := opts.formatter(cmd)
	logger := opts.logger(cmd)

	if _, err := os.Stat(suitesDir); os.IsNotExist(err) {
		return f.Fail(ExitCommandError, ErrCodeSuite, fmt.Sprintf("suites directory not found: %s", suitesDir), nil)
	}

	suites, err := harness.LoadSuites(suitesDir, opts.Filter)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeSuite, err.Error(), nil)
	}

	if len(suites) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, TestResult{Suites: []SuiteResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No suites found.")
		return nil
	}

	c, err := opts.converter(f, logger)
	if err != nil {
		return err
	}

	result := TestResult{
		Suites: make([]SuiteResult, 0, len(suites)),
		Total:  len(suites),
	}

	w := cmd.OutOrStdout()
	for _, suite := range suites {
		sr := SuiteResult{Name: suite.Name, Cases: len(suite.Cases)}
		if suite.Table != "" && opts.Table != "" {
			f.VerboseLog("Suite %s uses its own table %s instead of %s", suite.Name, suite.Table, opts.Table)
		}

		res, err := harness.Run(suite, c)
		if err != nil {
			sr.Errors = []string{fmt.Sprintf("execution failed: %v", err)}
		} else {
			sr.Pass = res.Pass
			for _, cr := range res.Cases {
				if !cr.Pass {
					sr.Errors = append(sr.Errors, fmt.Sprintf("%s: %s", cr.Name, cr.Message))
				}
			}
			logger.LogSuite(ctx, suite.Name, res.Passed, res.Failed)
		}

		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Suites = append(result.Suites, sr)

		if opts.Format != "json" {
			if sr.Pass {
				fmt.Fprintf(w, "✓ %s (%d cases)\n", sr.Name, sr.Cases)
			} else {
				fmt.Fprintf(w, "✗ %s\n", sr.Name)
				for _, e := range sr.Errors {
					fmt.Fprintf(w, "  %s\n", e)
				}
			}
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result)
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
	}

	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    ErrCodeTestFailed,
			Message: fmt.Sprintf("%d suite(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d suite(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test summary as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d suite(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All suites passed")
	return nil
}
