package harness

import (
	"fmt"
	"math"

	"github.com/cadcheme/cheuc/internal/catalog"
	"github.com/cadcheme/cheuc/internal/convert"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name string `json:"name"`
	Pass bool   `json:"pass"`

	Value float64 `json:"value"`
	From  string  `json:"from"`
	To    string  `json:"to"`

	// Got is the converted value, nil when the conversion failed.
	Got    *float64 `json:"got,omitempty"`
	Expect *float64 `json:"expect,omitempty"`

	// ErrorCode is the code of the conversion error, if any.
	ErrorCode   string `json:"error_code,omitempty"`
	ExpectError string `json:"expect_error,omitempty"`

	// Message explains a failed case.
	Message string `json:"message,omitempty"`
}

// Result is the outcome of a suite.
type Result struct {
	Suite  string       `json:"suite"`
	Pass   bool         `json:"pass"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}

// Run executes every case of suite with c. A nil c means the default table.
// When the suite names a table file, that table takes precedence over c's;
// c's other options, such as its logger, still apply.
//
// Case failures are reported in the Result; the error return is reserved
// for suites that cannot run at all.
func Run(suite *Suite, c *convert.Converter) (*Result, error) {
	if c == nil {
		c = convert.New(nil)
	}
	if suite.Table != "" {
		table, err := catalog.BuildTable(suite.Table)
		if err != nil {
			return nil, fmt.Errorf("suite %s: %w", suite.Name, err)
		}
		c = c.WithTable(table)
	}

	tol := suite.EffectiveTolerance()
	result := &Result{
		Suite: suite.Name,
		Pass:  true,
		Cases: make([]CaseResult, 0, len(suite.Cases)),
	}

	for _, tc := range suite.Cases {
		cr := runCase(c, tc, tol)
		if cr.Pass {
			result.Passed++
		} else {
			result.Failed++
			result.Pass = false
		}
		result.Cases = append(result.Cases, cr)
	}

	return result, nil
}

func runCase(c *convert.Converter, tc Case, tol float64) CaseResult {
	cr := CaseResult{
		Name:        tc.Label(),
		Value:       tc.Value,
		From:        tc.From,
		To:          tc.To,
		Expect:      tc.Expect,
		ExpectError: tc.ExpectError,
	}

	got, err := c.Convert(tc.Value, tc.From, tc.To)
	if err != nil {
		cr.ErrorCode = convert.Code(err)
		switch {
		case tc.ExpectError == "":
			cr.Message = fmt.Sprintf("unexpected error: %v", err)
		case tc.ExpectError != cr.ErrorCode:
			cr.Message = fmt.Sprintf("expected error %s, got %s: %v", tc.ExpectError, cr.ErrorCode, err)
		default:
			cr.Pass = true
		}
		return cr
	}

	cr.Got = &got
	switch {
	case tc.ExpectError != "":
		cr.Message = fmt.Sprintf("expected error %s, got result %g", tc.ExpectError, got)
	case !(math.Abs(got-*tc.Expect) <= tol):
		cr.Message = fmt.Sprintf("expected %g, got %g (tolerance %g)", *tc.Expect, got, tol)
	default:
		cr.Pass = true
	}
	return cr
}
