package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/cadcheme/cheuc/internal/convert"
)

// Snapshot is the golden form of a suite result. It holds no floating-point
// values, so golden files are stable across platforms.
type Snapshot struct {
	Suite  string         `json:"suite"`
	Passed int            `json:"passed"`
	Failed int            `json:"failed"`
	Cases  []CaseSnapshot `json:"cases"`
}

// CaseSnapshot is the golden form of one case.
type CaseSnapshot struct {
	Name      string `json:"name"`
	Pass      bool   `json:"pass"`
	ErrorCode string `json:"error_code,omitempty"`
}

// NewSnapshot builds the snapshot of r.
func NewSnapshot(r *Result) Snapshot {
	s := Snapshot{
		Suite:  r.Suite,
		Passed: r.Passed,
		Failed: r.Failed,
		Cases:  make([]CaseSnapshot, len(r.Cases)),
	}
	for i, c := range r.Cases {
		s.Cases[i] = CaseSnapshot{Name: c.Name, Pass: c.Pass, ErrorCode: c.ErrorCode}
	}
	return s
}

// MarshalSnapshot encodes s as indented JSON with a trailing newline.
// HTML escaping is off so unit expressions stay readable.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunWithGolden runs suite and compares its snapshot against
// testdata/golden/{suite.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, suite *Suite, c *convert.Converter) (*Result, error) {
	t.Helper()

	result, err := Run(suite, c)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, suite.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against the golden file name.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(NewSnapshot(result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
