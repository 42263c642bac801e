package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const suitesDir = "../harness/testdata/suites"

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := executeCommand(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentDir(t *testing.T) {
	out, _, err := executeCommand(t, "test", "/nonexistent/suites")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "suites directory not found")
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, _, err := executeCommand(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No suites found")
}

func TestTestCommandEmptyDirJSON(t *testing.T) {
	out, _, err := executeCommand(t, "--format", "json", "test", t.TempDir())
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestTestCommandReferenceSuites(t *testing.T) {
	out, _, err := executeCommand(t, "test", suitesDir)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ chemeng (26 cases)")
	assert.Contains(t, out, "✓ furlong (4 cases)")
	assert.Contains(t, out, "Test Summary: 2 passed, 0 failed, 2 total")
	assert.Contains(t, out, "All suites passed")
}

func TestTestCommandVerboseSuiteTable(t *testing.T) {
	table := filepath.Join("..", "harness", "testdata", "tables", "furlong.cue")

	out, errOut, err := executeCommand(t, "-v", "--table", table, "test", suitesDir, "--filter", "furlong*")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ furlong (4 cases)")
	assert.Contains(t, errOut, "Suite furlong uses its own table")
	assert.Contains(t, errOut, "conversion prepared")
	assert.Contains(t, errOut, "from=furlong")
}

func TestTestCommandFilter(t *testing.T) {
	out, _, err := executeCommand(t, "test", suitesDir, "--filter", "chem*")
	require.NoError(t, err)
	assert.Contains(t, out, "chemeng")
	assert.NotContains(t, out, "furlong")
}

func TestTestCommandFailingSuite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(`
name: wrong
cases:
  - {name: off by one, value: 1, from: km, to: m, expect: 1001}
  - {name: fine, value: 1, from: km, to: m, expect: 1000}
`), 0644))

	out, _, err := executeCommand(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "off by one: expected 1001, got 1000")
	assert.Contains(t, out, "Test Summary: 0 passed, 1 failed, 1 total")
}

func TestTestCommandFailingSuiteJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(`
name: wrong
cases:
  - {value: 1, from: J, to: W, expect_error: UNKNOWN_UNIT}
`), 0644))

	out, _, err := executeCommand(t, "--format", "json", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	require.Len(t, resp.Data.Suites, 1)
	assert.False(t, resp.Data.Suites[0].Pass)
	assert.Len(t, resp.Data.Suites[0].Errors, 1)
}

func TestTestCommandMalformedSuite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: x\nbogus: 1\n"), 0644))

	out, _, err := executeCommand(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeSuite+"]")
}
