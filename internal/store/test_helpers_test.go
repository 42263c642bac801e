package store

import (
	"path/filepath"
	"testing"

	"github.com/cadcheme/cheuc/internal/testutil"
)

// createTestStore creates a new store in a temp directory with
// deterministic record ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewDeterministicIDs("conv").Next))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr(v float64) *float64 { return &v }

// success builds a successful conversion record.
func success(value float64, from, to string, result float64) Record {
	return Record{Value: value, From: from, To: to, Result: ptr(result)}
}

// failure builds a failed conversion record.
func failure(value float64, from, to, code, message string) Record {
	return Record{Value: value, From: from, To: to, ErrorCode: code, ErrorMessage: message}
}
