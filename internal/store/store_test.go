package store

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		if _, err := s.Record(ctx, success(1, "m", "ft", 3.28084)); err != nil {
			t.Fatalf("Record() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "records survive reopening")
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		expected string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"},
		{"user_version", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.verifyPragma(ctx, tt.name, tt.expected); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "test.db"))
	assert.Error(t, err)
}

func TestClose_Nil(t *testing.T) {
	var s Store
	assert.NoError(t, s.Close())
}

func TestRecord_AssignsIDAndSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.Record(ctx, success(1, "bar", "kPa", 100))
	require.NoError(t, err)
	assert.Equal(t, "conv-0001", first.ID)
	assert.Equal(t, int64(1), first.Seq)

	second, err := s.Record(ctx, failure(1, "J", "W", "INCOMPATIBLE_DIMENSIONS", "J and W differ"))
	require.NoError(t, err)
	assert.Equal(t, "conv-0002", second.ID)
	assert.Equal(t, int64(2), second.Seq)
}

func TestRecord_KeepsExplicitID(t *testing.T) {
	s := createTestStore(t)

	r := success(1, "m", "cm", 100)
	r.ID = "explicit"
	got, err := s.Record(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "explicit", got.ID)
}

func TestRecord_DuplicateIDRejected(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r := success(1, "m", "cm", 100)
	r.ID = "dup"
	_, err := s.Record(ctx, r)
	require.NoError(t, err)

	_, err = s.Record(ctx, r)
	assert.Error(t, err)
}

func TestRecord_Validation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, Record{Value: 1, To: "m", Result: ptr(1)})
	assert.Error(t, err, "missing from unit")

	_, err = s.Record(ctx, Record{Value: 1, From: "m", To: "ft"})
	assert.Error(t, err, "failure without error code")

	_, err = s.Record(ctx, Record{Value: 1, From: "m", To: "ft", Result: ptr(3.28), ErrorCode: "UNKNOWN_UNIT"})
	assert.Error(t, err, "result and error code together")

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecord_DefaultIDsAreUUIDv7(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()

	r, err := s.Record(context.Background(), success(1, "m", "ft", 3.28))
	require.NoError(t, err)
	assert.Len(t, r.ID, 36)
	assert.Equal(t, byte('7'), r.ID[14], "version nibble")
}

func TestList_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, success(1, "m", "ft", 3.28084))
	require.NoError(t, err)
	_, err = s.Record(ctx, failure(1, "xyz", "m", "UNKNOWN_UNIT", "unknown unit xyz"))
	require.NoError(t, err)
	_, err = s.Record(ctx, success(100, "degC", "degF", 212))
	require.NoError(t, err)

	records, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, int64(3), records[0].Seq)
	assert.Equal(t, "degC", records[0].From)
	require.NotNil(t, records[0].Result)
	assert.Equal(t, 212.0, *records[0].Result)
	assert.True(t, records[0].Succeeded())

	assert.Equal(t, "xyz", records[1].From)
	assert.Nil(t, records[1].Result)
	assert.False(t, records[1].Succeeded())
	assert.Equal(t, "UNKNOWN_UNIT", records[1].ErrorCode)
	assert.Equal(t, "unknown unit xyz", records[1].ErrorMessage)

	assert.Equal(t, int64(1), records[2].Seq)
}

func TestList_Limit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, success(float64(i), "m", "mm", float64(i)*1000))
		require.NoError(t, err)
	}

	records, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 4.0, records[0].Value)
	assert.Equal(t, 3.0, records[1].Value)
}

func TestList_Empty(t *testing.T) {
	s := createTestStore(t)

	records, err := s.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestList_TableSource(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r := success(1, "furlong", "m", 201.168)
	r.Table = "extra.cue"
	_, err := s.Record(ctx, r)
	require.NoError(t, err)

	records, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "extra.cue", records[0].Table)
}

func TestList_NaNRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, success(math.NaN(), "m", "ft", math.NaN()))
	require.NoError(t, err)
	_, err = s.Record(ctx, failure(math.NaN(), "xyz", "m", "UNKNOWN_UNIT", "unknown unit"))
	require.NoError(t, err)

	records, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	failed := records[0]
	assert.False(t, failed.Succeeded())
	assert.Nil(t, failed.Result)
	assert.Equal(t, "UNKNOWN_UNIT", failed.ErrorCode)
	assert.True(t, math.IsNaN(failed.Value))

	ok := records[1]
	require.True(t, ok.Succeeded())
	require.NotNil(t, ok.Result)
	assert.True(t, math.IsNaN(*ok.Result))
	assert.True(t, math.IsNaN(ok.Value))
	assert.Empty(t, ok.ErrorCode)
}

func TestContextCancelled(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Record(ctx, success(1, "m", "ft", 3.28))
	assert.Error(t, err)
}
