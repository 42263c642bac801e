package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
)

// Record is one conversion attempt. Exactly one of Result and ErrorCode is
// set; on failure ErrorCode and ErrorMessage describe why.
type Record struct {
	ID           string   `json:"id"`
	Seq          int64    `json:"seq"`
	Value        float64  `json:"value"`
	From         string   `json:"from"`
	To           string   `json:"to"`
	Result       *float64 `json:"result,omitempty"`
	ErrorCode    string   `json:"error_code,omitempty"`
	ErrorMessage string   `json:"error_message,omitempty"`
	// Table names the unit-table file in effect, empty for the built-in one.
	Table string `json:"table,omitempty"`
}

// Succeeded reports whether the attempt produced a result.
func (r Record) Succeeded() bool {
	return r.Result != nil
}

// Record appends r to the history. An empty ID is filled in; Seq is always
// assigned by the database. The stored record is returned.
func (s *Store) Record(ctx context.Context, r Record) (Record, error) {
	if r.From == "" || r.To == "" {
		return Record{}, fmt.Errorf("record: from and to units are required")
	}
	if r.Result == nil && r.ErrorCode == "" {
		return Record{}, fmt.Errorf("record: a failed conversion needs an error code")
	}
	if r.Result != nil && r.ErrorCode != "" {
		return Record{}, fmt.Errorf("record: a conversion with a result cannot carry an error code")
	}
	if r.ID == "" {
		r.ID = s.newID()
	}

	var result sql.NullFloat64
	if r.Result != nil {
		result = nullable(*r.Result)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions (id, value, from_unit, to_unit, result, error_code, error_message, table_source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, nullable(r.Value), r.From, r.To, result, r.ErrorCode, r.ErrorMessage, r.Table)
	if err != nil {
		return Record{}, fmt.Errorf("insert conversion %s: %w", r.ID, err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("read seq for conversion %s: %w", r.ID, err)
	}
	r.Seq = seq
	return r, nil
}

// List returns up to limit records, newest first. A limit of zero or less
// returns every record.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT seq, id, value, from_unit, to_unit, result, error_code, error_message, table_source
		FROM conversions
		ORDER BY seq DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r      Record
			value  sql.NullFloat64
			result sql.NullFloat64
		)
		if err := rows.Scan(&r.Seq, &r.ID, &value, &r.From, &r.To, &result, &r.ErrorCode, &r.ErrorMessage, &r.Table); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		r.Value = math.NaN()
		if value.Valid {
			r.Value = value.Float64
		}
		// A row without an error code succeeded; a NULL result there is NaN.
		if r.ErrorCode == "" {
			v := math.NaN()
			if result.Valid {
				v = result.Float64
			}
			r.Result = &v
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}
	return records, nil
}

// Count returns the number of recorded conversions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM conversions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count conversions: %w", err)
	}
	return n, nil
}

// nullable maps NaN, which SQLite cannot store as REAL, to NULL.
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
