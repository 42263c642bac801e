// Package store records conversion attempts in a SQLite database.
//
// Each row holds the input value, both unit expressions, and either the
// result or the error code and message of a failed conversion. Rows are
// ordered by an autoincrement seq column; timestamps are never used for
// ordering.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
