// Package units holds the unit table and the single-token resolver.
//
// A Table is built once from Definitions: base units, derived units, and a
// generated entry for every (prefix, prefixable symbol) pair. After NewTable
// returns the table is never modified, so one table can be shared by any
// number of goroutines. Default returns the table for DefaultDefinitions;
// tests and callers with custom unit sets build their own.
//
// Prefix stripping order is the order of Definitions.Prefixes. The default
// order lists "da" before "d" and "m" before "mu"; when stripping a prefix
// leaves a symbol that is not in the table the next prefix is tried.
package units
