// Package dimension models physical dimensions as integer exponents over the
// seven SI base axes.
//
// A Vector is a fixed-size value type. Its zero value is dimensionless, so an
// axis that was never set behaves exactly like an axis with exponent 0 in
// every comparison and combination. Operations never mutate their operands.
//
// This package imports nothing internal; units, expr and convert build on it.
package dimension
