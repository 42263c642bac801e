// Package convert converts values between unit expressions.
//
// Two paths exist. When both sides are bare temperature symbols (K, degC,
// degF, degR) the value is an absolute reading and is converted through
// kelvin with the usual offsets. Every other pair is parsed with the expr
// package, the dimension vectors are compared, and the value is scaled by
// the ratio of the two factors. Temperature symbols inside a compound
// expression only ever contribute their degree size.
//
// Errors carry a code (see Code) so callers can report the failure kind:
// UNKNOWN_UNIT, INVALID_EXPRESSION, INCOMPATIBLE_DIMENSIONS or
// UNKNOWN_TEMPERATURE_UNIT.
package convert
