// Package expr parses compound unit expressions such as "W/(m2.K)" into a
// single factor and dimension vector.
//
// Grammar:
//
//	expr  := group [ "/" group ]
//	group := [ "(" ] token { "." token } [ ")" ]
//
// Only one "/" is allowed; everything to its right is the denominator. One
// pair of enclosing parentheses per group is stripped; nesting is rejected.
// Whitespace is ignored.
package expr

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/cadcheme/cheuc/internal/dimension"
	"github.com/cadcheme/cheuc/internal/units"
)

// Parsed is the result of parsing one unit expression.
type Parsed struct {
	Expression string           `json:"expression"`
	Factor     float64          `json:"factor"`
	Dimensions dimension.Vector `json:"dimensions"`
}

// Parse resolves every token of s against table and combines them.
// Empty input, "1" and "dimensionless" are dimensionless with factor 1.
func Parse(table *units.Table, s string) (Parsed, error) {
	clean := Normalize(s)
	if clean == "" || clean == "1" || clean == "dimensionless" {
		return Parsed{Expression: s, Factor: 1}, nil
	}

	numerator, denominator, err := split(clean)
	if err != nil {
		return Parsed{}, &SyntaxError{Expression: s, Reason: err.Error()}
	}

	num, err := parseGroup(table, s, numerator, "numerator")
	if err != nil {
		return Parsed{}, err
	}
	den, err := parseGroup(table, s, denominator, "denominator")
	if err != nil {
		return Parsed{}, err
	}

	return Parsed{
		Expression: s,
		Factor:     num.Factor / den.Factor,
		Dimensions: dimension.Subtract(num.Dimensions, den.Dimensions),
	}, nil
}

// Normalize applies NFC and drops all whitespace.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// split returns the numerator and denominator groups with one layer of
// parentheses removed from each.
func split(s string) (string, string, error) {
	numerator, denominator := s, "1"
	switch strings.Count(s, "/") {
	case 0:
	case 1:
		numerator, denominator, _ = strings.Cut(s, "/")
	default:
		return "", "", fmt.Errorf("more than one '/'")
	}

	numerator, err := stripParens(numerator, "numerator")
	if err != nil {
		return "", "", err
	}
	denominator, err = stripParens(denominator, "denominator")
	if err != nil {
		return "", "", err
	}
	return numerator, denominator, nil
}

func stripParens(group, side string) (string, error) {
	if strings.HasPrefix(group, "(") && strings.HasSuffix(group, ")") {
		group = group[1 : len(group)-1]
	}
	if strings.ContainsAny(group, "()") {
		return "", fmt.Errorf("%s %q has nested or unbalanced parentheses", side, group)
	}
	if group == "" {
		return "", fmt.Errorf("empty %s", side)
	}
	return group, nil
}

// parseGroup multiplies together the "."-separated tokens of one group.
func parseGroup(table *units.Table, expression, group, side string) (units.Factor, error) {
	acc := units.Factor{Factor: 1}
	for i, token := range strings.Split(group, ".") {
		if token == "" {
			return units.Factor{}, &SyntaxError{
				Expression: expression,
				Reason:     fmt.Sprintf("empty token %d in %s %q", i+1, side, group),
			}
		}
		f, err := table.Resolve(token)
		if err != nil {
			return units.Factor{}, fmt.Errorf("parsing %q: %w", expression, err)
		}
		acc = units.Factor{
			Factor:     acc.Factor * f.Factor,
			Dimensions: dimension.Combine(acc.Dimensions, f.Dimensions),
		}
	}
	return acc, nil
}
