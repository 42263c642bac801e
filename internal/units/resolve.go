package units

import (
	"math"
	"strconv"
	"strings"

	"github.com/cadcheme/cheuc/internal/dimension"
)

// Temperature symbols. Only K lives in the table; the others exist for the
// resolver's scale factors and for affine conversion.
const (
	Kelvin     = "K"
	Celsius    = "degC"
	Fahrenheit = "degF"
	Rankine    = "degR"
)

// temperatureScales maps a temperature symbol to the size of one degree in
// kelvin. These are scale factors for temperature differences, not offsets.
var temperatureScales = map[string]float64{
	Kelvin:     1.0,
	Celsius:    1.0,
	Fahrenheit: 5.0 / 9.0,
	Rankine:    5.0 / 9.0,
}

// IsTemperature reports whether symbol is one of K, degC, degF or degR.
func IsTemperature(symbol string) bool {
	_, ok := temperatureScales[symbol]
	return ok
}

// Factor is the scale to SI base units and the dimension of a resolved token
// or expression.
type Factor struct {
	Factor     float64          `json:"factor"`
	Dimensions dimension.Vector `json:"dimensions"`
}

// Resolve turns a single token such as "ft2", "degF" or "kPa" into its factor
// and dimensions.
//
// The bare temperature symbols K, degC, degF and degR resolve to their
// degree size. Otherwise a trailing run of digits is an integer power and the
// remaining symbol is looked up exactly; failing that, each prefix is tried
// in table order and the first one whose remainder is an exact entry wins.
func (t *Table) Resolve(token string) (Factor, error) {
	if token == "1" {
		return Factor{Factor: 1}, nil
	}
	if scale, ok := temperatureScales[token]; ok {
		return Factor{Factor: scale, Dimensions: temperature}, nil
	}

	symbol, power, err := splitPower(token)
	if err != nil {
		return Factor{}, err
	}

	base, ok := t.resolveSymbol(symbol)
	if !ok {
		return Factor{}, &UnknownUnitError{Token: token, Symbol: symbol}
	}
	if power == 1 {
		return base, nil
	}
	return Factor{
		Factor:     math.Pow(base.Factor, float64(power)),
		Dimensions: dimension.Scale(base.Dimensions, power),
	}, nil
}

func (t *Table) resolveSymbol(symbol string) (Factor, bool) {
	if e, ok := t.entries[symbol]; ok {
		return Factor{Factor: e.Factor, Dimensions: e.Dimensions}, true
	}
	for _, p := range t.prefixes {
		rest, found := strings.CutPrefix(symbol, p.Symbol)
		if !found {
			continue
		}
		if e, ok := t.entries[rest]; ok {
			return Factor{Factor: e.Factor * p.Multiplier, Dimensions: e.Dimensions}, true
		}
	}
	return Factor{}, false
}

// splitPower separates "ft3" into ("ft", 3). Tokens without trailing digits
// have power 1.
func splitPower(token string) (string, int, error) {
	i := len(token)
	for i > 0 && token[i-1] >= '0' && token[i-1] <= '9' {
		i--
	}
	if i == len(token) {
		return token, 1, nil
	}
	power, err := strconv.Atoi(token[i:])
	if err != nil {
		return "", 0, &UnknownUnitError{Token: token, Symbol: token[:i]}
	}
	return token[:i], power, nil
}
