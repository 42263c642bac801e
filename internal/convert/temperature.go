package convert

import "github.com/cadcheme/cheuc/internal/units"

const zeroCelsius = 273.15

// ToKelvin converts an absolute temperature reading to kelvin.
func ToKelvin(value float64, unit string) (float64, error) {
	switch unit {
	case units.Kelvin:
		return value, nil
	case units.Celsius:
		return value + zeroCelsius, nil
	case units.Fahrenheit:
		return (value-32)*5/9 + zeroCelsius, nil
	case units.Rankine:
		return value * 5 / 9, nil
	default:
		return 0, &UnknownTemperatureUnitError{Unit: unit}
	}
}

// FromKelvin converts a kelvin reading to unit.
func FromKelvin(kelvin float64, unit string) (float64, error) {
	switch unit {
	case units.Kelvin:
		return kelvin, nil
	case units.Celsius:
		return kelvin - zeroCelsius, nil
	case units.Fahrenheit:
		return (kelvin-zeroCelsius)*9/5 + 32, nil
	case units.Rankine:
		return kelvin * 9 / 5, nil
	default:
		return 0, &UnknownTemperatureUnitError{Unit: unit}
	}
}

func convertTemperature(value float64, from, to string) (float64, error) {
	kelvin, err := ToKelvin(value, from)
	if err != nil {
		return 0, err
	}
	return FromKelvin(kelvin, to)
}
