package dimension

type namedQuantity struct {
	exponents map[Axis]int
	name      string
}

// knownQuantities names the vectors that show up in process calculations.
var knownQuantities = []namedQuantity{
	{nil, "dimensionless"},
	{map[Axis]int{Length: 1}, "length"},
	{map[Axis]int{Mass: 1}, "mass"},
	{map[Axis]int{Time: 1}, "time"},
	{map[Axis]int{Temperature: 1}, "temperature"},
	{map[Axis]int{AmountOfSubstance: 1}, "amount of substance"},
	{map[Axis]int{ElectricCurrent: 1}, "electric current"},
	{map[Axis]int{LuminousIntensity: 1}, "luminous intensity"},
	{map[Axis]int{Length: 2}, "area"},
	{map[Axis]int{Length: 3}, "volume"},
	{map[Axis]int{Length: 1, Time: -1}, "velocity"},
	{map[Axis]int{Length: 1, Time: -2}, "acceleration"},
	{map[Axis]int{Mass: 1, Length: -3}, "density"},
	{map[Axis]int{Mass: 1, Time: -1}, "mass flow rate"},
	{map[Axis]int{Length: 3, Time: -1}, "volumetric flow rate"},
	{map[Axis]int{Length: 2, Time: -1}, "diffusivity"},
	{map[Axis]int{AmountOfSubstance: 1, Time: -1}, "molar flow rate"},
	{map[Axis]int{AmountOfSubstance: 1, Length: -3}, "molar concentration"},
	{map[Axis]int{Mass: 1, Length: -2, Time: -1}, "mass flux"},
	{map[Axis]int{Mass: 1, Length: 1, Time: -2}, "force"},
	{map[Axis]int{Mass: 1, Length: -1, Time: -2}, "pressure"},
	{map[Axis]int{Mass: 1, Length: -2, Time: -2}, "pressure gradient"},
	{map[Axis]int{Mass: 1, Length: 2, Time: -2}, "energy"},
	{map[Axis]int{Mass: 1, Length: 2, Time: -3}, "power"},
	{map[Axis]int{Mass: 1, Time: -3}, "heat flux"},
	{map[Axis]int{Mass: 1, Length: -1, Time: -3}, "volumetric heat rate"},
	{map[Axis]int{Mass: 1, Length: -1, Time: -1}, "dynamic viscosity"},
	{map[Axis]int{Mass: 1, Time: -3, Temperature: -1}, "heat transfer coefficient"},
	{map[Axis]int{Mass: 1, Length: 1, Time: -3, Temperature: -1}, "thermal conductivity"},
	{map[Axis]int{Length: 2, Time: -2, Temperature: -1}, "specific heat capacity"},
	{map[Axis]int{Mass: 1, Length: 2, Time: -2, Temperature: -1, AmountOfSubstance: -1}, "molar heat capacity"},
}

var quantities = func() map[Vector]string {
	m := make(map[Vector]string, len(knownQuantities))
	for _, q := range knownQuantities {
		m[Of(q.exponents)] = q.name
	}
	return m
}()

// Quantity returns a descriptive name for well-known vectors such as
// "pressure" or "heat transfer coefficient". ok is false when v has no name.
func Quantity(v Vector) (name string, ok bool) {
	name, ok = quantities[v]
	return name, ok
}
