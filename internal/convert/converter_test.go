package convert

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadcheme/cheuc/internal/dimension"
	"github.com/cadcheme/cheuc/internal/expr"
	"github.com/cadcheme/cheuc/internal/units"
)

const chemEngTolerance = 1e-3

func TestChemicalEngineeringConversions(t *testing.T) {
	tests := []struct {
		value    float64
		from, to string
		expected float64
	}{
		{1e-2, "m/s", "ft/min", 1.968503937},
		{1e2, "mm", "in", 3.937007874},
		{1, "kg/m3", "g/L", 1},
		{1e2, "kg/m3", "lb/ft3", 6.242796058},
		{1e-2, "kg/m2.s", "lb/ft2.hr", 7.373381094},
		{1e-4, "m3/s", "L/min", 6},
		{1e-3, "m3/s", "ft3/hr", 1.271328002e2},
		{1, "mol/s", "kmol/hr", 3.6},
		{1, "mol/s", "lbmol/hr", 7.936633914824},
		{1, "mol/m3.s", "kmol/m3.hr", 3.6},
		{1e2, "mol/m3.s", "mol/L.min", 6},
		{1, "W/m3", "kJ/m3.hr", 3.6},
		{1e4, "W/m3", "kcal/m3.s", 2.390057361},
		{1e1, "W/m2.K", "kcal/m2.hr.degC", 8.60437847},
		{1e1, "W/m2.K", "Btu/ft2.hr.degF", 1.761101819},
		{1e-4, "m2/s", "cm2/s", 1},
		{1e-4, "m2/s", "ft2/hr", 3.8750077512},
		{1e4, "cP", "lb/ft.s", 6.719689751},
		{1e4, "J/kg.K", "cal/g.degC", 2.39010513},
		{1e4, "J/kg.K", "Btu/lb.degF", 2.388458966},
		{1e5, "Pa/m", "psi/ft", 4.420750245},
		{1e-7, "m3/mol.s", "ft3/lbmol.hr", 5.766646815},
		{1, "lbmol", "gmol", 453.59237},
		{100, "degC", "degF", 212.0},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			got, err := Convert(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, chemEngTolerance)
		})
	}
}

func TestCompoundExpression(t *testing.T) {
	got, err := Convert(1, "kW/(m2.K)", "W/(m2.K)")
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, got, 1e-9)

	got, err = Convert(1000, "W/(m2.K)", "Btu/(h.ft2.degF)")
	require.NoError(t, err)
	assert.InDelta(t, 176.11, got, 0.01)

	got, err = Convert(8.314, "J/(mol.K)", "psia.ft3/(lbmol.degR)")
	require.NoError(t, err)
	assert.InDelta(t, 10.73, got, 0.01)

	got, err = Convert(8.314, "J/(mol.K)", "atm.L/(mol.K)")
	require.NoError(t, err)
	assert.InDelta(t, 0.08205, got, 1e-4)
}

func TestInconsistentDimensions(t *testing.T) {
	tests := []struct {
		from, to string
	}{
		{"J", "W"},
		{"kg", "Pa"},
		{"mol/s", "kg/hr"},
		{"W/m2.K", "cal/m.s.degF"},
		{"J/mol", "Btu/ft"},
		{"m", "kg"},
		{"K", "m"},
		{"degC", "W"},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			_, err := Convert(1, tt.from, tt.to)
			require.Error(t, err)
			assert.True(t, IsIncompatibleDimensions(err))
			assert.Equal(t, CodeIncompatibleDimensions, Code(err))
		})
	}
}

func TestIncompatibleDimensionsErrorDetails(t *testing.T) {
	_, err := Convert(1, "J", "W")

	var ie *IncompatibleDimensionsError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "J", ie.From)
	assert.Equal(t, "W", ie.To)
	assert.Equal(t, dimension.Of(map[dimension.Axis]int{dimension.Mass: 1, dimension.Length: 2, dimension.Time: -2}), ie.FromDimensions)
	assert.Equal(t, dimension.Of(map[dimension.Axis]int{dimension.Mass: 1, dimension.Length: 2, dimension.Time: -3}), ie.ToDimensions)
	assert.Contains(t, err.Error(), "M L^2 T^-2")
	assert.Contains(t, err.Error(), "M L^2 T^-3")
}

func TestUnknownUnit(t *testing.T) {
	_, err := Convert(1, "xyz", "m")
	require.Error(t, err)
	assert.True(t, units.IsUnknownUnit(err))
	assert.Equal(t, units.CodeUnknownUnit, Code(err))

	_, err = Convert(1, "m", "m/fortnight")
	assert.Equal(t, units.CodeUnknownUnit, Code(err))
}

func TestInvalidExpression(t *testing.T) {
	_, err := Convert(1, "J/s/kg", "W/kg")
	require.Error(t, err)
	assert.True(t, expr.IsSyntaxError(err))
	assert.Equal(t, expr.CodeInvalidExpression, Code(err))
}

func TestIdentityForEveryEntry(t *testing.T) {
	table := units.Default()
	for _, e := range table.Entries() {
		for _, v := range []float64{0, 1, -2.5, 1e-30, 123456.789} {
			got, err := Convert(v, e.Symbol, e.Symbol)
			require.NoError(t, err, e.Symbol)
			assert.Equal(t, v, got, e.Symbol)
		}
	}
}

func TestPrefixConsistency(t *testing.T) {
	table := units.Default()
	defs := units.DefaultDefinitions()

	for _, root := range defs.Prefixable {
		for _, p := range table.Prefixes() {
			got, err := Convert(1, p.Symbol+root, root)
			require.NoError(t, err, p.Symbol+root)
			assert.InEpsilon(t, p.Multiplier, got, 1e-9, p.Symbol+root)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"m", "ft"},
		{"kPa", "psi"},
		{"Btu", "kWh"},
		{"W/(m2.K)", "Btu/(h.ft2.degF)"},
		{"cP", "lb/ft.s"},
		{"mol/L", "lbmol/ft3"},
		{"gal/min", "m3/s"},
		{"hp", "kW"},
		{"degC", "degF"},
		{"degF", "K"},
		{"degR", "degC"},
	}
	values := []float64{-40, 0, 1e-6, 3.14159, 1e9}

	for _, pair := range pairs {
		for _, v := range values {
			there, err := Convert(v, pair[0], pair[1])
			require.NoError(t, err)
			back, err := Convert(there, pair[1], pair[0])
			require.NoError(t, err)
			// Relative tolerance, floored at 1e-9 absolute so that affine
			// offsets near zero do not dominate.
			tol := 1e-9 * math.Max(1, math.Abs(v))
			assert.InDelta(t, v, back, tol, "%s <-> %s", pair[0], pair[1])
		}
	}
}

func TestPrepareReuse(t *testing.T) {
	c := New(units.Default())
	cv, err := c.Prepare("kmol/hr", "mol/s")
	require.NoError(t, err)
	assert.False(t, cv.Affine)
	assert.InEpsilon(t, 1000.0/3600.0, cv.Ratio, 1e-12)
	assert.Equal(t, cv.From.Dimensions, cv.To.Dimensions)

	for _, v := range []float64{0, 3.6, 36} {
		got, err := cv.Apply(v)
		require.NoError(t, err)
		assert.InDelta(t, v/3.6, got, 1e-12)
	}
}

func TestNilTableUsesDefault(t *testing.T) {
	assert.Same(t, units.Default(), New(nil).Table())
}

func TestCustomTable(t *testing.T) {
	length := dimension.Of(map[dimension.Axis]int{dimension.Length: 1})
	table, err := units.NewTable(units.Definitions{
		Base: []units.Definition{
			{Symbol: "m", Factor: 1, Dimensions: length},
			{Symbol: "furlong", Factor: 201.168, Dimensions: length},
		},
	})
	require.NoError(t, err)

	c := New(table)
	got, err := c.Convert(1, "furlong", "m")
	require.NoError(t, err)
	assert.InDelta(t, 201.168, got, 1e-9)

	_, err = c.Convert(1, "ft", "m")
	assert.True(t, units.IsUnknownUnit(err))
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := New(nil, WithLogger(logger))

	_, err := c.Convert(1, "bar", "kPa")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "conversion prepared")
	assert.Contains(t, buf.String(), "from=bar")

	buf.Reset()
	_, err = c.Convert(1, "J", "W")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "conversion rejected")
	assert.Contains(t, buf.String(), "code="+CodeIncompatibleDimensions)
}

func TestWithTableKeepsLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	length := dimension.Of(map[dimension.Axis]int{dimension.Length: 1})
	table, err := units.NewTable(units.Definitions{
		Base: []units.Definition{
			{Symbol: "m", Factor: 1, Dimensions: length},
			{Symbol: "furlong", Factor: 201.168, Dimensions: length},
		},
	})
	require.NoError(t, err)

	base := New(nil, WithLogger(logger))
	c := base.WithTable(table)
	assert.Same(t, table, c.Table())
	assert.Same(t, units.Default(), base.Table())

	got, err := c.Convert(1, "furlong", "m")
	require.NoError(t, err)
	assert.InDelta(t, 201.168, got, 1e-9)
	assert.Contains(t, buf.String(), "from=furlong")

	assert.Same(t, units.Default(), base.WithTable(nil).Table())
}

func TestWithNilLogger(t *testing.T) {
	c := New(nil, WithLogger(nil))
	got, err := c.Convert(1, "km", "m")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got)
}

func TestCodeWithoutCodedError(t *testing.T) {
	assert.Equal(t, "", Code(nil))
	assert.Equal(t, "", Code(assert.AnError))
}

func TestConvertNaNPropagates(t *testing.T) {
	got, err := Convert(math.NaN(), "m", "ft")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}
