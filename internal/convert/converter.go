package convert

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/cadcheme/cheuc/internal/dimension"
	"github.com/cadcheme/cheuc/internal/expr"
	"github.com/cadcheme/cheuc/internal/units"
)

// Converter converts values between unit expressions resolved against one
// table. It holds no mutable state and is safe for concurrent use.
type Converter struct {
	table  *units.Table
	logger *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger used for debug-level conversion records.
// A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		c.logger = l
	}
}

// New returns a Converter over table. A nil table means units.Default().
func New(table *units.Table, opts ...Option) *Converter {
	if table == nil {
		table = units.Default()
	}
	c := &Converter{
		table:  table,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the table the converter resolves against.
func (c *Converter) Table() *units.Table {
	return c.table
}

// WithTable returns a converter over table that keeps c's options. A nil
// table means units.Default().
func (c *Converter) WithTable(table *units.Table) *Converter {
	if table == nil {
		table = units.Default()
	}
	cp := *c
	cp.table = table
	return &cp
}

// Conversion is a resolved pair of unit expressions that can be applied to
// any number of values.
type Conversion struct {
	From expr.Parsed `json:"from"`
	To   expr.Parsed `json:"to"`

	// Ratio is From.Factor / To.Factor. For affine conversions it is the
	// ratio for temperature differences and Apply does not use it.
	Ratio float64 `json:"ratio"`

	// Affine is set when both sides are bare temperature symbols and values
	// are converted as absolute readings through kelvin.
	Affine bool `json:"affine"`

	fromUnit string
	toUnit   string
}

// Apply converts value.
func (cv *Conversion) Apply(value float64) (float64, error) {
	if cv.Affine {
		return convertTemperature(value, cv.fromUnit, cv.toUnit)
	}
	return value * cv.Ratio, nil
}

// Prepare resolves from and to and checks that their dimensions agree.
func (c *Converter) Prepare(from, to string) (*Conversion, error) {
	cv, err := c.prepare(from, to)
	if err != nil {
		c.logger.Debug("conversion rejected",
			"from", from,
			"to", to,
			"code", Code(err),
			"error", err,
		)
		return nil, err
	}
	c.logger.Debug("conversion prepared",
		"from", from,
		"to", to,
		"ratio", cv.Ratio,
		"affine", cv.Affine,
		"dimensions", cv.From.Dimensions.String(),
	)
	return cv, nil
}

func (c *Converter) prepare(from, to string) (*Conversion, error) {
	fromUnit, toUnit := strings.TrimSpace(from), strings.TrimSpace(to)

	// Bare temperature symbols are absolute readings and bypass the parser.
	// Inside a compound expression a temperature symbol is a degree-sized
	// scale and takes the multiplicative path below.
	if units.IsTemperature(fromUnit) && units.IsTemperature(toUnit) {
		return c.prepareAffine(from, to, fromUnit, toUnit)
	}

	fromParsed, err := expr.Parse(c.table, from)
	if err != nil {
		return nil, err
	}
	toParsed, err := expr.Parse(c.table, to)
	if err != nil {
		return nil, err
	}

	if !dimension.Equal(fromParsed.Dimensions, toParsed.Dimensions) {
		return nil, &IncompatibleDimensionsError{
			From:           from,
			To:             to,
			FromDimensions: fromParsed.Dimensions,
			ToDimensions:   toParsed.Dimensions,
		}
	}

	return &Conversion{
		From:     fromParsed,
		To:       toParsed,
		Ratio:    fromParsed.Factor / toParsed.Factor,
		fromUnit: fromUnit,
		toUnit:   toUnit,
	}, nil
}

func (c *Converter) prepareAffine(from, to, fromUnit, toUnit string) (*Conversion, error) {
	fromScale, err := c.table.Resolve(fromUnit)
	if err != nil {
		return nil, err
	}
	toScale, err := c.table.Resolve(toUnit)
	if err != nil {
		return nil, err
	}
	return &Conversion{
		From:     expr.Parsed{Expression: from, Factor: fromScale.Factor, Dimensions: fromScale.Dimensions},
		To:       expr.Parsed{Expression: to, Factor: toScale.Factor, Dimensions: toScale.Dimensions},
		Ratio:    fromScale.Factor / toScale.Factor,
		Affine:   true,
		fromUnit: fromUnit,
		toUnit:   toUnit,
	}, nil
}

// Convert converts value from one unit expression to another.
func (c *Converter) Convert(value float64, from, to string) (float64, error) {
	cv, err := c.Prepare(from, to)
	if err != nil {
		return 0, err
	}
	return cv.Apply(value)
}

var defaultConverter = sync.OnceValue(func() *Converter {
	return New(units.Default())
})

// Convert converts value between unit expressions using the default table.
//
//	Convert(1, "kW/(m2.K)", "W/(m2.K)") // 1000
//	Convert(100, "degC", "degF")        // 212
func Convert(value float64, from, to string) (float64, error) {
	return defaultConverter().Convert(value, from, to)
}
