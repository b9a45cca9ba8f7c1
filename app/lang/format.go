package lang

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Shape is the rendering category of a value.
type Shape int

const (
	ShapeInteger Shape = iota
	ShapeDecimal
	ShapeScientific
)

// FormatConfig sets the digit budgets of the Formatter.
type FormatConfig struct {
	IntegerDigits  int // total digits of an integer result
	FractionDigits int // fractional digits of a decimal result
	ExponentDigits int // exponent digits of a scientific result
	SciPrecision   int // fractional mantissa digits in scientific notation
	Language       language.Tag
}

// DefaultFormat is the en-GB calculator display.
var DefaultFormat = FormatConfig{
	IntegerDigits:  15,
	FractionDigits: 10,
	ExponentDigits: 3,
	SciPrecision:   8,
	Language:       language.BritishEnglish,
}

// Formatter renders and rounds numeric results.
type Formatter struct {
	cfg     FormatConfig
	printer *message.Printer
}

// NewFormatter returns a Formatter for cfg. Zero fields take their default.
func NewFormatter(cfg FormatConfig) *Formatter {
	if cfg.IntegerDigits <= 0 {
		cfg.IntegerDigits = DefaultFormat.IntegerDigits
	}
	if cfg.FractionDigits <= 0 {
		cfg.FractionDigits = DefaultFormat.FractionDigits
	}
	if cfg.ExponentDigits <= 0 {
		cfg.ExponentDigits = DefaultFormat.ExponentDigits
	}
	if cfg.SciPrecision <= 0 {
		cfg.SciPrecision = DefaultFormat.SciPrecision
	}
	if cfg.Language == language.Und {
		cfg.Language = DefaultFormat.Language
	}
	return &Formatter{cfg: cfg, printer: message.NewPrinter(cfg.Language)}
}

var (
	defaultFormatter = NewFormatter(DefaultFormat)
	displayPrinter   = message.NewPrinter(DefaultFormat.Language)
)

// Config returns the formatter's budgets.
func (f *Formatter) Config() FormatConfig { return f.cfg }

// Shape picks the rendering category of v. Values that natively need an
// exponent, or whose digits exceed the budget of their shape, are scientific.
// A decimal may show at most IntegerDigits digits in total.
func (f *Formatter) Shape(v float64) Shape {
	a := math.Abs(v)
	if !finite(v) || a >= 1e21 || (a != 0 && a < 1e-6) {
		return ShapeScientific
	}
	if a == math.Trunc(a) {
		if len(strconv.FormatFloat(a, 'f', 0, 64)) > f.cfg.IntegerDigits {
			return ShapeScientific
		}
		return ShapeInteger
	}
	s := f.fixed(a)
	// float64 holds about 16 significant digits; past the budget the
	// fixed rendering shows binary noise
	if s == "0" || len(s)-strings.Count(s, ".") > f.cfg.IntegerDigits {
		return ShapeScientific
	}
	return ShapeDecimal
}

// fixed renders a with the fractional cap, trailing zeros trimmed.
func (f *Formatter) fixed(a float64) string {
	s := strconv.FormatFloat(a, 'f', f.cfg.FractionDigits, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// Round trims v to the digit budget of its shape so floating-point noise does
// not accumulate between reduction steps. Scientific values keep the mantissa
// digits Format shows. Values whose exponent needs more digits than the
// budget allows become infinite.
func (f *Formatter) Round(v float64) float64 {
	if !finite(v) || v == 0 {
		return v
	}
	switch f.Shape(v) {
	case ShapeInteger:
		return v
	case ShapeDecimal:
		r, _ := strconv.ParseFloat(f.fixed(v), 64)
		return r
	}
	exp := int(math.Floor(math.Log10(math.Abs(v))))
	if len(strconv.Itoa(abs(exp))) > f.cfg.ExponentDigits {
		if exp > 0 {
			return math.Inf(sign(v))
		}
		return 0
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'e', f.cfg.SciPrecision, 64), 64)
	return r
}

// Format renders v for display: grouped digits for integers and decimals,
// normalized scientific notation otherwise.
func (f *Formatter) Format(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	switch f.Shape(v) {
	case ShapeInteger:
		if v == 0 {
			return "0"
		}
		return f.printer.Sprintf("%d", int64(v))
	case ShapeDecimal:
		s := f.fixed(math.Abs(v))
		intPart, frac, _ := strings.Cut(s, ".")
		out := f.group(intPart)
		if frac != "" {
			out += "." + frac
		}
		if v < 0 && s != "0" {
			out = "-" + out
		}
		return out
	}
	return strconv.FormatFloat(v, 'e', f.cfg.SciPrecision, 64)
}

// group inserts grouping separators into a run of digits.
func (f *Formatter) group(digits string) string {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return digits
	}
	return f.printer.Sprintf("%d", n)
}

// groupDigits groups a digit run the way the display does.
func groupDigits(digits string) string {
	if len(digits) < 4 {
		return digits
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return digits
	}
	return displayPrinter.Sprintf("%d", n)
}

// ParseOperand reads displayed text back into a value: grouping separators
// are dropped and a percent marker divides by 100.
func ParseOperand(text string) (float64, error) {
	l, err := parseLiteral(strings.TrimSpace(text))
	if err != nil {
		return 0, err
	}
	return l.scalar(), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
