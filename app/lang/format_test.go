package lang

import (
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		v     float64
		want  string
		shape Shape
	}{
		{0, "0", ShapeInteger},
		{5, "5", ShapeInteger},
		{-6, "-6", ShapeInteger},
		{1234567, "1,234,567", ShapeInteger},
		{999999999999999, "999,999,999,999,999", ShapeInteger},
		{1e15, "1.00000000e+15", ShapeScientific},
		{1e21, "1.00000000e+21", ShapeScientific},
		{3.5, "3.5", ShapeDecimal},
		{-1234.5, "-1,234.5", ShapeDecimal},
		{1.0 / 3, "0.3333333333", ShapeDecimal},
		{0.00000123, "0.00000123", ShapeDecimal},
		{1.5e-7, "1.50000000e-07", ShapeScientific},
		{-2.5e30, "-2.50000000e+30", ShapeScientific},
		{12345.6789012345, "12,345.6789012345", ShapeDecimal},
		{123456789012345.67, "1.23456789e+14", ShapeScientific},
		{98765432101.123456789, "9.87654321e+10", ShapeScientific},
		{-123456.1234567891, "-1.23456123e+05", ShapeScientific},
	}

	for _, tt := range tests {
		if got := defaultFormatter.Shape(tt.v); got != tt.shape {
			t.Errorf("Shape(%v) = %d, want %d", tt.v, got, tt.shape)
		}
		if got := defaultFormatter.Format(tt.v); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		v    float64
		want float64
	}{
		{0.1 + 0.2, 0.3},
		{7, 7},
		{2.0 / 3, 0.6666666667},
		{1e25 + 1e10, 1e25},
		{1.0 / 7000000, 1.42857143e-07},
		{98765432101.123456789, 9.87654321e10},
		{math.Inf(1), math.Inf(1)},
	}

	for _, tt := range tests {
		if got := defaultFormatter.Round(tt.v); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestRoundExponentBudget(t *testing.T) {
	f := NewFormatter(FormatConfig{ExponentDigits: 2})
	if got := f.Round(1e150); !math.IsInf(got, 1) {
		t.Errorf("Round(1e150) = %v, want +Inf", got)
	}
	if got := f.Round(-1e150); !math.IsInf(got, -1) {
		t.Errorf("Round(-1e150) = %v, want -Inf", got)
	}
	if got := f.Round(1e-150); got != 0 {
		t.Errorf("Round(1e-150) = %v, want 0", got)
	}
	if got := f.Round(1e50); got != 1e50 {
		t.Errorf("Round(1e50) = %v", got)
	}
}

func TestNewFormatterDefaults(t *testing.T) {
	f := NewFormatter(FormatConfig{FractionDigits: 3})
	cfg := f.Config()
	if cfg.IntegerDigits != 15 || cfg.FractionDigits != 3 || cfg.SciPrecision != 8 || cfg.Language != DefaultFormat.Language {
		t.Errorf("config = %+v", cfg)
	}
	if got := f.Format(2.0 / 3); got != "0.667" {
		t.Errorf("Format(2/3) = %q, want 0.667", got)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	values := []float64{0, 42, -6, 1234567, 0.3333333333, -1234.5, 1e25, 1.42857143e-07, 123456789012345}
	for _, v := range values {
		text := defaultFormatter.Format(v)
		got, err := ParseOperand(text)
		if err != nil {
			t.Errorf("ParseOperand(%q): %v", text, err)
			continue
		}
		if got != v {
			t.Errorf("ParseOperand(Format(%v)) = %v via %q", v, got, text)
		}
	}

	if v, err := ParseOperand("50%"); err != nil || v != 0.5 {
		t.Errorf("ParseOperand(50%%) = %v, %v", v, err)
	}
	if _, err := ParseOperand("-"); KindOf(err) != MalformedExpression {
		t.Errorf("ParseOperand(-) error = %v", err)
	}
}
