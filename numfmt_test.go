// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"math"
	"testing"

	"github.com/cockroachdb/apd/v3"

	"go.yaml.in/emit/internal/libyaml"
	"go.yaml.in/emit/internal/testutil/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		bits       int
		scientific string
		decimal    string
	}{
		{"one", 1.0, 64, "1e+0", "1.0"},
		{"tenth", 0.1, 64, "1e-1", "0.1"},
		{"rounded sum", 0.1 + 0.2, 64, "3e-1", "0.3"},
		{"float32 tenth", float64(float32(0.1)), 32, "1e-1", "0.1"},
		{"float32 pi", float64(float32(3.14159265)), 32, "3.141593e+0", "3.141593"},
		{"fraction", 1234.5, 64, "1.2345e+3", "1234.5"},
		{"negative", -2.5, 64, "-2.5e+0", "-2.5"},
		{"large", 1e20, 64, "1e+20", "100000000000000000000.0"},
		{"small", 1.5e-7, 64, "1.5e-7", "0.00000015"},
		{"zero", 0, 64, "0e+0", "0.0"},
		{"fifteen digits", 1.2345678901234568, 64, "1.23456789012346e+0", "1.23456789012346"},
		{"nan", math.NaN(), 64, ".nan", ".nan"},
		{"inf", math.Inf(1), 64, ".inf", ".inf"},
		{"negative inf", math.Inf(-1), 32, "-.inf", "-.inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.scientific, formatFloat(tt.value, tt.bits, ScientificFormat))
			assert.Equal(t, tt.decimal, formatFloat(tt.value, tt.bits, DecimalFormat))
		})
	}
}

func TestFormatFloatReadsBackAsFloat(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 0.5, 1e100, 123456.789, math.MaxFloat64, math.SmallestNonzeroFloat64} {
		for _, format := range []NumberFormat{ScientificFormat, DecimalFormat} {
			s := formatFloat(f, 64, format)
			assert.Equalf(t, FloatTag, libyaml.ResolvePlain(s), "formatFloat(%v, %v) = %q", f, format, s)
		}
	}
}

func TestFormatDecimal(t *testing.T) {
	d := apd.New(12345, -2)
	assert.Equal(t, "1.2345e+2", formatDecimal(d, 0, ScientificFormat))
	assert.Equal(t, "123.45", formatDecimal(d, 0, DecimalFormat))
	assert.Equal(t, "1.23e+2", formatDecimal(d, 3, ScientificFormat))

	// Trailing zeros are dropped.
	assert.Equal(t, "1.5", formatDecimal(apd.New(1500, -3), 0, DecimalFormat))
	assert.Equal(t, "1500.0", formatDecimal(apd.New(15, 2), 0, DecimalFormat))

	nan := &apd.Decimal{Form: apd.NaN}
	assert.Equal(t, ".nan", formatDecimal(nan, 0, DecimalFormat))
	inf := &apd.Decimal{Form: apd.Infinite, Negative: true}
	assert.Equal(t, "-.inf", formatDecimal(inf, 0, ScientificFormat))
}
