// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Number formatting policy for floats produced by the representer.

package emit

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// formatFloat renders f as a YAML float scalar. bits is 32 or 64 and
// selects the significant digit limit.
func formatFloat(f float64, bits int, format NumberFormat) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	digits := DoubleMaximumSignificantDigits
	if bits == 32 {
		digits = FloatMaximumSignificantDigits
	}
	d, _, err := apd.NewFromString(strconv.FormatFloat(f, 'e', -1, bits))
	if err != nil {
		// The shortest representation always parses.
		panic(err)
	}
	return formatDecimal(d, digits, format)
}

// formatDecimal rounds d to at most digits significant digits, or not at
// all when digits is zero, and renders it in the given format. Finite
// values always read back as floats.
func formatDecimal(d *apd.Decimal, digits int, format NumberFormat) string {
	switch d.Form {
	case apd.NaN, apd.NaNSignaling:
		return ".nan"
	case apd.Infinite:
		if d.Negative {
			return "-.inf"
		}
		return ".inf"
	}
	var r apd.Decimal
	if digits > 0 {
		ctx := apd.BaseContext.WithPrecision(uint32(digits))
		ctx.Rounding = apd.RoundHalfEven
		if _, err := ctx.Round(&r, d); err != nil {
			panic(err)
		}
	} else {
		r.Set(d)
	}
	r.Reduce(&r)

	if format == DecimalFormat {
		s := r.Text('f')
		if !strings.Contains(s, ".") {
			s += "." + strings.Repeat("0", DoubleMinimumFractionDigits)
		}
		return s
	}

	var b strings.Builder
	if r.Negative {
		b.WriteByte('-')
	}
	coeff := "0"
	exp := int64(0)
	if !r.IsZero() {
		coeff = r.Coeff.String()
		exp = int64(r.Exponent) + int64(len(coeff)) - 1
	}
	b.WriteByte(coeff[0])
	if len(coeff) > 1 {
		b.WriteByte('.')
		b.WriteString(coeff[1:])
	}
	b.WriteByte('e')
	if exp >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(strconv.FormatInt(exp, 10))
	return b.String()
}
