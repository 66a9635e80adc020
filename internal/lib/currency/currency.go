// Package currency converts stored minor units (cents) into the values
// returned to callers. Amounts stay integers until this boundary.
package currency

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Major converts minor units to major units without float rounding.
func Major(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// MajorFloat is Major as a float64, for JSON fields typed as numbers.
func MajorFloat(minor int64) float64 {
	f, _ := Major(minor).Float64()
	return f
}

// Format renders minor units as US dollars: 123456 -> "$1,234.56",
// -5 -> "-$0.05", 0 -> "$0.00".
func Format(minor int64) string {
	d := Major(minor)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.IntPart()
	fraction := d.Sub(decimal.NewFromInt(whole)).StringFixed(2)

	return sign + "$" + humanize.Comma(whole) + fraction[1:]
}
