// Package money holds the decimal rounding and string formatting rules shared
// by every account type. Amounts are rendered Swedish-style ("1 234.50 kr")
// with the decimal comma normalized to a period, so that downstream lists
// joined with commas stay unambiguous.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Hundred divides percentages into rates.
var Hundred = decimal.NewFromInt(100)

// RoundHalfUp2 rounds to 2 decimal places, halves away from zero.
func RoundHalfUp2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatCurrency renders an exact decimal as "<amount> kr" with two decimals,
// a period decimal separator and U+00A0 between thousands groups.
func FormatCurrency(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	b.WriteString(" kr")
	return b.String()
}

// FormatPercent renders a percentage rate with at most one decimal place,
// trailing zeros trimmed: 2.4 -> "2.4 %", 5.0 -> "5 %".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Round(1).String() + " %"
}
