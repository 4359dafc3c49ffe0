// Package currency renders amounts as Indonesian Rupiah.
package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const symbol = "Rp"

var printer = message.NewPrinter(language.Indonesian)

// Format renders amount in Rupiah with zero fraction digits, e.g. 15000 → "Rp15.000".
// Fractions round half away from zero. Negative and non-finite inputs pass through:
// -15000 → "-Rp15.000", NaN → "RpNaN", +Inf → "Rp∞".
func Format(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return symbol + "NaN"
	case math.IsInf(amount, 1):
		return symbol + "∞"
	case math.IsInf(amount, -1):
		return "-" + symbol + "∞"
	}

	rounded := math.Round(amount)
	if rounded == 0 {
		return symbol + "0"
	}
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	if rounded >= math.MaxInt64 {
		return sign + symbol + printer.Sprintf("%.0f", rounded)
	}
	return sign + symbol + printer.Sprintf("%d", int64(rounded))
}
