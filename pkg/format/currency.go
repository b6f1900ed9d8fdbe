// Package format renders currency amounts for display.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Rupiah returns an amount as a rupiah string with Indonesian digit grouping,
// rounded to the whole rupiah (e.g., "Rp 1.234.567"). Non-finite values
// render as zero.
func Rupiah(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "Rp 0"
	}
	return printer.Sprintf("Rp %d", int64(math.Round(amount)))
}

// NumericRupiah returns the grouped numeric portion without the currency
// prefix (e.g., "1.234.567").
func NumericRupiah(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0"
	}
	return printer.Sprintf("%d", int64(math.Round(amount)))
}
