// Package output provides utilities for formatting and displaying quote
// results.
package output

import (
	"fmt"
	"strings"

	"github.com/bprsb-tools/kpr-quote/internal/engine"
	"github.com/bprsb-tools/kpr-quote/pkg/fees"
	"github.com/bprsb-tools/kpr-quote/pkg/format"
)

// PrettyFormat outputs a human-readable rather than machine-readable
// breakdown of the quote. Zero-amount fee lines are skipped.
func PrettyFormat(quote *engine.Quote) {
	fmt.Print(PrettyString(quote))
}

// PrettyString returns the human-readable breakdown as a string.
func PrettyString(quote *engine.Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, "--- Simulasi KPR: plafon %s, %d tahun, bunga %.2f%% flat ---\n",
		format.Rupiah(quote.LoanAmount), quote.TermYears, quote.AnnualRatePercent)
	fmt.Fprintf(&b, "Angsuran per Bulan                            | %s\n", format.Rupiah(quote.MonthlyInstallment))
	fmt.Fprintf(&b, "\nRincian Pembayaran Awal\n")
	fmt.Fprintf(&b, "Angsuran Pertama                              | %s\n", format.Rupiah(quote.MonthlyInstallment))
	for _, item := range quote.Fees {
		if item.Amount == 0 {
			continue
		}
		fmt.Fprintf(&b, "%-45s | %s\n", fees.Label(item.Kind, quote.LoanAmount), format.Rupiah(item.Amount))
	}
	fmt.Fprintf(&b, "%-45s | %s\n", "Total Biaya-biaya", format.Rupiah(quote.TotalFees))
	fmt.Fprintf(&b, "%-45s | %s\n", "Total Setoran Awal", format.Rupiah(quote.TotalDueAtDisbursement))

	return b.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(quote *engine.Quote) {
	fmt.Print(CsvString(quote))
}

// CsvString returns the quote in comma-separated value format. Amounts are
// raw numbers rounded to two decimals; all fee lines appear, including
// zero-amount ones, so columns stay stable across quotes.
func CsvString(quote *engine.Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, `"item","amount"`)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "\"monthly_installment\",\"%.2f\"\n", quote.MonthlyInstallment)
	for _, item := range quote.Fees {
		fmt.Fprintf(&b, "\"%s\",\"%.2f\"\n", item.Kind, item.Amount)
	}
	fmt.Fprintf(&b, "\"total_fees\",\"%.2f\"\n", quote.TotalFees)
	fmt.Fprintf(&b, "\"total_due_at_disbursement\",\"%.2f\"\n", quote.TotalDueAtDisbursement)

	return b.String()
}
