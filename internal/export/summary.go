// Package export builds the offer summary document handed to presentation
// and document collaborators. The summary is pass-through data plus a
// generation timestamp; all amounts come from the engine untouched.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/bprsb-tools/kpr-quote/internal/engine"
	"github.com/bprsb-tools/kpr-quote/pkg/fees"
	"github.com/bprsb-tools/kpr-quote/pkg/format"
	"gopkg.in/yaml.v3"
)

// CostLine is one labeled fee entry of the summary.
type CostLine struct {
	Kind   fees.Kind `json:"kind" yaml:"kind"`
	Label  string    `json:"label" yaml:"label"`
	Amount float64   `json:"amount" yaml:"amount"`
}

// Summary is the offer summary document. Input fields are carried verbatim
// as entered so the rendered document matches what the applicant typed.
type Summary struct {
	GeneratedAt            time.Time  `json:"generatedAt" yaml:"generatedAt"`
	PropertyPrice          string     `json:"propertyPrice" yaml:"propertyPrice"`
	LoanAmount             string     `json:"loanAmount" yaml:"loanAmount"`
	TermYears              string     `json:"termYears" yaml:"termYears"`
	AnnualRatePercent      float64    `json:"annualRatePercent" yaml:"annualRatePercent"`
	MonthlyInstallment     float64    `json:"monthlyInstallment" yaml:"monthlyInstallment"`
	Costs                  []CostLine `json:"costs" yaml:"costs"`
	TotalFees              float64    `json:"totalFees" yaml:"totalFees"`
	TotalDueAtDisbursement float64    `json:"totalDueAtDisbursement" yaml:"totalDueAtDisbursement"`
}

// Build assembles a Summary from the raw inputs and the computed quote.
// Zero-amount fee lines are omitted; they carry no information in an offer
// document. The timestamp is caller-supplied so documents are reproducible
// in tests.
func Build(input engine.Input, quote engine.Quote, generatedAt time.Time) Summary {
	costs := make([]CostLine, 0, len(quote.Fees))
	for _, item := range quote.Fees {
		if item.Amount == 0 {
			continue
		}
		costs = append(costs, CostLine{
			Kind:   item.Kind,
			Label:  fees.Label(item.Kind, quote.LoanAmount),
			Amount: item.Amount,
		})
	}

	return Summary{
		GeneratedAt:            generatedAt,
		PropertyPrice:          strings.TrimSpace(input.PropertyPrice),
		LoanAmount:             strings.TrimSpace(input.LoanAmount),
		TermYears:              strings.TrimSpace(input.TermYears),
		AnnualRatePercent:      quote.AnnualRatePercent,
		MonthlyInstallment:     quote.MonthlyInstallment,
		Costs:                  costs,
		TotalFees:              quote.TotalFees,
		TotalDueAtDisbursement: quote.TotalDueAtDisbursement,
	}
}

// YAML serializes the summary for download or further processing.
func (s Summary) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// Text renders the summary as a plain-text offer document.
func (s Summary) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Penawaran Simulasi Kredit Pemilikan Rumah (KPR)\n")
	fmt.Fprintf(&b, "Diterbitkan: %s\n\n", s.GeneratedAt.Format("2 January 2006"))

	fmt.Fprintf(&b, "Informasi Properti dan Pinjaman\n")
	fmt.Fprintf(&b, "  Harga Properti     : %s\n", s.PropertyPrice)
	fmt.Fprintf(&b, "  Plafon Pinjaman    : %s\n", s.LoanAmount)
	fmt.Fprintf(&b, "  Jangka Waktu       : %s Tahun\n", s.TermYears)
	fmt.Fprintf(&b, "  Suku Bunga p.a.    : %.2f%% (Flat)\n\n", s.AnnualRatePercent)

	if len(s.Costs) > 0 {
		fmt.Fprintf(&b, "Rincian Biaya\n")
		for _, cost := range s.Costs {
			fmt.Fprintf(&b, "  %-45s %s\n", cost.Label, format.Rupiah(cost.Amount))
		}
		fmt.Fprintf(&b, "  %-45s %s\n\n", "Total Biaya Kredit", format.Rupiah(s.TotalFees))
	}

	fmt.Fprintf(&b, "Ringkasan Simulasi Pembayaran\n")
	fmt.Fprintf(&b, "  Angsuran per Bulan : %s\n", format.Rupiah(s.MonthlyInstallment))
	fmt.Fprintf(&b, "  Total Setoran Awal : %s\n", format.Rupiah(s.TotalDueAtDisbursement))

	return b.String()
}
