package payment

import (
	"math"
	"testing"

	"github.com/bprsb-tools/kpr-quote/pkg/fees"
)

func TestMonthlyInstallment(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		years             int
		expected          float64
	}{
		{
			name:              "Reference ten-year loan",
			principal:         400_000_000,
			annualRatePercent: 6.88,
			years:             10,
			// (400,000,000 + 400,000,000*0.0688*10) / 120
			expected: 5_626_666.666666667,
		},
		{
			name:              "Long-term rate",
			principal:         600_000_000,
			annualRatePercent: 7.00,
			years:             15,
			// (600,000,000 + 600,000,000*0.07*15) / 180
			expected: 6_833_333.333333333,
		},
		{
			name:              "Zero rate divides principal evenly",
			principal:         120_000_000,
			annualRatePercent: 0,
			years:             10,
			expected:          1_000_000,
		},
		{
			name:              "Zero principal",
			principal:         0,
			annualRatePercent: 6.88,
			years:             10,
			expected:          0,
		},
		{
			name:              "Negative principal",
			principal:         -100,
			annualRatePercent: 6.88,
			years:             10,
			expected:          0,
		},
		{
			name:              "Zero years",
			principal:         400_000_000,
			annualRatePercent: 6.88,
			years:             0,
			expected:          0,
		},
		{
			name:              "NaN principal",
			principal:         math.NaN(),
			annualRatePercent: 6.88,
			years:             10,
			expected:          0,
		},
		{
			name:              "NaN rate",
			principal:         400_000_000,
			annualRatePercent: math.NaN(),
			years:             10,
			expected:          0,
		},
		{
			name:              "Infinite rate",
			principal:         400_000_000,
			annualRatePercent: math.Inf(1),
			years:             10,
			expected:          0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyInstallment(tt.principal, tt.annualRatePercent, tt.years)

			if math.Abs(got-tt.expected) > 0.01 {
				t.Errorf("MonthlyInstallment() = %.6f, expected %.6f", got, tt.expected)
			}
		})
	}
}

func TestFlatRateChargesFullPrincipal(t *testing.T) {
	// Under the flat scheme total interest is rate on the original
	// principal for the whole term, so total repayment over the term must
	// equal principal plus that interest exactly.
	principal := 400_000_000.0
	years := 10
	installment := MonthlyInstallment(principal, 6.88, years)

	totalRepayment := installment * float64(years*12)
	expected := principal + principal*0.0688*float64(years)
	if math.Abs(totalRepayment-expected) > 0.01 {
		t.Errorf("total repayment = %.2f, expected %.2f", totalRepayment, expected)
	}
}

func TestSumFees(t *testing.T) {
	items := []fees.LineItem{
		{Kind: fees.KindOrigination, Amount: 4_000_000},
		{Kind: fees.KindAdmin, Amount: 1_000_000},
		{Kind: fees.KindSecurityBinding, Amount: 1_050_000},
	}

	if got := SumFees(items); got != 6_050_000 {
		t.Errorf("SumFees() = %.2f, expected 6050000", got)
	}
	if got := SumFees(nil); got != 0 {
		t.Errorf("SumFees(nil) = %.2f, expected 0", got)
	}
}

func TestTotalDueAtDisbursement(t *testing.T) {
	if got := TotalDueAtDisbursement(10_785_000, 5_626_666.67); math.Abs(got-16_411_666.67) > 0.01 {
		t.Errorf("TotalDueAtDisbursement() = %.2f, expected 16411666.67", got)
	}
}
