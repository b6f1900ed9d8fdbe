// Package payment computes flat-rate loan installments and aggregates them
// with a fee schedule into final totals.
package payment

import (
	"github.com/bprsb-tools/kpr-quote/pkg/constants"
	"github.com/bprsb-tools/kpr-quote/pkg/fees"
	"github.com/bprsb-tools/kpr-quote/pkg/mathutil"
)

// MonthlyInstallment calculates the monthly payment for a loan under the flat
// interest scheme: interest accrues on the full original principal for the
// entire term regardless of paydown. This is not an amortizing calculation.
// Unusable arguments (non-finite numbers, non-positive principal or term)
// yield 0 rather than an error.
func MonthlyInstallment(principal, annualRatePercent float64, years int) float64 {
	if !mathutil.IsFinite(principal) || !mathutil.IsFinite(annualRatePercent) {
		return 0
	}
	if years <= 0 || principal <= 0 {
		return 0
	}

	months := float64(years * constants.MonthsPerYear)
	totalInterest := principal * (annualRatePercent / constants.PercentageMultiplier) * float64(years)
	totalRepayment := principal + totalInterest
	return totalRepayment / months
}

// SumFees returns the total of all fee line item amounts.
func SumFees(items []fees.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Amount
	}
	return total
}

// TotalDueAtDisbursement returns the cash required at signing: all one-time
// fees plus the first monthly installment.
func TotalDueAtDisbursement(totalFees, monthlyInstallment float64) float64 {
	return totalFees + monthlyInstallment
}
