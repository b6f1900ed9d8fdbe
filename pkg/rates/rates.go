// Package rates derives the applicable flat annual interest rate from the
// loan term.
package rates

import "github.com/bprsb-tools/kpr-quote/pkg/constants"

// Resolve returns the annual interest rate in percent for the given loan term
// in years. Terms of 1 through 10 years receive the short-term rate and terms
// of 11 through 15 years the long-term rate. Any other term has no rate; ok
// is false and the caller must not assert a rate for it.
func Resolve(termYears int) (ratePercent float64, ok bool) {
	switch {
	case termYears >= constants.MinTermYears && termYears <= constants.ShortTermCutoffYears:
		return constants.ShortTermAnnualRate, true
	case termYears > constants.ShortTermCutoffYears && termYears <= constants.MaxTermYears:
		return constants.LongTermAnnualRate, true
	default:
		return 0, false
	}
}
