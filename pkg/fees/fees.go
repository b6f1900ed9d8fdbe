// Package fees computes the schedule of ancillary fees for a home-purchase
// loan. Every fee is derived independently from the validated principal,
// property price, and term via tiered or rate-based rules; none is
// user-editable.
package fees

import "github.com/bprsb-tools/kpr-quote/pkg/constants"

// Kind identifies a fee line item. Values are stable so renderers can attach
// locale-specific labels.
type Kind string

const (
	// KindOrigination is the origination (provisi) fee.
	KindOrigination Kind = "origination"

	// KindAdmin is the administration fee.
	KindAdmin Kind = "admin"

	// KindPowerOfAttorney is the credit binding (pengikatan) fee; its
	// label depends on whether the principal crosses the notarial
	// threshold.
	KindPowerOfAttorney Kind = "power_of_attorney"

	// KindSecurityBinding is the SKMHT fee.
	KindSecurityBinding Kind = "security_binding"

	// KindSurveyAppraisal is the combined survey and appraisal fee.
	KindSurveyAppraisal Kind = "survey_appraisal"

	// KindCollateralLegality is the combined collateral legality fee
	// (APHT, certificate check, PNBP).
	KindCollateralLegality Kind = "collateral_legality"

	// KindPropertyInsurance is the property loss insurance premium.
	KindPropertyInsurance Kind = "property_insurance"
)

// Kinds lists all fee kinds in schedule order.
var Kinds = []Kind{
	KindOrigination,
	KindAdmin,
	KindPowerOfAttorney,
	KindSecurityBinding,
	KindSurveyAppraisal,
	KindCollateralLegality,
	KindPropertyInsurance,
}

// LineItem is one computed fee.
type LineItem struct {
	Kind   Kind    `json:"kind" yaml:"kind"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Schedule computes all fee line items for the given principal, property
// price, and term. Exactly one line item per kind is returned, in schedule
// order. Incomplete input (principal or price not positive, or term below
// one year) yields all-zero amounts rather than an error; that state belongs
// to a half-filled form, not a failure.
func Schedule(principal, price float64, termYears int) []LineItem {
	items := make([]LineItem, 0, len(Kinds))
	if principal <= 0 || price <= 0 || termYears < constants.MinTermYears {
		for _, kind := range Kinds {
			items = append(items, LineItem{Kind: kind})
		}
		return items
	}

	items = append(items,
		LineItem{Kind: KindOrigination, Amount: principal * constants.OriginationRate},
		LineItem{Kind: KindAdmin, Amount: principal * constants.AdminRate},
		LineItem{Kind: KindPowerOfAttorney, Amount: bindingFee(principal)},
		LineItem{Kind: KindSecurityBinding, Amount: constants.SecurityBindingFixed},
		LineItem{Kind: KindSurveyAppraisal, Amount: surveyFee(principal) + constants.AppraisalFixed},
		LineItem{Kind: KindCollateralLegality, Amount: collateralLegalityFee(principal)},
		LineItem{Kind: KindPropertyInsurance, Amount: insuranceFee(price, termYears)},
	)
	return items
}

// bindingFee returns the pengikatan fee. Principals above the notarial
// threshold are bound notarially: rate-based above the upper threshold,
// otherwise a fixed notarial fee. At or below the threshold the bank binds
// the credit for a fixed fee.
func bindingFee(principal float64) float64 {
	if principal > constants.NotarialBindingThreshold {
		if principal > constants.NotarialBindingRateThreshold {
			return principal * constants.NotarialBindingRate
		}
		return constants.NotarialBindingFixed
	}
	return constants.BankBindingFixed
}

// surveyFee returns the tiered survey component; the fixed appraisal
// component is added by Schedule.
func surveyFee(principal float64) float64 {
	switch {
	case principal > 5_000_000_000:
		return 7_500_000
	case principal > 3_000_000_000:
		return 5_000_000
	case principal > 1_000_000_000:
		return 1_000_000
	default:
		return 500_000
	}
}

// collateralLegalityFee returns the combined APHT, certificate check, and
// PNBP fee. APHT is a flat rate on principal regardless of tier.
func collateralLegalityFee(principal float64) float64 {
	apht := constants.AphtRate * principal
	return apht + constants.CertificateCheckFixed + pnbpFee(principal)
}

// pnbpFee returns the tiered non-tax state revenue component.
func pnbpFee(principal float64) float64 {
	switch {
	case principal > 10_000_000_000:
		return 25_000_000
	case principal > 1_000_000_000:
		return 2_500_000
	case principal > 250_000_000:
		return 200_000
	default:
		return 50_000
	}
}

// insuranceFee returns the property loss insurance premium: an annual rate on
// the property price over the full term, plus policy and stamp duty fees.
func insuranceFee(price float64, termYears int) float64 {
	premium := price * constants.InsuranceRate * float64(termYears)
	return premium + constants.InsurancePolicyFee + constants.InsuranceStampDuty
}

// labels maps each fee kind to its localized label. KindPowerOfAttorney is
// resolved by Label instead since its text depends on the principal.
var labels = map[Kind]string{
	KindOrigination:        "Provisi",
	KindAdmin:              "Administrasi",
	KindPowerOfAttorney:    "Pengikatan",
	KindSecurityBinding:    "Biaya SKMHT",
	KindSurveyAppraisal:    "Biaya Survey & Taksasi",
	KindCollateralLegality: "Biaya Legalitas (APHT, Cek Sertifikat, PNBP)",
	KindPropertyInsurance:  "Asuransi Kerugian Properti",
}

// Label returns the localized label for a fee kind. The binding fee label is
// context-sensitive: notarial binding above the threshold, bank binding at or
// below it.
func Label(kind Kind, principal float64) string {
	if kind == KindPowerOfAttorney && principal > 0 {
		if principal > constants.NotarialBindingThreshold {
			return "PK Notaril"
		}
		return "Pengikatan Bank"
	}
	return labels[kind]
}
