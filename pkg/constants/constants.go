// Package constants provides shared constants for the kpr-quote application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons
	CurrencyTolerance = 0.01
)

// Loan term and rate table constants
const (
	// MinTermYears is the shortest accepted loan term
	MinTermYears = 1

	// MaxTermYears is the longest accepted loan term
	MaxTermYears = 15

	// ShortTermCutoffYears is the last term year that still receives the
	// short-term rate; longer terms up to MaxTermYears receive the
	// long-term rate
	ShortTermCutoffYears = 10

	// ShortTermAnnualRate is the flat annual rate (percent) for terms of
	// 1 through ShortTermCutoffYears years
	ShortTermAnnualRate = 6.88

	// LongTermAnnualRate is the flat annual rate (percent) for terms
	// above ShortTermCutoffYears through MaxTermYears years
	LongTermAnnualRate = 7.00
)

// Fee schedule constants; all amounts are whole rupiah. Tier thresholds use
// strict greater-than, so a principal exactly at a threshold stays in the
// lower tier.
const (
	// OriginationRate is the origination (provisi) fee rate on principal
	OriginationRate = 0.01

	// AdminRate is the administration fee rate on principal
	AdminRate = 0.0025

	// NotarialBindingThreshold is the principal above which the binding
	// fee switches from the fixed bank tier to the notarial tiers
	NotarialBindingThreshold = 200_000_000

	// NotarialBindingRateThreshold is the principal above which the
	// notarial binding fee becomes rate-based instead of fixed
	NotarialBindingRateThreshold = 800_000_000

	// NotarialBindingRate is the binding fee rate for principals above
	// NotarialBindingRateThreshold
	NotarialBindingRate = 0.002

	// NotarialBindingFixed is the fixed notarial binding fee
	NotarialBindingFixed = 500_000

	// BankBindingFixed is the fixed bank binding fee for principals at or
	// below NotarialBindingThreshold
	BankBindingFixed = 1_500_000

	// SecurityBindingFixed is the fixed SKMHT fee
	SecurityBindingFixed = 1_050_000

	// AppraisalFixed is the fixed appraisal (taksasi) component added to
	// the tiered survey fee
	AppraisalFixed = 500_000

	// CertificateCheckFixed is the fixed certificate check component of
	// the collateral legality fee
	CertificateCheckFixed = 250_000

	// AphtRate is the APHT component rate on principal (0.25% with a 1.25
	// notarial uplift)
	AphtRate = 0.0025 * 1.25

	// InsuranceRate is the annual property insurance premium rate on the
	// property price
	InsuranceRate = 0.0003

	// InsurancePolicyFee is the fixed policy issuance fee
	InsurancePolicyFee = 25_000

	// InsuranceStampDuty is the fixed stamp duty on the insurance policy
	InsuranceStampDuty = 10_000
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"
)

// Cache backend constants
const (
	// CacheBackendMemory selects the in-process quote cache
	CacheBackendMemory = "memory"

	// CacheBackendRedis selects the Redis quote cache
	CacheBackendRedis = "redis"
)
