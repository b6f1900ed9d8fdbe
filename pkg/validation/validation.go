// Package validation provides input validation for quote requests along with
// common validation utilities.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bprsb-tools/kpr-quote/pkg/constants"
	"github.com/bprsb-tools/kpr-quote/pkg/mathutil"
)

// Reason identifies why a set of quote inputs was rejected.
type Reason string

const (
	// ReasonNone means validation passed.
	ReasonNone Reason = ""

	// ReasonEmpty means at least one input was left blank. This is the
	// quiescent state for a partially filled form and carries no
	// user-facing message.
	ReasonEmpty Reason = "empty"

	// ReasonBadPrice means the property price did not parse to a finite
	// number greater than zero.
	ReasonBadPrice Reason = "bad_price"

	// ReasonBadLoanAmount means the loan amount did not parse to a finite
	// number greater than zero.
	ReasonBadLoanAmount Reason = "bad_loan_amount"

	// ReasonLoanExceedsPrice means the loan amount exceeded the property
	// price.
	ReasonLoanExceedsPrice Reason = "loan_exceeds_price"

	// ReasonBadTerm means the term did not parse to an integer between
	// MinTermYears and MaxTermYears inclusive.
	ReasonBadTerm Reason = "bad_term"
)

// messages maps each rejection reason to its localized user-facing text.
// ReasonEmpty intentionally has no message.
var messages = map[Reason]string{
	ReasonBadPrice:         "Silakan masukkan Harga Rumah yang valid.",
	ReasonBadLoanAmount:    "Silakan masukkan Plafon Pinjaman yang valid.",
	ReasonLoanExceedsPrice: "Plafon pinjaman tidak boleh melebihi harga rumah.",
	ReasonBadTerm:          fmt.Sprintf("Jangka Waktu harus antara %d dan %d tahun.", constants.MinTermYears, constants.MaxTermYears),
}

// Message returns the localized text for a rejection reason, or an empty
// string for ReasonNone and ReasonEmpty.
func Message(reason Reason) string {
	return messages[reason]
}

// Request holds the normalized numeric inputs of a validated quote request.
type Request struct {
	PropertyPrice float64
	LoanAmount    float64
	TermYears     int
}

// Outcome is the result of validating raw quote inputs. Exactly one of the
// following holds: Valid is true and Request is populated, or Valid is false
// and Reason identifies the first failing check.
type Outcome struct {
	Valid   bool
	Reason  Reason
	Request Request
}

// Invalid returns an Outcome for the given rejection reason.
func Invalid(reason Reason) Outcome {
	return Outcome{Valid: false, Reason: reason}
}

// Message returns the localized text for the outcome's reason.
func (o Outcome) Message() string {
	return Message(o.Reason)
}

// Validate checks the three primary inputs for presence, range, and
// cross-field consistency. Checks run in a fixed order and the first failure
// wins; no accumulation of multiple errors. Blank inputs yield ReasonEmpty
// rather than an error so a partially filled form stays quiet.
func Validate(propertyPrice, loanAmount, termYears string) Outcome {
	propertyPrice = strings.TrimSpace(propertyPrice)
	loanAmount = strings.TrimSpace(loanAmount)
	termYears = strings.TrimSpace(termYears)

	if propertyPrice == "" || loanAmount == "" || termYears == "" {
		return Invalid(ReasonEmpty)
	}

	price, err := strconv.ParseFloat(propertyPrice, 64)
	if err != nil || !mathutil.IsFinite(price) || price <= 0 {
		return Invalid(ReasonBadPrice)
	}

	amount, err := strconv.ParseFloat(loanAmount, 64)
	if err != nil || !mathutil.IsFinite(amount) || amount <= 0 {
		return Invalid(ReasonBadLoanAmount)
	}

	if amount > price {
		return Invalid(ReasonLoanExceedsPrice)
	}

	term, err := strconv.Atoi(termYears)
	if err != nil || term < constants.MinTermYears || term > constants.MaxTermYears {
		return Invalid(ReasonBadTerm)
	}

	return Outcome{
		Valid: true,
		Request: Request{
			PropertyPrice: price,
			LoanAmount:    amount,
			TermYears:     term,
		},
	}
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}
