// Package engine wires the validation, rate, fee, and payment stages into a
// single quote pipeline. Each evaluation is a pure function of its inputs:
// nothing is retained between calls and identical inputs always produce
// identical results.
package engine

import (
	"github.com/bprsb-tools/kpr-quote/pkg/fees"
	"github.com/bprsb-tools/kpr-quote/pkg/payment"
	"github.com/bprsb-tools/kpr-quote/pkg/rates"
	"github.com/bprsb-tools/kpr-quote/pkg/validation"
	"go.uber.org/zap"
)

// State is the terminal state of one evaluation cycle.
type State string

const (
	// StateEmpty means at least one input was blank; the quiescent state
	// with no result and no user-facing message.
	StateEmpty State = "empty"

	// StateInvalid means validation rejected the inputs; Message carries
	// the localized reason.
	StateInvalid State = "invalid"

	// StateComputed means a quote was produced.
	StateComputed State = "computed"
)

// Input holds the raw, possibly blank inputs of a quote request. All fields
// are strings at this boundary; an empty string means unset.
type Input struct {
	PropertyPrice string `json:"propertyPrice"`
	LoanAmount    string `json:"loanAmount"`
	TermYears     string `json:"termYears"`
}

// Quote is the complete result of a successful evaluation. It also carries
// the normalized inputs and derived rate so presentation and export
// collaborators need no second source.
type Quote struct {
	PropertyPrice          float64         `json:"propertyPrice" yaml:"propertyPrice"`
	LoanAmount             float64         `json:"loanAmount" yaml:"loanAmount"`
	TermYears              int             `json:"termYears" yaml:"termYears"`
	AnnualRatePercent      float64         `json:"annualRatePercent" yaml:"annualRatePercent"`
	MonthlyInstallment     float64         `json:"monthlyInstallment" yaml:"monthlyInstallment"`
	Fees                   []fees.LineItem `json:"fees" yaml:"fees"`
	TotalFees              float64         `json:"totalFees" yaml:"totalFees"`
	TotalDueAtDisbursement float64         `json:"totalDueAtDisbursement" yaml:"totalDueAtDisbursement"`
}

// Outcome is the result of one evaluation cycle. Quote is non-nil exactly
// when State is StateComputed.
type Outcome struct {
	State   State             `json:"state"`
	Reason  validation.Reason `json:"reason,omitempty"`
	Message string            `json:"message,omitempty"`
	Quote   *Quote            `json:"quote,omitempty"`
}

// Engine evaluates quote requests. It holds no mutable state; the logger is
// the only collaborator.
type Engine struct {
	logger *zap.Logger
}

// New constructs an Engine. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Evaluate runs the full pipeline: validate, resolve the rate, compute the
// fee schedule, compute the installment, aggregate. The rate is derived from
// the term before any dependent computation runs, so the installment and
// totals always observe the rate matching the current term, never a stale
// one. Validation failures short-circuit; no partial result is produced.
func (e *Engine) Evaluate(input Input) Outcome {
	outcome := validation.Validate(input.PropertyPrice, input.LoanAmount, input.TermYears)
	if !outcome.Valid {
		if outcome.Reason == validation.ReasonEmpty {
			return Outcome{State: StateEmpty, Reason: outcome.Reason}
		}
		e.logger.Debug("quote inputs rejected",
			zap.String("op", "engine.Evaluate"),
			zap.String("reason", string(outcome.Reason)),
		)
		return Outcome{
			State:   StateInvalid,
			Reason:  outcome.Reason,
			Message: outcome.Message(),
		}
	}
	req := outcome.Request

	// Stage one: derive the rate from the term. Validation guarantees the
	// term is in range, so the rate always resolves here; the resolver
	// still reports resolution explicitly for out-of-range callers.
	ratePercent, _ := rates.Resolve(req.TermYears)

	// Stage two: the fee schedule is independent of the rate; the
	// installment and totals depend on it.
	schedule := fees.Schedule(req.LoanAmount, req.PropertyPrice, req.TermYears)
	installment := payment.MonthlyInstallment(req.LoanAmount, ratePercent, req.TermYears)
	totalFees := payment.SumFees(schedule)
	totalDue := payment.TotalDueAtDisbursement(totalFees, installment)

	quote := &Quote{
		PropertyPrice:          req.PropertyPrice,
		LoanAmount:             req.LoanAmount,
		TermYears:              req.TermYears,
		AnnualRatePercent:      ratePercent,
		MonthlyInstallment:     installment,
		Fees:                   schedule,
		TotalFees:              totalFees,
		TotalDueAtDisbursement: totalDue,
	}

	e.logger.Debug("quote computed",
		zap.String("op", "engine.Evaluate"),
		zap.Float64("principal", req.LoanAmount),
		zap.Int("termYears", req.TermYears),
		zap.Float64("monthlyInstallment", installment),
	)

	return Outcome{State: StateComputed, Quote: quote}
}
