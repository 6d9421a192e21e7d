// Package domain implements mortgage amortization math.
package domain

import (
	"errors"
	"math"
)

var (
	ErrInvalidPrincipal = errors.New("principal must be greater than zero")
	ErrInvalidRate      = errors.New("interest rate cannot be negative")
	ErrInvalidTerm      = errors.New("term must be at least one year")
)

// CalculationRequest is the input to a mortgage calculation
type CalculationRequest struct {
	Principal       float64 `json:"principal"`
	AnnualRate      float64 `json:"annualRate"` // percent, e.g. 6.5
	TermYears       int     `json:"termYears"`
	DownPayment     float64 `json:"downPayment"`
	IncludeTimeline bool    `json:"includeTimeline"`
}

// AmortizationEntry is one year of the payoff timeline
type AmortizationEntry struct {
	Year             int     `json:"year"`
	PrincipalPaid    float64 `json:"principalPaid"`
	InterestPaid     float64 `json:"interestPaid"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// CalculationResult summarizes the loan
type CalculationResult struct {
	LoanAmount     float64             `json:"loanAmount"`
	MonthlyPayment float64             `json:"monthlyPayment"`
	TotalPaid      float64             `json:"totalPaid"`
	TotalInterest  float64             `json:"totalInterest"`
	Timeline       []AmortizationEntry `json:"timeline,omitempty"`
}

// MonthlyPayment computes the fixed monthly payment for a fully amortizing
// loan. A zero rate degenerates to straight-line repayment.
func MonthlyPayment(principal, annualRate float64, termYears int) float64 {
	n := float64(termYears * 12)
	if annualRate == 0 {
		return principal / n
	}
	r := annualRate / 100 / 12
	factor := math.Pow(1+r, n)
	return principal * r * factor / (factor - 1)
}

// Calculate validates the request and produces the loan summary
func Calculate(req CalculationRequest) (*CalculationResult, error) {
	loan := req.Principal - req.DownPayment
	if loan <= 0 {
		return nil, ErrInvalidPrincipal
	}
	if req.AnnualRate < 0 {
		return nil, ErrInvalidRate
	}
	if req.TermYears < 1 {
		return nil, ErrInvalidTerm
	}

	monthly := MonthlyPayment(loan, req.AnnualRate, req.TermYears)
	months := float64(req.TermYears * 12)

	result := &CalculationResult{
		LoanAmount:     loan,
		MonthlyPayment: monthly,
		TotalPaid:      monthly * months,
		TotalInterest:  monthly*months - loan,
	}

	if req.IncludeTimeline {
		result.Timeline = amortize(loan, req.AnnualRate, req.TermYears, monthly)
	}
	return result, nil
}

// amortize walks the loan month by month and aggregates per year
func amortize(loan, annualRate float64, termYears int, monthly float64) []AmortizationEntry {
	r := annualRate / 100 / 12
	balance := loan
	timeline := make([]AmortizationEntry, 0, termYears)

	for year := 1; year <= termYears; year++ {
		var principalPaid, interestPaid float64
		for month := 0; month < 12; month++ {
			interest := balance * r
			principal := monthly - interest
			if principal > balance {
				principal = balance
			}
			balance -= principal
			principalPaid += principal
			interestPaid += interest
		}
		timeline = append(timeline, AmortizationEntry{
			Year:             year,
			PrincipalPaid:    principalPaid,
			InterestPaid:     interestPaid,
			RemainingBalance: balance,
		})
		if balance <= 0 {
			break
		}
	}
	return timeline
}

// frontEndRatio caps housing cost at 28% of gross monthly income
const frontEndRatio = 0.28

// AffordabilityRequest is the input to an affordability estimate
type AffordabilityRequest struct {
	AnnualIncome float64 `json:"annualIncome"`
	AnnualRate   float64 `json:"annualRate"`
	TermYears    int     `json:"termYears"`
	DownPayment  float64 `json:"downPayment"`
}

// AffordabilityResult is the estimated budget
type AffordabilityResult struct {
	MaxMonthlyPayment float64 `json:"maxMonthlyPayment"`
	MaxLoanAmount     float64 `json:"maxLoanAmount"`
	MaxHomePrice      float64 `json:"maxHomePrice"`
}

// Affordability estimates the largest loan whose payment stays inside the
// front-end ratio of the buyer's income.
func Affordability(req AffordabilityRequest) (*AffordabilityResult, error) {
	if req.AnnualIncome <= 0 {
		return nil, ErrInvalidPrincipal
	}
	if req.AnnualRate < 0 {
		return nil, ErrInvalidRate
	}
	if req.TermYears < 1 {
		return nil, ErrInvalidTerm
	}

	maxMonthly := req.AnnualIncome / 12 * frontEndRatio
	n := float64(req.TermYears * 12)

	var maxLoan float64
	if req.AnnualRate == 0 {
		maxLoan = maxMonthly * n
	} else {
		r := req.AnnualRate / 100 / 12
		factor := math.Pow(1+r, n)
		maxLoan = maxMonthly * (factor - 1) / (r * factor)
	}

	return &AffordabilityResult{
		MaxMonthlyPayment: maxMonthly,
		MaxLoanAmount:     maxLoan,
		MaxHomePrice:      maxLoan + req.DownPayment,
	}, nil
}
