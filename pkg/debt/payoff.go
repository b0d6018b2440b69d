// Package debt provides closed-form debt payoff calculations.
package debt

import (
	"math"
	"time"

	"github.com/avalle/asset-runway/pkg/constants"
)

// Status classifies the outcome of a payoff calculation. Edge cases are
// reported through the status rather than an error so callers can branch
// without unwrapping.
type Status string

const (
	// StatusPaidOff indicates the balance was already zero or negative.
	StatusPaidOff Status = "already_paid"

	// StatusOnTrack indicates the payment retires the debt in a finite
	// number of months.
	StatusOnTrack Status = "on_track"

	// StatusUnderwater indicates the payment does not exceed the monthly
	// interest, so the principal never decreases.
	StatusUnderwater Status = "underwater"

	// StatusInvalidInput indicates the inputs cannot form a valid payoff
	// calculation (non-positive payment or numeric failure).
	StatusInvalidInput Status = "invalid_input"
)

// Result holds the payoff timeline for a debt.
type Result struct {
	Status          Status
	MonthsRemaining int
	TotalInterest   float64
	PayoffYear      int
	PayoffMonth     int
	// MonthlyShortfall is set only for StatusUnderwater and reports how far
	// the payment falls short of the first month's interest.
	MonthlyShortfall float64
}

// Payoff calculates when a debt will be paid off using the standard
// fixed-payment amortization identity, relative to the current year.
func Payoff(balance, annualRate, monthlyPayment float64) Result {
	return PayoffAt(balance, annualRate, monthlyPayment, time.Now().Year())
}

// PayoffAt is Payoff with an explicit base year for the payoff date, which
// keeps the calculation reproducible in tests.
func PayoffAt(balance, annualRate, monthlyPayment float64, baseYear int) Result {
	if balance <= 0 {
		return Result{
			Status:     StatusPaidOff,
			PayoffYear: baseYear,
		}
	}

	if monthlyPayment <= 0 {
		return Result{Status: StatusInvalidInput}
	}

	monthlyRate := annualRate / constants.MonthsPerYear

	// Zero-interest loans divide out directly.
	if monthlyRate <= 0 {
		months := int(math.Ceil(balance / monthlyPayment))
		return Result{
			Status:          StatusOnTrack,
			MonthsRemaining: months,
			PayoffYear:      baseYear + months/constants.MonthsPerYear,
			PayoffMonth:     months % constants.MonthsPerYear,
		}
	}

	monthlyInterest := balance * monthlyRate
	if monthlyPayment <= monthlyInterest {
		return Result{
			Status:           StatusUnderwater,
			MonthlyShortfall: monthlyInterest - monthlyPayment,
		}
	}

	// n = -ln(1 - r*P/M) / ln(1 + r)
	months := -math.Log(1-(monthlyRate*balance)/monthlyPayment) / math.Log(1+monthlyRate)
	if math.IsNaN(months) || math.IsInf(months, 0) {
		return Result{Status: StatusInvalidInput}
	}
	monthsRemaining := int(math.Ceil(months))

	return Result{
		Status:          StatusOnTrack,
		MonthsRemaining: monthsRemaining,
		TotalInterest:   float64(monthsRemaining)*monthlyPayment - balance,
		PayoffYear:      baseYear + monthsRemaining/constants.MonthsPerYear,
		PayoffMonth:     monthsRemaining % constants.MonthsPerYear,
	}
}

// AnnualPrincipal returns the principal retired over one year under the
// annual interest-then-principal approximation used by the runway simulator:
// 12 payments less one year of interest on the starting balance. The value is
// negative when the debt is underwater.
func AnnualPrincipal(balance, annualRate, monthlyPayment float64) float64 {
	return monthlyPayment*constants.MonthsPerYear - balance*annualRate
}
