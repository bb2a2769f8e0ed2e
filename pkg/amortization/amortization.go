// Package amortization computes fixed-payment loan amortization schedules.
package amortization

import (
	"errors"
	"fmt"

	"github.com/hamii31/loan-calculator/pkg/constants"
	"github.com/hamii31/loan-calculator/pkg/mathutil"
)

// ErrInvalidParameter indicates that a loan parameter violates the engine's
// preconditions.
var ErrInvalidParameter = errors.New("invalid loan parameter")

// Parameters holds the inputs for a schedule computation. MonthlyRate is the
// periodic decimal rate (annual rate / 12), not a percentage.
type Parameters struct {
	Principal      float64
	MonthlyRate    float64
	MonthlyPayment float64
	MaxYears       int
}

// Validate checks the engine preconditions. Range limits beyond these are an
// input-layer policy, not enforced here.
func (p Parameters) Validate() error {
	if p.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive, got %.2f", ErrInvalidParameter, p.Principal)
	}
	if p.MonthlyRate < 0 {
		return fmt.Errorf("%w: monthly rate must be non-negative, got %f", ErrInvalidParameter, p.MonthlyRate)
	}
	if p.MonthlyPayment <= 0 {
		return fmt.Errorf("%w: monthly payment must be positive, got %.2f", ErrInvalidParameter, p.MonthlyPayment)
	}
	if p.MaxYears < 1 {
		return fmt.Errorf("%w: term must be at least 1 year, got %d", ErrInvalidParameter, p.MaxYears)
	}
	return nil
}

// PaymentRecord holds the values for a single period's payment.
type PaymentRecord struct {
	Period              int
	Year                int
	Payment             float64
	Interest            float64
	Principal           float64
	RemainingBalance    float64
	CumulativeInterest  float64
	CumulativePrincipal float64
}

// Schedule is the result of a single engine invocation.
type Schedule struct {
	Records         []PaymentRecord
	TotalInterest   float64
	TotalPrincipal  float64
	PeriodsToPayoff int
}

// Compute generates the month-by-month amortization schedule for a
// fixed-payment loan. Interest and principal portions are rounded to two
// decimals at the point of computation and the running totals accumulate the
// rounded values; rounding at the end instead would drift by cents over long
// schedules.
//
// A payment that does not cover the first period's interest yields negative
// principal portions and a growing balance until the term is exhausted. That
// is a representable schedule, not an error; warning about it is left to the
// input layer.
func Compute(params Parameters) (*Schedule, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	schedule := &Schedule{
		Records: make([]PaymentRecord, 0, params.MaxYears*constants.MonthsPerYear),
	}
	balance := params.Principal
	totalInterest := 0.0
	totalPrincipal := 0.0
	period := 0

	for year := 1; year <= params.MaxYears; year++ {
		for month := 1; month <= constants.MonthsPerYear; month++ {
			period++

			interest := mathutil.Round(balance * params.MonthlyRate)
			principalPart := mathutil.Round(params.MonthlyPayment - interest)

			payment := params.MonthlyPayment
			if principalPart > balance {
				// Final period: pay off exactly what remains.
				principalPart = balance
				payment = interest + principalPart
			}

			totalInterest += interest
			totalPrincipal += principalPart
			balance -= principalPart

			schedule.Records = append(schedule.Records, PaymentRecord{
				Period:              period,
				Year:                year,
				Payment:             payment,
				Interest:            interest,
				Principal:           principalPart,
				RemainingBalance:    mathutil.Round(balance),
				CumulativeInterest:  mathutil.Round(totalInterest),
				CumulativePrincipal: mathutil.Round(totalPrincipal),
			})

			if balance <= 0 {
				schedule.TotalInterest = mathutil.Round(totalInterest)
				schedule.TotalPrincipal = mathutil.Round(totalPrincipal)
				schedule.PeriodsToPayoff = period
				return schedule, nil
			}
		}
	}

	schedule.TotalInterest = mathutil.Round(totalInterest)
	schedule.TotalPrincipal = mathutil.Round(totalPrincipal)
	schedule.PeriodsToPayoff = period
	return schedule, nil
}

// FinalBalance returns the remaining balance after the last generated period.
func (s *Schedule) FinalBalance() float64 {
	if len(s.Records) == 0 {
		return 0
	}
	return s.Records[len(s.Records)-1].RemainingBalance
}

// FullyAmortized reports whether the loan was paid off within the term.
func (s *Schedule) FullyAmortized() bool {
	return len(s.Records) > 0 && mathutil.IsZero(s.FinalBalance())
}

// PayoffYearsMonths splits the payoff period count into whole years and
// leftover months.
func (s *Schedule) PayoffYearsMonths() (years, months int) {
	return s.PeriodsToPayoff / constants.MonthsPerYear, s.PeriodsToPayoff % constants.MonthsPerYear
}

// FilterYear returns the records belonging to the given 1-based year.
func FilterYear(records []PaymentRecord, year int) []PaymentRecord {
	filtered := make([]PaymentRecord, 0, constants.MonthsPerYear)
	for _, record := range records {
		if record.Year == year {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// First returns the first n records, or all of them if fewer exist.
func First(records []PaymentRecord, n int) []PaymentRecord {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}
