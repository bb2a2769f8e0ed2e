// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/hamii31/loan-calculator/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Ties round half away from zero (math.Round). Cumulative schedule figures
// are sums of already-rounded values, so this convention must stay fixed.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within currency tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Percentage calculates what percentage value is of total
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
