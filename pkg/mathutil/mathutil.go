// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/t4p/competition-toolkit/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*100) / 100
}

// WithinTolerance checks if two values are within a specified tolerance.
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// SumExceeds reports whether sum is strictly greater than limit after
// allowing for floating-point accumulation error.
func SumExceeds(sum, limit float64) bool {
	return sum > limit+constants.ShareSumTolerance
}

// CalculatePercentage calculates what percentage value is of total.
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// SquaredFraction converts a percentage to a fraction and squares it.
func SquaredFraction(percent float64) float64 {
	frac := percent / constants.PercentageMultiplier
	return frac * frac
}
