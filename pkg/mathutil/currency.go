// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/payment-clauses/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// The rounding is done in decimal space so 1.005 becomes 1.01 rather than
// drifting to 1.00 through binary representation.
func Round(val float64) float64 {
	f, _ := decimal.NewFromFloat(val).Round(constants.DecimalPlaces).Float64()
	return f
}

// RoundDecimal rounds a decimal to cents.
func RoundDecimal(d decimal.Decimal) decimal.Decimal {
	return d.Round(constants.DecimalPlaces)
}

// Sum adds values in decimal space and returns the total rounded to cents.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := RoundDecimal(total).Float64()
	return f
}

// IsZero checks if a value is effectively zero (strictly below one cent)
func IsZero(val float64) bool {
	return math.Abs(val) < constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
