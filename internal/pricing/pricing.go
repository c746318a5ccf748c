// Package pricing computes what the cooperative pays for a milk collection.
package pricing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Rate is paid per liter per fat percentage point.
var Rate = decimal.RequireFromString("0.85")

var (
	ErrNonPositive = errors.New("liters and fat must be positive numbers")
	ErrOutOfRange  = errors.New("amount is too large to represent")
)

// Amount returns liters × fat × Rate rounded half away from zero to two
// decimal places. ErrOutOfRange is returned when the result does not fit a
// finite float64.
func Amount(liters, fat float64) (float64, error) {
	if !positive(liters) || !positive(fat) {
		return 0, ErrNonPositive
	}

	amount := decimal.NewFromFloat(liters).
		Mul(decimal.NewFromFloat(fat)).
		Mul(Rate).
		Round(2)

	f := amount.InexactFloat64()
	if math.IsInf(f, 0) {
		return 0, ErrOutOfRange
	}
	return f, nil
}

// Preview is Amount for live form display: 0 until both inputs are positive.
func Preview(liters, fat float64) float64 {
	amount, err := Amount(liters, fat)
	if err != nil {
		return 0
	}
	return amount
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
