package advanced

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned by SafeDivide.
var ErrDivisionByZero = errors.New("division by zero")

// UncheckedDivide divides without a zero check.
// BUG: floats do not trap; a zero divisor yields +Inf, -Inf or NaN which then
// flows silently into later arithmetic.
func UncheckedDivide(a, b float64) float64 {
	return a / b
}

// SafeDivide fails with ErrDivisionByZero when b is exactly zero.
func SafeDivide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%g / %g: %w", a, b, ErrDivisionByZero)
	}
	return a / b, nil
}
