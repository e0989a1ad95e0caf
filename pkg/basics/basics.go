// Package basics holds the stepping-practice exercises: plain arithmetic, a
// loop, a function call and a loop worth a conditional breakpoint. Only the
// disabled divide exercise carries a bug.
package basics

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned by CheckedDivide.
var ErrDivisionByZero = errors.New("division by zero")

// Stepping computes the sum and product of two values, one statement per line.
func Stepping(a, b int) (sum, product int) {
	sum = a + b
	product = a * b // BREAKPOINT: stepping watch=a,b,sum
	return sum, product
}

// SumAll adds every element of numbers.
func SumAll(numbers []int) int {
	total := 0
	for i := 0; i < len(numbers); i++ {
		total += numbers[i] // BREAKPOINT: sum-loop watch=i,total
	}
	return total
}

// Multiply is the step-into target.
func Multiply(x, y int) int {
	return x * y // BREAKPOINT: multiply watch=x,y
}

// CountTo returns 0..n-1. Break on the append with the condition i == 5.
func CountTo(n int) []int {
	seen := make([]int, 0, n)
	for i := 0; i < n; i++ {
		seen = append(seen, i) // BREAKPOINT: count-loop if=i==5 watch=i,seen
	}
	return seen
}

// Divide has no zero check.
// BUG: a zero divisor raises a runtime divide error that kills the process.
func Divide(a, b int) int {
	return a / b
}

// CheckedDivide is Divide with the zero check added.
func CheckedDivide(a, b int) (int, error) {
	if b == 0 {
		return 0, fmt.Errorf("%d / %d: %w", a, b, ErrDivisionByZero)
	}
	return a / b, nil
}
