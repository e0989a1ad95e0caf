package advanced

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by At for an index outside the slice.
var ErrOutOfRange = errors.New("index out of range")

// At is the checked accessor.
func At[T any](s []T, i int) (T, error) {
	if i < 0 || i >= len(s) {
		var zero T
		return zero, fmt.Errorf("%w: index %d with length %d", ErrOutOfRange, i, len(s))
	}
	return s[i], nil
}

// UncheckedAt indexes without a bounds check.
// BUG: an index past the end panics at runtime.
func UncheckedAt[T any](s []T, i int) T {
	return s[i]
}

// Element is one visited slot of a sequence.
type Element struct {
	Index int
	Value int
}

// Elements visits nums using its true length as the bound.
func Elements(nums []int) []Element {
	out := make([]Element, 0, len(nums))
	for i := 0; i < len(nums); i++ {
		out = append(out, Element{Index: i, Value: nums[i]}) // BREAKPOINT: bounds-loop watch=i,nums
	}
	return out
}

// MatrixStep records one inner-loop iteration of SumMatrix.
type MatrixStep struct {
	Row, Col int
	Value    int
	Sum      int
}

// SumMatrix adds every cell row by row and returns each step with the total.
func SumMatrix(matrix [][]int) ([]MatrixStep, int) {
	var steps []MatrixStep
	sum := 0
	for i := 0; i < len(matrix); i++ {
		for j := 0; j < len(matrix[i]); j++ {
			sum += matrix[i][j] // BREAKPOINT: matrix-loop watch=i,j,sum
			steps = append(steps, MatrixStep{Row: i, Col: j, Value: matrix[i][j], Sum: sum})
		}
	}
	return steps, sum
}
