package vector

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch reports vectors of unequal length.
var ErrDimensionMismatch = errors.New("vector: dimension mismatch")

// Add returns the elementwise sum a+b.
func Add(a, b []float64) ([]float64, error) {
	if err := sameLen(a, b); err != nil {
		return nil, err
	}
	return floats.AddTo(make([]float64, len(a)), a, b), nil
}

// ElementwiseMultiply returns the elementwise product of a and b.
func ElementwiseMultiply(a, b []float64) ([]float64, error) {
	if err := sameLen(a, b); err != nil {
		return nil, err
	}
	return floats.MulTo(make([]float64, len(a)), a, b), nil
}

// ScalarMultiply returns a scaled by s.
func ScalarMultiply(a []float64, s float64) []float64 {
	return floats.ScaleTo(make([]float64, len(a)), s, a)
}

// Dot returns the sum of elementwise products of a and b.
func Dot(a, b []float64) (float64, error) {
	if err := sameLen(a, b); err != nil {
		return 0, err
	}
	return floats.Dot(a, b), nil
}

// Displacement returns the L1 distance between a and b.
func Displacement(a, b []float64) (float64, error) {
	if err := sameLen(a, b); err != nil {
		return 0, err
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, 1), nil
}

// Prepend returns a new vector with head followed by the elements of a.
func Prepend(head float64, a []float64) []float64 {
	out := make([]float64, 0, len(a)+1)
	out = append(out, head)
	return append(out, a...)
}

func sameLen(a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	return nil
}
