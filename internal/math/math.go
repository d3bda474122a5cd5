package math

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Magnitude returns the euclidean norm of the given components.
func Magnitude(components ...float64) float64 {
	return floats.Norm(components, 2)
}

// Mean returns the arithmetic mean of the given sample.
func Mean(xx []float64) float64 {
	return stat.Mean(xx, nil)
}

// Sum returns the sum of the given sample.
func Sum(xx []float64) float64 {
	return floats.Sum(xx)
}
