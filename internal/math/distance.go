package math

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Euclidean returns the euclidean (L2) distance of the two vectors.
// The vectors must have the same length.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// SquaredEuclidean returns the squared euclidean distance of the two vectors.
func SquaredEuclidean(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

// Mean returns the arithmetic mean of the given values.
func Mean(xx []float64) float64 {
	return stat.Mean(xx, nil)
}

// CumSum returns the cumulative sum of the given values.
func CumSum(xx []float64) []float64 {
	return floats.CumSum(make([]float64, len(xx)), xx)
}
