package math

import (
	"math"
	"strconv"
)

// Format formats a float based on the given precision
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// IsFinite returns true if none of the given values is NaN or infinite.
func IsFinite(ff ...float64) bool {
	for _, f := range ff {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Bound returns the largest coordinate magnitude for which the squared distances
// between n points of the plane add up to a finite value.
func Bound(n int) float64 {
	if n < 1 {
		n = 1
	}
	// twice the worst case of (2b)^2 + (2b)^2 per point, to leave room for rounding
	return math.Sqrt(math.MaxFloat64 / float64(16*n))
}
