package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {

	type test struct {
		input  float64
		output string
	}

	tests := map[string]test{
		"0": {
			input:  0,
			output: "0.00",
		},
		"-1": {
			input:  -1,
			output: "-1.00",
		},
		"+1": {
			input:  1,
			output: "1.00",
		},
		"5": {
			input:  1.5555,
			output: "1.56",
		},
		"4": {
			input:  1.4444,
			output: "1.44",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := Format(tt.input)
			assert.Equal(t, tt.output, s)
		})
	}

}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite())
	assert.True(t, IsFinite(0, -1.5, math.MaxFloat64))
	assert.False(t, IsFinite(1, math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1), 2))
}

func TestEuclidean(t *testing.T) {

	type test struct {
		a, b     []float64
		distance float64
		squared  float64
	}

	tests := map[string]test{
		"same": {
			a:        []float64{1, 1},
			b:        []float64{1, 1},
			distance: 0,
			squared:  0,
		},
		"3-4-5": {
			a:        []float64{0, 0},
			b:        []float64{3, 4},
			distance: 5,
			squared:  25,
		},
		"negative": {
			a:        []float64{-1, -1},
			b:        []float64{2, 3},
			distance: 5,
			squared:  25,
		},
		"axis": {
			a:        []float64{0, 0.5},
			b:        []float64{0, 1},
			distance: 0.5,
			squared:  0.25,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.distance, Euclidean(tt.a, tt.b), 1e-12)
			assert.InDelta(t, tt.squared, SquaredEuclidean(tt.a, tt.b), 1e-12)
			// symmetric
			assert.Equal(t, Euclidean(tt.a, tt.b), Euclidean(tt.b, tt.a))
		})
	}
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.5, Mean([]float64{0, 1}))
	assert.Equal(t, 10.0, Mean([]float64{10, 10, 10}))
	assert.Equal(t, -2.0, Mean([]float64{-4, 0}))
}

func TestCumSum(t *testing.T) {
	xx := []float64{1, 0, 2, 3}
	assert.Equal(t, []float64{1, 1, 3, 6}, CumSum(xx))
	// input is left untouched
	assert.Equal(t, []float64{1, 0, 2, 3}, xx)
	assert.Empty(t, CumSum([]float64{}))
}

func TestBound(t *testing.T) {
	for _, n := range []int{1, 3, 100, 1000000} {
		b := Bound(n)
		// opposite corners of the bounding square are the largest distance
		d := SquaredEuclidean([]float64{b, b}, []float64{-b, -b})
		assert.True(t, IsFinite(d*float64(n)), "n=%d", n)
	}
	assert.Equal(t, Bound(1), Bound(0))
	assert.True(t, Bound(10) > Bound(100))
}
