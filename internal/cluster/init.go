package cluster

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	clustermath "github.com/drakos74/free-cluster/internal/math"
)

// Initializer picks the starting centroids of a run.
type Initializer interface {
	Init(data []Point, k int) ([]Point, error)
}

func newInitializer(method Method, rnd *rand.Rand, centroids []Point) (Initializer, error) {
	switch method {
	case Random:
		return NewRandomInitializer(rnd), nil
	case FarthestFirst:
		return NewFarthestFirstInitializer(rnd), nil
	case KMeansPlusPlus:
		return NewKMeansPlusPlusInitializer(rnd), nil
	case Manual:
		return NewManualInitializer(centroids...), nil
	}
	return nil, fmt.Errorf("unknown init method '%v': %w", method, ErrConfiguration)
}

func sample(data []Point, k int) error {
	if len(data) == 0 {
		return fmt.Errorf("no data to pick centroids from: %w", ErrInvalidInput)
	}
	if k < 1 || k > len(data) {
		return fmt.Errorf("cannot pick %d centroids out of %d points: %w", k, len(data), ErrInvalidInput)
	}
	return nil
}

// RandomInitializer picks k distinct points uniformly at random.
type RandomInitializer struct {
	rnd *rand.Rand
}

// NewRandomInitializer creates a new random initializer.
func NewRandomInitializer(rnd *rand.Rand) *RandomInitializer {
	return &RandomInitializer{rnd: rnd}
}

func (r *RandomInitializer) Init(data []Point, k int) ([]Point, error) {
	if err := sample(data, k); err != nil {
		return nil, err
	}
	perm := r.rnd.Perm(len(data))
	centroids := make([]Point, k)
	for i := 0; i < k; i++ {
		centroids[i] = data[perm[i]]
	}
	return centroids, nil
}

// FarthestFirstInitializer starts from a random point and keeps adding
// the point with the largest distance to its nearest centroid.
type FarthestFirstInitializer struct {
	rnd *rand.Rand
}

// NewFarthestFirstInitializer creates a new farthest-first initializer.
func NewFarthestFirstInitializer(rnd *rand.Rand) *FarthestFirstInitializer {
	return &FarthestFirstInitializer{rnd: rnd}
}

func (f *FarthestFirstInitializer) Init(data []Point, k int) ([]Point, error) {
	if err := sample(data, k); err != nil {
		return nil, err
	}
	centroids := make([]Point, 0, k)
	centroids = append(centroids, data[f.rnd.Intn(len(data))])
	for len(centroids) < k {
		centroids = append(centroids, farthest(data, centroids))
	}
	return centroids, nil
}

// farthest returns the point with the largest distance to its nearest centroid.
// Ties go to the first point in data order.
func farthest(data []Point, centroids []Point) Point {
	var idx int
	max := -1.0
	for i, p := range data {
		_, d := nearest(p, centroids)
		if d > max {
			max = d
			idx = i
		}
	}
	return data[idx]
}

// KMeansPlusPlusInitializer samples each new centroid with probability proportional
// to the squared distance of the point to its nearest centroid.
type KMeansPlusPlusInitializer struct {
	rnd *rand.Rand
}

// NewKMeansPlusPlusInitializer creates a new kmeans++ initializer.
func NewKMeansPlusPlusInitializer(rnd *rand.Rand) *KMeansPlusPlusInitializer {
	return &KMeansPlusPlusInitializer{rnd: rnd}
}

func (km *KMeansPlusPlusInitializer) Init(data []Point, k int) ([]Point, error) {
	if err := sample(data, k); err != nil {
		return nil, err
	}
	centroids := make([]Point, 0, k)
	centroids = append(centroids, data[km.rnd.Intn(len(data))])
	weights := make([]float64, len(data))
	for len(centroids) < k {
		var total float64
		for i, p := range data {
			j, _ := nearest(p, centroids)
			weights[i] = p.SquaredDistance(centroids[j])
			total += weights[i]
		}
		if total == 0 {
			// every point sits on a centroid
			log.Debug().
				Int("centroids", len(centroids)).
				Int("k", k).
				Msg("zero distance mass for kmeans++, picking uniformly")
			centroids = append(centroids, data[km.rnd.Intn(len(data))])
			continue
		}
		centroids = append(centroids, data[pick(weights, total, km.rnd.Float64())])
	}
	return centroids, nil
}

// pick returns the first index whose cumulative probability exceeds r.
func pick(weights []float64, total float64, r float64) int {
	probabilities := make([]float64, len(weights))
	for i, w := range weights {
		probabilities[i] = w / total
	}
	for i, c := range clustermath.CumSum(probabilities) {
		if r < c {
			return i
		}
	}
	// the cumulative sum can fall short of 1 due to rounding
	for i := len(weights) - 1; i > 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}

// ManualInitializer returns the given centroids.
type ManualInitializer struct {
	centroids []Point
}

// NewManualInitializer creates a new initializer for the given centroids.
func NewManualInitializer(centroids ...Point) *ManualInitializer {
	return &ManualInitializer{centroids: centroids}
}

func (m *ManualInitializer) Init(_ []Point, k int) ([]Point, error) {
	if len(m.centroids) != k {
		return nil, fmt.Errorf("expected %d manual centroids but got %d: %w", k, len(m.centroids), ErrInvalidInput)
	}
	for i, c := range m.centroids {
		if !c.finite() {
			return nil, fmt.Errorf("manual centroid %d is not a valid point %v: %w", i, c, ErrInvalidInput)
		}
	}
	centroids := make([]Point, k)
	copy(centroids, m.centroids)
	return centroids, nil
}
