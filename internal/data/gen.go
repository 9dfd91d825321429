package data

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/drakos74/free-cluster/internal/cluster"
)

// Generator draws synthetic data sets for demos.
// It is not safe for concurrent use.
type Generator struct {
	normal distuv.Normal
}

// NewGenerator creates a new generator.
// A zero seed seeds the generator from the current time.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		normal: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   rand.NewSource(seed),
		},
	}
}

// Generate returns n points with standard normal coordinates.
func (g *Generator) Generate(n int) ([]cluster.Point, error) {
	if n < 1 {
		return nil, fmt.Errorf("number of points must be positive but was %d", n)
	}
	points := make([]cluster.Point, n)
	for i := range points {
		points[i] = cluster.Point{g.normal.Rand(), g.normal.Rand()}
	}
	return points, nil
}

// Blobs returns n points scattered around the given centers with the given deviation.
// Points are assigned to the centers round-robin.
func (g *Generator) Blobs(n int, sigma float64, centers ...cluster.Point) ([]cluster.Point, error) {
	if n < 1 {
		return nil, fmt.Errorf("number of points must be positive but was %d", n)
	}
	if len(centers) == 0 {
		return nil, fmt.Errorf("no centers given for %d points", n)
	}
	if sigma < 0 {
		return nil, fmt.Errorf("deviation must not be negative but was %f", sigma)
	}
	points := make([]cluster.Point, n)
	for i := range points {
		c := centers[i%len(centers)]
		points[i] = cluster.Point{
			c.X() + sigma*g.normal.Rand(),
			c.Y() + sigma*g.normal.Rand(),
		}
	}
	return points, nil
}

// Centers returns k random centers, spread with the given deviation around the origin.
func (g *Generator) Centers(k int, spread float64) ([]cluster.Point, error) {
	centers, err := g.Generate(k)
	if err != nil {
		return nil, err
	}
	for i, c := range centers {
		centers[i] = cluster.Point{spread * c.X(), spread * c.Y()}
	}
	return centers, nil
}
