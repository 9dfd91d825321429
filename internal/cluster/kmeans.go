package cluster

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	clustermath "github.com/drakos74/free-cluster/internal/math"
)

// MaxIterations is the maximum number of snapshots of a run.
const MaxIterations = 10

// EmptyPolicy decides the next centroid of a cluster that got no points.
type EmptyPolicy int

const (
	// KeepPrevious leaves the centroid of an empty cluster where it was.
	KeepPrevious EmptyPolicy = iota
	// Farthest moves the centroid of an empty cluster to the point
	// farthest from all other centroids.
	Farthest
)

func (p EmptyPolicy) String() string {
	switch p {
	case KeepPrevious:
		return "keep-previous"
	case Farthest:
		return "farthest"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Engine runs k-means on a 2-D data set and records every iteration.
// An engine can be re-used for consecutive runs, but not concurrently.
type Engine struct {
	k         int
	method    Method
	centroids []Point
	policy    EmptyPolicy
	rnd       *rand.Rand
}

// New creates a new engine for k clusters initialised with the given method.
func New(k int, method Method) *Engine {
	return &Engine{
		k:      k,
		method: method,
		policy: KeepPrevious,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithCentroids sets the starting centroids for the Manual method.
func (e *Engine) WithCentroids(centroids ...Point) *Engine {
	e.centroids = centroids
	return e
}

// WithRand sets the random source for the initialization.
func (e *Engine) WithRand(rnd *rand.Rand) *Engine {
	e.rnd = rnd
	return e
}

// WithEmptyPolicy sets the strategy for clusters that end up with no points.
func (e *Engine) WithEmptyPolicy(policy EmptyPolicy) *Engine {
	e.policy = policy
	return e
}

// Fit clusters the data and returns the snapshots of all iterations.
// The run stops after MaxIterations or as soon as the centroids do not move.
func (e *Engine) Fit(data []Point) (Trace, error) {
	if err := e.validate(data); err != nil {
		return nil, err
	}

	initializer, err := newInitializer(e.method, e.rnd, e.centroids)
	if err != nil {
		return nil, err
	}
	centroids, err := initializer.Init(data, e.k)
	if err != nil {
		return nil, fmt.Errorf("could not initialize centroids with %v: %w", e.method, err)
	}
	log.Debug().
		Str("method", e.method.String()).
		Int("k", e.k).
		Int("points", len(data)).
		Str("centroids", fmt.Sprintf("%v", centroids)).
		Msg("initialized centroids")

	colors := Palette(e.k, rand.New(rand.NewSource(PaletteSeed)))

	trace := make(Trace, 0, MaxIterations)
	for i := 0; i < MaxIterations; i++ {
		snapshot := assign(data, centroids, colors)
		trace = append(trace, snapshot)
		next := e.update(data, centroids, snapshot.Clusters)
		if equal(centroids, next) {
			log.Debug().
				Int("iteration", i).
				Float64("inertia", snapshot.Inertia).
				Msg("converged")
			break
		}
		centroids = next
	}
	return trace, nil
}

func (e *Engine) validate(data []Point) error {
	if e.k < 1 {
		return fmt.Errorf("number of clusters must be positive but was %d: %w", e.k, ErrInvalidInput)
	}
	if !e.method.Valid() {
		return fmt.Errorf("unknown init method '%v': %w", e.method, ErrConfiguration)
	}
	if len(data) == 0 {
		return fmt.Errorf("empty data set: %w", ErrInvalidInput)
	}
	bound := clustermath.Bound(len(data))
	for i, p := range data {
		if !p.finite() {
			return fmt.Errorf("point %d is not a valid point %v: %w", i, p, ErrInvalidInput)
		}
		if !p.within(bound) {
			return fmt.Errorf("point %d %v exceeds the coordinate bound %g: %w", i, p, bound, ErrInvalidInput)
		}
	}
	switch e.method {
	case Manual:
		if len(e.centroids) == 0 {
			return fmt.Errorf("manual init without centroids: %w", ErrInvalidInput)
		}
		for i, c := range e.centroids {
			if c.finite() && !c.within(bound) {
				return fmt.Errorf("manual centroid %d %v exceeds the coordinate bound %g: %w", i, c, bound, ErrInvalidInput)
			}
		}
	default:
		if e.k > len(data) {
			return fmt.Errorf("cannot pick %d centroids out of %d points: %w", e.k, len(data), ErrInvalidInput)
		}
	}
	return nil
}

// nearest returns the index of the nearest centroid and the distance to it.
// Ties go to the lowest index.
func nearest(p Point, centroids []Point) (int, float64) {
	var idx int
	dist := math.Inf(1)
	for i, c := range centroids {
		d := p.Distance(c)
		if d < dist {
			dist = d
			idx = i
		}
	}
	return idx, dist
}

func assign(data []Point, centroids []Point, colors []Color) Snapshot {
	clusters := make([]Cluster, len(centroids))
	for i := range clusters {
		clusters[i] = Cluster{
			Points: make([]Point, 0),
			Color:  colors[i],
		}
	}
	var inertia float64
	for _, p := range data {
		i, _ := nearest(p, centroids)
		clusters[i].Points = append(clusters[i].Points, p)
		inertia += p.SquaredDistance(centroids[i])
	}
	return Snapshot{
		Centroids: centroids,
		Clusters:  clusters,
		Inertia:   inertia,
	}
}

func (e *Engine) update(data []Point, previous []Point, clusters []Cluster) []Point {
	next := make([]Point, len(previous))
	occupied := make([]Point, 0, len(previous))
	empty := make([]int, 0)
	for i, c := range clusters {
		if len(c.Points) == 0 {
			empty = append(empty, i)
			continue
		}
		next[i] = mean(c.Points)
		occupied = append(occupied, next[i])
	}
	for _, i := range empty {
		switch e.policy {
		case Farthest:
			next[i] = farthest(data, occupied)
			occupied = append(occupied, next[i])
		default:
			next[i] = previous[i]
		}
		log.Debug().
			Int("cluster", i).
			Str("policy", e.policy.String()).
			Str("centroid", next[i].String()).
			Msg("empty cluster")
	}
	return next
}

func mean(points []Point) Point {
	xx := make([]float64, len(points))
	yy := make([]float64, len(points))
	for i, p := range points {
		xx[i] = p[0]
		yy[i] = p[1]
	}
	return Point{clustermath.Mean(xx), clustermath.Mean(yy)}
}

func equal(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
