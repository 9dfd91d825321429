package cluster

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	clustermath "github.com/drakos74/free-cluster/internal/math"
)

// Point is a point on the plane, encoded as [x, y].
type Point [2]float64

// X returns the x coordinate.
func (p Point) X() float64 {
	return p[0]
}

// Y returns the y coordinate.
func (p Point) Y() float64 {
	return p[1]
}

// Distance returns the euclidean distance to the given point.
func (p Point) Distance(q Point) float64 {
	return clustermath.Euclidean(p[:], q[:])
}

// SquaredDistance returns the squared euclidean distance to the given point.
func (p Point) SquaredDistance(q Point) float64 {
	return clustermath.SquaredEuclidean(p[:], q[:])
}

func (p Point) String() string {
	return fmt.Sprintf("[%s, %s]", clustermath.Format(p[0]), clustermath.Format(p[1]))
}

// UnmarshalJSON decodes the point from an [x, y] array.
func (p *Point) UnmarshalJSON(b []byte) error {
	var xy []float64
	if err := json.Unmarshal(b, &xy); err != nil {
		return fmt.Errorf("invalid point '%s': %v: %w", string(b), err, ErrInvalidInput)
	}
	if len(xy) != 2 {
		return fmt.Errorf("point must have 2 coordinates but has %d: %w", len(xy), ErrInvalidInput)
	}
	*p = Point{xy[0], xy[1]}
	return nil
}

func (p Point) finite() bool {
	return clustermath.IsFinite(p[0], p[1])
}

func (p Point) within(bound float64) bool {
	return math.Abs(p[0]) <= bound && math.Abs(p[1]) <= bound
}

// Cluster holds the points assigned to one centroid.
type Cluster struct {
	Points []Point `json:"points"`
	Color  Color   `json:"color"`
}

// Snapshot is the state of a run at one iteration.
// Centroids[i] is the centroid the points of Clusters[i] were assigned to.
type Snapshot struct {
	Centroids []Point
	Clusters  []Cluster
	// Inertia is the sum of squared distances of the points to their centroid.
	Inertia float64
}

type snapshot struct {
	Centroids []Point            `json:"centroids"`
	Clusters  map[string]Cluster `json:"clusters"`
	Inertia   float64            `json:"inertia"`
}

// MarshalJSON encodes the clusters as an object keyed by the cluster index.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	clusters := make(map[string]Cluster, len(s.Clusters))
	for i, c := range s.Clusters {
		clusters[strconv.Itoa(i)] = c
	}
	return json.Marshal(snapshot{
		Centroids: s.Centroids,
		Clusters:  clusters,
		Inertia:   s.Inertia,
	})
}

// UnmarshalJSON decodes a snapshot encoded with MarshalJSON.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var raw snapshot
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	clusters := make([]Cluster, len(raw.Clusters))
	for key, c := range raw.Clusters {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(clusters) {
			return fmt.Errorf("invalid cluster index '%s' for %d clusters", key, len(clusters))
		}
		if c.Points == nil {
			c.Points = make([]Point, 0)
		}
		clusters[i] = c
	}
	s.Centroids = raw.Centroids
	s.Clusters = clusters
	s.Inertia = raw.Inertia
	return nil
}

// Size returns the number of points in the snapshot.
func (s Snapshot) Size() int {
	var n int
	for _, c := range s.Clusters {
		n += len(c.Points)
	}
	return n
}

// Trace is the ordered sequence of snapshots of a run.
type Trace []Snapshot

// Final returns the last snapshot of the trace.
func (t Trace) Final() (Snapshot, bool) {
	if len(t) == 0 {
		return Snapshot{}, false
	}
	return t[len(t)-1], true
}
