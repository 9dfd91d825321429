package kmeans

import "github.com/drakos74/free-cluster/internal/cluster"

// Request is the input of a k-means run.
type Request struct {
	Data            []cluster.Point `json:"data"`
	NumClusters     int             `json:"num_clusters"`
	InitMethod      cluster.Method  `json:"init_method"`
	ManualCentroids []cluster.Point `json:"manual_centroids,omitempty"`
}

// Run is the stored result of a k-means run.
type Run struct {
	ID    string        `json:"id"`
	Steps cluster.Trace `json:"steps"`
}

// DataRequest asks for a synthetic data set.
// With Clusters > 0 the points are drawn around that many centers.
type DataRequest struct {
	NumPoints int `json:"num_points"`
	Clusters  int `json:"clusters"`
}
