package kmeans

const (
	// Memory keeps the runs in memory.
	Memory = "memory"
	// File keeps the runs as json files.
	File = "file"
)

// Config is the config of the k-means service.
type Config struct {
	Port    int           `json:"port"`
	Debug   bool          `json:"debug"`
	Static  string        `json:"static"`
	Storage StorageConfig `json:"storage"`
	Data    DataConfig    `json:"data"`
}

// StorageConfig defines where the traces of the runs are kept.
type StorageConfig struct {
	Type string `json:"type"`
	Dir  string `json:"dir"`

	// Capacity bounds the number of runs kept in memory, 0 keeps all of them.
	Capacity int `json:"capacity"`
}

// DataConfig defines the synthetic data sets.
type DataConfig struct {
	DefaultPoints int    `json:"default_points"`
	MaxPoints     int    `json:"max_points"`
	Seed          uint64 `json:"seed"`
}
