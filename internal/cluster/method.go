package cluster

import (
	"fmt"
)

// Method is the centroid initialization strategy of a run.
type Method int

const (
	// Random picks k distinct points of the data set.
	Random Method = iota + 1
	// FarthestFirst greedily picks the point farthest from the centroids chosen so far.
	FarthestFirst
	// KMeansPlusPlus samples each new centroid with probability proportional to its squared distance.
	KMeansPlusPlus
	// Manual uses the centroids given by the caller.
	Manual
)

var methods = map[Method]string{
	Random:         "random",
	FarthestFirst:  "farthest_first",
	KMeansPlusPlus: "kmeans++",
	Manual:         "manual",
}

// ParseMethod returns the method for the given name.
func ParseMethod(s string) (Method, error) {
	for m, name := range methods {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown init method '%s': %w", s, ErrConfiguration)
}

// Valid returns true for one of the known methods.
func (m Method) Valid() bool {
	_, ok := methods[m]
	return ok
}

func (m Method) String() string {
	if name, ok := methods[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// MarshalText encodes the method by name.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown init method '%d': %w", int(m), ErrConfiguration)
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes the method from its name.
func (m *Method) UnmarshalText(b []byte) error {
	method, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = method
	return nil
}
