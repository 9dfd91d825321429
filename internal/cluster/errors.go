package cluster

import "errors"

var (
	// ErrInvalidInput is returned when the data or the parameters of a run cannot be clustered.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfiguration is returned for an unknown initialization method.
	ErrConfiguration = errors.New("invalid configuration")
)
