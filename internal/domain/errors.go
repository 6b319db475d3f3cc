package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrMalformedStore = errors.New("malformed stored value")
)
