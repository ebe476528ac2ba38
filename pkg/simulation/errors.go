package simulation

import "errors"

var (
	// ErrFlockNotFound is returned when a command targets a flock id that does not exist.
	ErrFlockNotFound = errors.New("flock not found")

	// ErrSurfaceNotReady is returned when a world is built before its drawing surface has a size.
	ErrSurfaceNotReady = errors.New("drawing surface not ready: world bounds are unknown")

	// ErrInvalidParameter is returned for negative radii, weights, sizes, speeds or counts.
	ErrInvalidParameter = errors.New("invalid parameter")
)
