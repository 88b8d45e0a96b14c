package raster

import "errors"

// Errors surfaced by the raster access layer.
var (
	ErrBandIndex         = errors.New("band index out of range")
	ErrEmptyIntersection = errors.New("boundary does not intersect raster extent")
)
