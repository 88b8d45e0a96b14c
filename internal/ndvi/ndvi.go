package ndvi

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when the red and NIR bands do not share the
// same dimensions.
var ErrShapeMismatch = errors.New("red and nir bands differ in shape")

// Calculate computes NDVI = (NIR - Red) / (NIR + Red) for two equally shaped
// band arrays. Where the denominator is zero the result is 0 rather than
// NaN; this mirrors the behavior of the index calculations used for
// Sentinel-2 imagery and is a defined outcome, not an error. Inputs are
// never mutated.
func Calculate(red, nir [][]float64) ([][]float64, error) {
	if len(red) != len(nir) {
		return nil, fmt.Errorf("%w: %d vs %d rows", ErrShapeMismatch, len(red), len(nir))
	}

	result := make([][]float64, len(red))
	for i := range red {
		if len(red[i]) != len(nir[i]) {
			return nil, fmt.Errorf("%w: row %d has %d vs %d columns", ErrShapeMismatch, i, len(red[i]), len(nir[i]))
		}
		result[i] = make([]float64, len(red[i]))
		for j := range red[i] {
			denominator := nir[i][j] + red[i][j]
			if denominator != 0 {
				result[i][j] = (nir[i][j] - red[i][j]) / denominator
			}
		}
	}
	return result, nil
}
