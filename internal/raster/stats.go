package raster

import (
	"fmt"
	"math"
)

// Summary holds the statistics of the valid pixels of a band.
type Summary struct {
	Count  int     `csv:"count" json:"count"`
	Min    float64 `csv:"min" json:"min"`
	Max    float64 `csv:"max" json:"max"`
	Mean   float64 `csv:"mean" json:"mean"`
	StdDev float64 `csv:"std" json:"std"`
}

// Summarize computes min, max, mean and population standard deviation over
// the given values. The second return is false when there is nothing to
// summarize, which callers report as an empty-input case rather than an
// error.
func Summarize(values []float64) (Summary, bool) {
	if len(values) == 0 {
		return Summary{}, false
	}

	summary := Summary{
		Count: len(values),
		Min:   values[0],
		Max:   values[0],
	}

	var sum float64
	for _, v := range values {
		if v < summary.Min {
			summary.Min = v
		}
		if v > summary.Max {
			summary.Max = v
		}
		sum += v
	}
	summary.Mean = sum / float64(len(values))

	var squaredDiff float64
	for _, v := range values {
		squaredDiff += (v - summary.Mean) * (v - summary.Mean)
	}
	summary.StdDev = math.Sqrt(squaredDiff / float64(len(values)))

	return summary, true
}

func (s Summary) String() string {
	return fmt.Sprintf("Min: %.4f  Max: %.4f  Mean: %.4f  Std: %.4f  (%d valid pixels)",
		s.Min, s.Max, s.Mean, s.StdDev, s.Count)
}
