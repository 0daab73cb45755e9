// Package tides reconstructs a continuous tide-height curve from the sparse
// high/low extrema published in tide prediction tables. Consecutive extrema
// are joined by half sine waves, which is a close visual match for mixed
// semidiurnal tides.
package tides

import (
	"fmt"
	"time"
)

// Extremum is one recorded high or low tide: a UTC instant and a magnitude.
// The unit of Height is whatever the data source used (feet for NOAA english
// units); the curve builder never interprets it.
type Extremum struct {
	Time   time.Time `json:"time"`
	Height float64   `json:"height"`
}

func (e Extremum) String() string {
	return fmt.Sprintf("{t: %s, h: %f}", e.Time.Format(time.RFC822), e.Height)
}

// Range returns the lowest and highest magnitudes among the extrema. Useful
// for scaling a plot axis. Returns zeros for an empty slice.
func Range(extrema []Extremum) (min, max float64) {
	if len(extrema) == 0 {
		return 0, 0
	}
	min, max = extrema[0].Height, extrema[0].Height
	for _, e := range extrema[1:] {
		if e.Height < min {
			min = e.Height
		}
		if e.Height > max {
			max = e.Height
		}
	}
	return min, max
}
