// Package timeseries holds the time-indexed numeric series produced by the
// astro and tides builders. A Series keeps UTC instants internally and is
// converted to a display zone at the very end of a build.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	ErrLengthMismatch  = errors.New("times and values have different lengths")
	ErrUnsortedSeries  = errors.New("series times are not strictly increasing")
	ErrNilLocation     = errors.New("nil location")
)

// Gap is the sentinel inserted between plotted line segments. A consumer
// drawing the series should break the line at every gap sample instead of
// connecting across it.
func Gap() float64 {
	return math.NaN()
}

// IsGap reports whether v is a gap sentinel.
func IsGap(v float64) bool {
	return math.IsNaN(v)
}

// Series is an ordered sequence of (instant, value) pairs. Times are strictly
// increasing. Values may contain gap sentinels; see Gap.
type Series struct {
	Times  []time.Time
	Values []float64
}

// Make allocates a Series with room for n samples.
func Make(n int) Series {
	return Series{
		Times:  make([]time.Time, 0, n),
		Values: make([]float64, 0, n),
	}
}

func (s *Series) Append(t time.Time, v float64) {
	s.Times = append(s.Times, t)
	s.Values = append(s.Values, v)
}

// Extend appends another series verbatim.
func (s *Series) Extend(other Series) {
	s.Times = append(s.Times, other.Times...)
	s.Values = append(s.Values, other.Values...)
}

func (s Series) Len() int {
	return len(s.Times)
}

// Validate checks the structural invariants: equal lengths and strictly
// increasing times. A failure here is a defect in the producing builder, not
// a user input problem.
func (s Series) Validate() error {
	if len(s.Times) != len(s.Values) {
		return fmt.Errorf("%w: %d times, %d values",
			ErrLengthMismatch, len(s.Times), len(s.Values))
	}
	for i := 1; i < len(s.Times); i++ {
		if !s.Times[i].After(s.Times[i-1]) {
			return fmt.Errorf("%w: index %d (%s) not after index %d (%s)",
				ErrUnsortedSeries, i, s.Times[i], i-1, s.Times[i-1])
		}
	}
	return nil
}

// In returns a copy of the series with every instant converted to loc. The
// underlying instants are unchanged; only the wall-clock representation
// differs.
func (s Series) In(loc *time.Location) (Series, error) {
	if loc == nil {
		return Series{}, ErrNilLocation
	}
	out := Make(s.Len())
	for i := range s.Times {
		out.Append(s.Times[i].In(loc), s.Values[i])
	}
	return out, nil
}

// IndexBefore returns the index of the last sample at or before t, or -1 if
// every sample is after t.
func (s Series) IndexBefore(t time.Time) int {
	n := len(s.Times)
	i := sort.Search(n, func(i int) bool {
		return s.Times[i].After(t)
	})
	return i - 1
}

// Slice returns the samples with from <= time < to. The returned series
// shares backing storage with s.
func (s Series) Slice(from, to time.Time) Series {
	n := len(s.Times)
	lo := sort.Search(n, func(i int) bool { return !s.Times[i].Before(from) })
	hi := sort.Search(n, func(i int) bool { return !s.Times[i].Before(to) })
	return Series{Times: s.Times[lo:hi], Values: s.Values[lo:hi]}
}
