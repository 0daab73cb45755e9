package tides

import (
	"errors"
	"fmt"
	"time"

	"github.com/halfmoonbay/sunmoontide/pkg/timeseries"
)

var (
	ErrInsufficientExtrema = errors.New("need at least 2 extrema")
	ErrUnsortedExtrema     = errors.New("extrema timestamps must be strictly increasing")
)

// Options controls curve construction. The zero value of the duration fields
// selects the documented defaults.
type Options struct {
	// Resolution is the number of samples per inter-extremum interval,
	// endpoints included. Must be greater than 2.
	Resolution int

	// ExtendEnds adds a synthetic lead-in before the first extremum and a
	// tail after the last one, so a plot does not cut off abruptly when the
	// first high/low of the year falls hours after local midnight Jan 1.
	ExtendEnds bool

	// ExtensionWindow is the span covered by each synthetic end segment.
	// Defaults to 7 hours, roughly half a semidiurnal tide period.
	ExtensionWindow time.Duration

	// EndLead is the delay between the final extremum and the first sample
	// of the tail extension. Defaults to 10 seconds.
	EndLead time.Duration
}

const (
	defaultExtensionWindow = 7 * time.Hour
	defaultEndLead         = 10 * time.Second
)

// Curve interpolates a dense tide-height series through the given extrema.
// Extrema must be in UTC, chronologically sorted with strictly increasing
// timestamps. The result passes exactly through every extremum at its
// timestamp and contains (resolution-1)*(len(extrema)-1)+1 samples, plus
// resolution-1 samples per synthetic end segment when extendEnds is set.
func Curve(extrema []Extremum, resolution int, extendEnds bool) (timeseries.Series, error) {
	return BuildCurve(extrema, Options{Resolution: resolution, ExtendEnds: extendEnds})
}

// BuildCurve is Curve with every knob exposed.
func BuildCurve(extrema []Extremum, opts Options) (timeseries.Series, error) {
	if opts.Resolution <= 2 {
		return timeseries.Series{}, fmt.Errorf("%w: got %d", ErrInvalidResolution, opts.Resolution)
	}
	if len(extrema) < 2 {
		return timeseries.Series{}, fmt.Errorf("%w: got %d", ErrInsufficientExtrema, len(extrema))
	}
	for i := 1; i < len(extrema); i++ {
		if !extrema[i].Time.After(extrema[i-1].Time) {
			return timeseries.Series{}, fmt.Errorf("%w: extremum %d at %s, extremum %d at %s",
				ErrUnsortedExtrema, i-1, extrema[i-1].Time, i, extrema[i].Time)
		}
	}
	if opts.ExtensionWindow == 0 {
		opts.ExtensionWindow = defaultExtensionWindow
	}
	if opts.EndLead == 0 {
		opts.EndLead = defaultEndLead
	}

	res := opts.Resolution
	n := (res-1)*(len(extrema)-1) + 1
	if opts.ExtendEnds {
		n += 2 * (res - 1)
	}
	out := timeseries.Make(n)

	if opts.ExtendEnds {
		// Lead-in: run the second extremum's height back into the first,
		// ending one step short of the first real sample.
		head, err := SineInterp(extrema[1].Height, extrema[0].Height, res, true)
		if err != nil {
			return timeseries.Series{}, err
		}
		start := extrema[0].Time.Add(-opts.ExtensionWindow)
		step := opts.ExtensionWindow / time.Duration(res-1)
		for i, v := range head {
			out.Append(start.Add(time.Duration(i)*step), v)
		}
	}

	// One half wave per consecutive pair, dropping each interval's final
	// sample so the shared extremum appears only once.
	for i := 0; i+1 < len(extrema); i++ {
		a, b := extrema[i], extrema[i+1]
		vals, err := SineInterp(a.Height, b.Height, res, true)
		if err != nil {
			return timeseries.Series{}, err
		}
		step := b.Time.Sub(a.Time) / time.Duration(res-1)
		for j, v := range vals {
			out.Append(a.Time.Add(time.Duration(j)*step), v)
		}
	}
	last := extrema[len(extrema)-1]
	out.Append(last.Time, last.Height)

	if opts.ExtendEnds {
		// Tail: run the last extremum's height back toward the one before
		// it, starting shortly after the final real sample.
		prev := extrema[len(extrema)-2]
		tail, err := SineInterp(last.Height, prev.Height, res, true)
		if err != nil {
			return timeseries.Series{}, err
		}
		start := last.Time.Add(opts.EndLead)
		step := opts.ExtensionWindow / time.Duration(res-1)
		for i, v := range tail {
			out.Append(start.Add(time.Duration(i)*step), v)
		}
	}

	if err := out.Validate(); err != nil {
		return timeseries.Series{}, fmt.Errorf("%w: %v", ErrInterpolationInvariant, err)
	}
	return out, nil
}
