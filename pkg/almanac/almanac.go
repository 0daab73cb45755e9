// Package almanac assembles a complete year of sun, moon, and tide series for
// one place. The three builds are independent and run concurrently; any
// failure cancels the others.
package almanac

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloudeng.io/sync/errgroup"

	"github.com/halfmoonbay/sunmoontide/pkg/astro"
	"github.com/halfmoonbay/sunmoontide/pkg/metrics"
	"github.com/halfmoonbay/sunmoontide/pkg/place"
	"github.com/halfmoonbay/sunmoontide/pkg/tides"
	"github.com/halfmoonbay/sunmoontide/pkg/timeseries"
	"github.com/halfmoonbay/sunmoontide/pkg/yearspan"
)

var ErrNoTideData = errors.New("no tide extrema supplied")

// DefaultTideResolution matches a roughly 2-minute sample spacing on a
// semidiurnal tide, dense enough for any plot.
const DefaultTideResolution = 200

// Options configures a year build. Zero values select the defaults.
type Options struct {
	// Astro is passed through to both altitude track builds.
	Astro astro.Config
	// Tides configures the curve interpolation. A zero Resolution becomes
	// DefaultTideResolution and ExtendEnds is forced on, so the curve spans
	// the whole local year rather than starting at the first extremum.
	Tides tides.Options
}

// Almanac is one place-year of everything the calendar needs.
type Almanac struct {
	Place place.Place `json:"place"`
	Year  int         `json:"year"`

	Sun  *astro.Track `json:"sun"`
	Moon *astro.Track `json:"moon"`

	// TideHeights is the interpolated curve in the place's zone.
	TideHeights timeseries.Series `json:"tide_heights"`
	// TideExtrema are the input highs and lows, localized.
	TideExtrema []tides.Extremum `json:"tide_extrema"`

	// MinTide and MaxTide bound the year's extrema, for axis scaling.
	MinTide float64 `json:"min_tide"`
	MaxTide float64 `json:"max_tide"`
}

// Build computes the almanac for p's year from the given tide extrema. The
// extrema must be UTC and sorted; they normally come straight from a NOAA
// annual query.
func Build(ctx context.Context, p place.Place, year int, extrema []tides.Extremum, opts Options) (*Almanac, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	loc, err := p.Location()
	if err != nil {
		return nil, err
	}
	if len(extrema) == 0 {
		return nil, fmt.Errorf("%w for %s %d", ErrNoTideData, p.Name, year)
	}
	if opts.Tides.Resolution == 0 {
		opts.Tides.Resolution = DefaultTideResolution
	}
	opts.Tides.ExtendEnds = true

	a := &Almanac{Place: p, Year: year}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer observeSince("sun", time.Now())
		track, err := astro.Build(p, year, astro.Sun, opts.Astro)
		if err != nil {
			return fmt.Errorf("sun track: %w", err)
		}
		a.Sun = track
		return ctx.Err()
	})
	g.Go(func() error {
		defer observeSince("moon", time.Now())
		track, err := astro.Build(p, year, astro.Moon, opts.Astro)
		if err != nil {
			return fmt.Errorf("moon track: %w", err)
		}
		a.Moon = track
		return ctx.Err()
	})
	g.Go(func() error {
		defer observeSince("tides", time.Now())
		curve, err := tides.BuildCurve(extrema, opts.Tides)
		if err != nil {
			return fmt.Errorf("tide curve: %w", err)
		}
		if a.TideHeights, err = curve.In(loc); err != nil {
			return err
		}
		a.TideExtrema = localizeExtrema(extrema, loc)
		a.MinTide, a.MaxTide = tides.Range(extrema)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return a, nil
}

func observeSince(component string, start time.Time) {
	metrics.ObserveBuildDuration(component, time.Since(start))
}

func localizeExtrema(extrema []tides.Extremum, loc *time.Location) []tides.Extremum {
	out := make([]tides.Extremum, len(extrema))
	for i, e := range extrema {
		out[i] = tides.Extremum{Time: e.Time.In(loc), Height: e.Height}
	}
	return out
}

// Day is the slice of an almanac covering one local calendar day.
type Day struct {
	Date time.Time `json:"date"`

	SunHeights  timeseries.Series `json:"sun_heights"`
	MoonHeights timeseries.Series `json:"moon_heights"`
	TideHeights timeseries.Series `json:"tide_heights"`
	TideExtrema []tides.Extremum  `json:"tide_extrema"`

	// PhaseDayNum is -1 when the date falls outside the almanac's year.
	PhaseDayNum        int     `json:"phase_day_num"`
	PercentIlluminated float64 `json:"percent_illuminated"`
}

// Day slices out one local calendar day. The date's clock is ignored; its
// zone should be the place's zone.
func (a *Almanac) Day(date time.Time) Day {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.AddDate(0, 0, 1)

	d := Day{
		Date:        from,
		SunHeights:  a.Sun.Heights.Slice(from, to),
		MoonHeights: a.Moon.Heights.Slice(from, to),
		TideHeights: a.TideHeights.Slice(from, to),
		PhaseDayNum: -1,
	}
	for _, e := range a.TideExtrema {
		if !e.Time.Before(from) && e.Time.Before(to) {
			d.TideExtrema = append(d.TideExtrema, e)
		}
	}
	if i := a.Moon.PhaseDayNum.IndexBefore(to.Add(-time.Second)); i >= 0 {
		if sample := a.Moon.PhaseDayNum.Times[i]; !sample.Before(from) {
			d.PhaseDayNum = int(a.Moon.PhaseDayNum.Values[i])
			d.PercentIlluminated = a.Moon.PercentIlluminated.Values[i]
		}
	}
	return d
}

// Span returns the UTC bounds of the almanac's local year.
func (a *Almanac) Span() (start, end time.Time, err error) {
	return yearspan.Bounds(a.Place.TimeZone, a.Year)
}
