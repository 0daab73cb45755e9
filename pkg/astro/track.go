package astro

import (
	"fmt"
	"math"
	"time"

	"github.com/halfmoonbay/sunmoontide/pkg/place"
	"github.com/halfmoonbay/sunmoontide/pkg/timeseries"
	"github.com/halfmoonbay/sunmoontide/pkg/yearspan"
)

const day = 24 * time.Hour

// Config carries the sampling knobs for a track build. Zero fields select
// the documented defaults.
type Config struct {
	// Step between altitude samples while the body is up. Default 10 minutes.
	Step time.Duration
	// ScanStep paces the coarse rise/set scan. Default 10 minutes.
	ScanStep time.Duration
	// RiseWindow bounds each search for the next rise. Windows with no
	// crossing (polar night, polar day) contribute no samples and the
	// cursor moves on by one window. Default 48 hours.
	RiseWindow time.Duration
	// Tolerance of the bisection refinement. Default 1 second.
	Tolerance time.Duration
	// PhaseIDs is the lunation-day cycle length. Default 28.
	PhaseIDs int
	// DailyHour is the local hour at which the moon's daily phase and
	// illumination are sampled. Default 22 (a calendar reader checks the
	// moon at night). Midnight is not selectable; 0 means the default.
	DailyHour int
}

func (c *Config) setDefaults() {
	if c.Step == 0 {
		c.Step = 10 * time.Minute
	}
	if c.ScanStep == 0 {
		c.ScanStep = 10 * time.Minute
	}
	if c.RiseWindow == 0 {
		c.RiseWindow = 48 * time.Hour
	}
	if c.Tolerance == 0 {
		c.Tolerance = time.Second
	}
	if c.PhaseIDs == 0 {
		c.PhaseIDs = DefaultPhaseIDs
	}
	if c.DailyHour == 0 {
		c.DailyHour = 22
	}
}

// Track is the plot-ready output of a year build for one body. Heights is
// always present; Events only for the sun; PercentIlluminated and
// PhaseDayNum only for the moon.
type Track struct {
	Body  Body        `json:"body"`
	Place place.Place `json:"place"`
	Year  int         `json:"year"`

	// Heights is sin(altitude) sampled densely whenever the body is above
	// its rise/set threshold, localized to the place's zone, with a gap
	// sentinel after every set.
	Heights timeseries.Series `json:"heights"`

	Events             timeseries.Events `json:"events,omitempty"`
	PercentIlluminated timeseries.Series `json:"percent_illuminated,omitempty"`
	PhaseDayNum        timeseries.Series `json:"phase_day_num,omitempty"`
}

// Build constructs the full-year altitude track for body as seen from p.
// The sun uses the civil twilight threshold, the moon the geometric horizon.
func Build(p place.Place, year int, body Body, cfg Config) (*Track, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	loc, err := p.Location()
	if err != nil {
		return nil, err
	}
	start, end, err := yearspan.Bounds(p.TimeZone, year)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()

	obs := Observer{Lat: p.Lat, Long: p.Long, Horizon: HorizonFor(body)}
	rel := func(t time.Time) float64 { return body.Altitude(obs, t) - obs.Horizon }
	sinAlt := func(t time.Time) float64 { return math.Sin(body.Altitude(obs, t)) }

	heights := timeseries.Make(int(end.Sub(start) / cfg.Step / 2))
	cur := start

	// The body may already be up at the year boundary; close out that
	// partial arc first.
	if rel(cur) > 0 {
		cur = sampleUntilSet(&heights, rel, sinAlt, cur, end, cfg)
	}

	for cur.Before(end) {
		rise := nextCrossing(rel, cur, cfg.RiseWindow, true, cfg.ScanStep, cfg.Tolerance)
		switch rise.State {
		case AlwaysBelow:
			// Polar night stretch: nothing to plot, move the cursor on.
			cur = cur.Add(cfg.RiseWindow)
			continue
		case AlwaysAbove:
			// Polar day began without a crossing in the window.
			cur = sampleUntilSet(&heights, rel, sinAlt, cur, end, cfg)
			continue
		}
		if rise.Time.After(end) {
			break
		}
		cur = sampleUntilSet(&heights, rel, sinAlt, rise.Time, end, cfg)
	}

	localized, err := heights.In(loc)
	if err != nil {
		return nil, err
	}
	if err := localized.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s heights for %d: %v", ErrAstronomicalAnomaly, body, year, err)
	}

	track := &Track{
		Body:    body,
		Place:   p,
		Year:    year,
		Heights: localized,
	}

	switch body {
	case Sun:
		if track.Events, err = SolarEvents(year, loc); err != nil {
			return nil, err
		}
	case Moon:
		if err := buildMoonDailies(track, year, loc, cfg); err != nil {
			return nil, err
		}
	}
	return track, nil
}

// sampleUntilSet samples sin(altitude) from the given up instant to the next
// set (or the span end when the body stays up), appends the gap sentinel, and
// returns the advanced cursor.
func sampleUntilSet(heights *timeseries.Series, rel, sinAlt altitudeFunc, from, end time.Time, cfg Config) time.Time {
	set := nextCrossing(rel, from, end.Sub(from)+day, false, cfg.ScanStep, cfg.Tolerance)
	segEnd := end
	if set.State == Crossed {
		segEnd = set.Time
	}
	for t := from; t.Before(segEnd); t = t.Add(cfg.Step) {
		heights.Append(t, sinAlt(t))
	}
	heights.Append(segEnd, sinAlt(segEnd))
	heights.Append(segEnd.Add(cfg.Step/100), timeseries.Gap())
	return segEnd.Add(cfg.ScanStep)
}

// buildMoonDailies fills in the per-day illumination and lunation-day series
// at the configured local reference hour.
func buildMoonDailies(track *Track, year int, loc *time.Location, cfg Config) error {
	days := 365
	if isLeap(year) {
		days = 366
	}
	illum := timeseries.Make(days)
	phase := timeseries.Make(days)

	first := time.Date(year, time.January, 1, cfg.DailyHour, 0, 0, 0, loc)
	lun, err := LunationAround(first)
	if err != nil {
		return err
	}
	for d := first; d.Year() == year; d = time.Date(d.Year(), d.Month(), d.Day()+1, cfg.DailyHour, 0, 0, 0, loc) {
		if !lun.Contains(d) {
			if lun, err = LunationAround(d); err != nil {
				return err
			}
		}
		illum.Append(d, Illumination(d))
		phase.Append(d, float64(lun.Day(d, cfg.PhaseIDs)))
	}

	if err := illum.Validate(); err != nil {
		return fmt.Errorf("%w: moon illumination for %d: %v", ErrAstronomicalAnomaly, year, err)
	}
	if err := phase.Validate(); err != nil {
		return fmt.Errorf("%w: moon phase days for %d: %v", ErrAstronomicalAnomaly, year, err)
	}
	track.PercentIlluminated = illum
	track.PhaseDayNum = phase
	return nil
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
