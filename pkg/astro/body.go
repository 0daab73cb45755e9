// Package astro builds year-long altitude tracks for the sun and moon:
// dense sin(altitude) time series split at every set/rise gap, plus the
// seasonal and lunar event series a calendar wants alongside them.
//
// The ephemeris itself comes from suncalc; this package owns the harder
// part of locating horizon crossings across a year without tripping over
// polar edge cases.
package astro

import (
	"errors"
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// ErrAstronomicalAnomaly marks an internal-consistency failure while
// assembling a track: the underlying queries produced something the builder's
// invariants rule out. Callers may substitute a degraded result for the body.
var ErrAstronomicalAnomaly = errors.New("astronomical anomaly")

// Body selects which celestial body a track describes.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	default:
		return "unknown"
	}
}

// CivilTwilightDeg is the sun altitude used as its effective rise/set
// threshold: 6 degrees below the geometric horizon.
const CivilTwilightDeg = -6.0

// Observer is an immutable snapshot of the observation geometry. It carries
// no time cursor; every query takes its instant explicitly, so snapshots can
// be shared freely between searches.
type Observer struct {
	Lat       float64
	Long      float64
	Elevation float64
	// Horizon is the altitude threshold, in radians, above which the body
	// counts as risen. Negative for twilight conventions.
	Horizon float64
}

// HorizonFor returns the rise/set altitude threshold for the body, in
// radians: civil twilight for the sun, the geometric horizon for the moon.
func HorizonFor(b Body) float64 {
	if b == Sun {
		return CivilTwilightDeg * math.Pi / 180
	}
	return 0
}

// Altitude returns the body's altitude in radians above the geometric
// horizon, as seen by obs at instant t.
func (b Body) Altitude(obs Observer, t time.Time) float64 {
	switch b {
	case Moon:
		return suncalc.GetMoonPosition(t, obs.Lat, obs.Long).Altitude
	default:
		return suncalc.GetPosition(t, obs.Lat, obs.Long).Altitude
	}
}
