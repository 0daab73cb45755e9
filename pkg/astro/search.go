package astro

import (
	"time"
)

// altitudeFunc reports altitude relative to the search threshold at t:
// positive means the body counts as up.
type altitudeFunc func(t time.Time) float64

// HorizonState classifies the outcome of a crossing search over a bounded
// window. A query for the next rise or set can legitimately have no answer
// for months at polar latitudes, so "not found" is a value, not an error.
type HorizonState int

const (
	Crossed HorizonState = iota
	// AlwaysBelow: the body stayed below the threshold for the whole window.
	AlwaysBelow
	// AlwaysAbove: the body stayed above the threshold for the whole window.
	AlwaysAbove
)

func (s HorizonState) String() string {
	switch s {
	case Crossed:
		return "crossed"
	case AlwaysBelow:
		return "always below"
	case AlwaysAbove:
		return "always above"
	default:
		return "unknown"
	}
}

// Crossing is the result of a bounded rise/set search. Time is meaningful
// only when State == Crossed.
type Crossing struct {
	Time  time.Time
	State HorizonState
}

// nextCrossing finds the first time in (from, from+window] at which alt
// crosses zero going up (rising = true) or down (rising = false). It scans
// at scanStep to bracket a sign change, then bisects to within tol.
//
// Crossings narrower than scanStep can be missed; for the sun and moon a
// 10 minute scan is far below the hours-scale width of any up/down period.
func nextCrossing(alt altitudeFunc, from time.Time, window time.Duration, rising bool, scanStep, tol time.Duration) Crossing {
	end := from.Add(window)
	prevT := from
	prevAlt := alt(prevT)

	for t := from.Add(scanStep); !t.After(end.Add(scanStep)); t = t.Add(scanStep) {
		a := alt(t)
		if brackets(prevAlt, a, rising) {
			return Crossing{Time: bisect(alt, prevT, t, rising, tol), State: Crossed}
		}
		prevT, prevAlt = t, a
	}

	if prevAlt > 0 {
		return Crossing{State: AlwaysAbove}
	}
	return Crossing{State: AlwaysBelow}
}

func brackets(a1, a2 float64, rising bool) bool {
	if rising {
		return a1 <= 0 && a2 > 0
	}
	return a1 > 0 && a2 <= 0
}

func bisect(alt altitudeFunc, a, b time.Time, rising bool, tol time.Duration) time.Time {
	altA := alt(a)
	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		altM := alt(mid)
		if brackets(altA, altM, rising) {
			b = mid
		} else {
			a, altA = mid, altM
		}
	}
	return a.Add(b.Sub(a) / 2)
}
