package astro

import (
	"fmt"
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// DefaultPhaseIDs is the length of the lunation-day cycle: the number of
// distinct moon phase icons a calendar renderer has available. 0 is new moon.
const DefaultPhaseIDs = 28

const (
	// phaseScanStep paces the coarse scan for a phase crossing. The phase
	// advances about 0.0042 per 3 hours, so a crossing cannot hide between
	// scan points.
	phaseScanStep = 3 * time.Hour
	// phaseScanLimit bounds a crossing search to slightly more than one
	// synodic month.
	phaseScanLimit = 32 * 24 * time.Hour
	phaseTolerance = 30 * time.Second
)

// phaseFunc reports lunar phase at t as a fraction of the synodic cycle in
// [0, 1): 0 new moon, 0.25 first quarter, 0.5 full, 0.75 last quarter.
type phaseFunc func(t time.Time) float64

func moonPhase(t time.Time) float64 {
	return suncalc.GetMoonIllumination(t).Phase
}

// Illumination returns the percentage of the moon's disc illuminated at t,
// in [0, 100].
func Illumination(t time.Time) float64 {
	return suncalc.GetMoonIllumination(t).Fraction * 100
}

// phaseDistance maps a phase reading onto [0, 1) distance past target.
func phaseDistance(p, target float64) float64 {
	d := math.Mod(p-target, 1)
	if d < 0 {
		d += 1
	}
	return d
}

// phaseInstantAfter finds the first instant at or after from when the phase
// crosses target. The crossing is detected as a wrap of the distance-past-
// target function between consecutive scan points, then bisected.
func phaseInstantAfter(p phaseFunc, from time.Time, target float64) (time.Time, error) {
	prevT := from
	prevD := phaseDistance(p(prevT), target)
	limit := from.Add(phaseScanLimit)
	for t := from.Add(phaseScanStep); !t.After(limit); t = t.Add(phaseScanStep) {
		d := phaseDistance(p(t), target)
		if prevD-d > 0.5 {
			return bisectPhase(p, prevT, t, target), nil
		}
		prevT, prevD = t, d
	}
	return time.Time{}, fmt.Errorf("%w: no phase %.2f crossing within %s of %s",
		ErrAstronomicalAnomaly, target, phaseScanLimit, from)
}

// phaseInstantBefore finds the last instant at or before from when the phase
// crossed target.
func phaseInstantBefore(p phaseFunc, from time.Time, target float64) (time.Time, error) {
	laterT := from
	laterD := phaseDistance(p(laterT), target)
	limit := from.Add(-phaseScanLimit)
	for t := from.Add(-phaseScanStep); !t.Before(limit); t = t.Add(-phaseScanStep) {
		d := phaseDistance(p(t), target)
		if d-laterD > 0.5 {
			return bisectPhase(p, t, laterT, target), nil
		}
		laterT, laterD = t, d
	}
	return time.Time{}, fmt.Errorf("%w: no phase %.2f crossing within %s before %s",
		ErrAstronomicalAnomaly, target, phaseScanLimit, from)
}

// bisectPhase narrows a bracketed phase wrap: distance-past-target is near 1
// at a and near 0 at b.
func bisectPhase(p phaseFunc, a, b time.Time, target float64) time.Time {
	for b.Sub(a) > phaseTolerance {
		mid := a.Add(b.Sub(a) / 2)
		if phaseDistance(p(mid), target) < 0.5 {
			b = mid
		} else {
			a = mid
		}
	}
	return a.Add(b.Sub(a) / 2)
}

// Lunation holds the landmark instants of one new-moon-to-new-moon cycle.
type Lunation struct {
	NewMoon      time.Time
	FirstQuarter time.Time
	Full         time.Time
	LastQuarter  time.Time
	NextNew      time.Time
}

// Contains reports whether t falls inside this lunation.
func (l Lunation) Contains(t time.Time) bool {
	return !t.Before(l.NewMoon) && t.Before(l.NextNew)
}

// LunationAround locates the lunation containing t.
func LunationAround(t time.Time) (Lunation, error) {
	return lunationAround(moonPhase, t)
}

func lunationAround(p phaseFunc, t time.Time) (Lunation, error) {
	var l Lunation
	var err error
	if l.NewMoon, err = phaseInstantBefore(p, t, 0); err != nil {
		return Lunation{}, err
	}
	if l.FirstQuarter, err = phaseInstantAfter(p, l.NewMoon.Add(time.Minute), 0.25); err != nil {
		return Lunation{}, err
	}
	if l.Full, err = phaseInstantAfter(p, l.NewMoon.Add(time.Minute), 0.5); err != nil {
		return Lunation{}, err
	}
	if l.LastQuarter, err = phaseInstantAfter(p, l.NewMoon.Add(time.Minute), 0.75); err != nil {
		return Lunation{}, err
	}
	if l.NextNew, err = phaseInstantAfter(p, l.NewMoon.Add(time.Minute), 0); err != nil {
		return Lunation{}, err
	}
	return l, nil
}

// Day returns the lunation-day id for t in [0, ids-1], 0 marking new moon.
//
// A first approximation scales t's position in the whole cycle onto the id
// range. Near quarter boundaries that drifts, because real lunations are not
// evenly paced, so when the approximation lands in the first three quarters
// of the cycle the id is recomputed against the nearest actual quarter
// landmark instead. Rounding is half away from zero throughout.
func (l Lunation) Day(t time.Time, ids int) int {
	num := float64(ids - 1)
	frac := func(until time.Time) float64 {
		return t.Sub(l.NewMoon).Seconds() / until.Sub(l.NewMoon).Seconds()
	}

	first := math.Round(frac(l.NextNew) * num)
	if first < math.Ceil(num/4) && t.Before(l.FirstQuarter) {
		return int(math.Round(frac(l.FirstQuarter) * num / 4))
	}
	if first < math.Ceil(num/2) && t.Before(l.Full) {
		return int(math.Round(frac(l.Full) * num / 2))
	}
	if first < math.Ceil(num*3/4) && t.Before(l.LastQuarter) {
		return int(math.Round(frac(l.LastQuarter) * num * 3 / 4))
	}
	return int(first)
}

// LunationDay is the one-shot form of Lunation.Day for a single date.
func LunationDay(t time.Time, ids int) (int, error) {
	l, err := LunationAround(t)
	if err != nil {
		return 0, err
	}
	return l.Day(t, ids), nil
}
