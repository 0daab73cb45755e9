package astro

import (
	"math"
	"testing"
	"time"
)

// sinusoidAltitude fakes a body that crosses the horizon going up at t0,
// peaks at t0+6h, sets at t0+12h, and repeats daily.
func sinusoidAltitude(t0 time.Time) altitudeFunc {
	return func(t time.Time) float64 {
		h := t.Sub(t0).Hours()
		return math.Sin(2 * math.Pi * h / 24)
	}
}

func TestNextCrossing(t *testing.T) {
	t0 := time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC)
	alt := sinusoidAltitude(t0)
	const (
		scan = 10 * time.Minute
		tol  = time.Second
	)

	table := []struct {
		name   string
		from   time.Time
		rising bool
		want   time.Time
	}{{
		name: "next set from mid-morning",
		from: t0.Add(1 * time.Hour), rising: false,
		want: t0.Add(12 * time.Hour),
	}, {
		name: "next rise from mid-morning",
		from: t0.Add(1 * time.Hour), rising: true,
		want: t0.Add(24 * time.Hour),
	}, {
		name: "next rise from night",
		from: t0.Add(13 * time.Hour), rising: true,
		want: t0.Add(24 * time.Hour),
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := nextCrossing(alt, tc.from, 48*time.Hour, tc.rising, scan, tol)
			if got.State != Crossed {
				t.Fatalf("got state %s, wanted a crossing", got.State)
			}
			if d := got.Time.Sub(tc.want); d < -2*time.Second || d > 2*time.Second {
				t.Errorf("got %s, wanted %s (off by %s)", got.Time, tc.want, d)
			}
		})
	}
}

func TestNextCrossingPolar(t *testing.T) {
	t0 := time.Date(2015, time.December, 1, 0, 0, 0, 0, time.UTC)
	const (
		scan = 10 * time.Minute
		tol  = time.Second
	)

	down := func(time.Time) float64 { return -0.2 }
	got := nextCrossing(down, t0, 48*time.Hour, true, scan, tol)
	if got.State != AlwaysBelow {
		t.Errorf("body never up: got %s, wanted %s", got.State, AlwaysBelow)
	}

	up := func(time.Time) float64 { return 0.2 }
	got = nextCrossing(up, t0, 48*time.Hour, false, scan, tol)
	if got.State != AlwaysAbove {
		t.Errorf("body never down: got %s, wanted %s", got.State, AlwaysAbove)
	}
}
