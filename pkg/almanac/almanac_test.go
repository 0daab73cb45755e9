package almanac

import (
	"context"
	"testing"
	"time"

	"github.com/halfmoonbay/sunmoontide/pkg/astro"
	"github.com/halfmoonbay/sunmoontide/pkg/place"
	"github.com/halfmoonbay/sunmoontide/pkg/tides"
	"github.com/halfmoonbay/sunmoontide/pkg/timeseries"
)

// yearOfExtrema fabricates a plausible mixed-tide year: alternating highs and
// lows roughly 6h12m apart.
func yearOfExtrema(year int) []tides.Extremum {
	start := time.Date(year-1, time.December, 31, 2, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 2, 0, 0, 0, 0, time.UTC)
	interval := 6*time.Hour + 12*time.Minute

	var out []tides.Extremum
	heights := []float64{5.1, 0.2, 3.8, -0.9}
	for t, i := start, 0; t.Before(end); t, i = t.Add(interval), i+1 {
		out = append(out, tides.Extremum{Time: t, Height: heights[i%len(heights)]})
	}
	return out
}

func TestBuild(t *testing.T) {
	if testing.Short() {
		t.Skip("full-year build")
	}

	extrema := yearOfExtrema(2016)
	a, err := Build(context.Background(), place.SantaCruz, 2016, extrema, Options{})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	if a.Sun == nil || a.Sun.Heights.Len() == 0 {
		t.Error("missing sun track")
	}
	if a.Moon == nil || a.Moon.PhaseDayNum.Len() != 366 {
		t.Errorf("moon dailies incomplete for a leap year")
	}
	if a.TideHeights.Len() == 0 {
		t.Error("missing tide curve")
	}
	if err := a.TideHeights.Validate(); err != nil {
		t.Errorf("tide curve invalid: %v", err)
	}
	if a.MinTide != -0.9 || a.MaxTide != 5.1 {
		t.Errorf("tide range [%f, %f], wanted [-0.9, 5.1]", a.MinTide, a.MaxTide)
	}

	loc, err := place.SantaCruz.Location()
	if err != nil {
		t.Fatal(err)
	}
	for _, series := range []timeseries.Series{a.Sun.Heights, a.Moon.Heights, a.TideHeights} {
		if got := series.Times[0].Location(); got != loc {
			t.Errorf("series localized to %v, wanted %v", got, loc)
		}
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	extrema := yearOfExtrema(2016)

	if _, err := Build(ctx, place.SantaCruz, 2016, nil, Options{}); err == nil {
		t.Error("expected an error for empty extrema")
	}

	bad := place.Place{Lat: 200, Long: 0, TimeZone: "UTC"}
	if _, err := Build(ctx, bad, 2016, extrema, Options{}); err == nil {
		t.Error("expected an error for a bad place")
	}

	unsorted := []tides.Extremum{
		{Time: extrema[1].Time, Height: 1},
		{Time: extrema[0].Time, Height: 2},
	}
	if _, err := Build(ctx, place.SantaCruz, 2016, unsorted, Options{}); err == nil {
		t.Error("expected an error for unsorted extrema")
	}
}

func TestDaySlicing(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatal(err)
	}

	// Hand-build a tiny almanac: two days of hourly samples and one daily
	// moon entry per day.
	mk := func(start time.Time, hours int) timeseries.Series {
		s := timeseries.Make(hours)
		for i := 0; i < hours; i++ {
			s.Append(start.Add(time.Duration(i)*time.Hour), float64(i))
		}
		return s
	}
	day1 := time.Date(2016, time.June, 1, 0, 0, 0, 0, loc)
	a := &Almanac{
		Place: place.SantaCruz,
		Year:  2016,
		Sun:   &astro.Track{Heights: mk(day1, 48)},
		Moon: &astro.Track{
			Heights: mk(day1, 48),
			PhaseDayNum: timeseries.Series{
				Times:  []time.Time{day1.Add(22 * time.Hour), day1.Add(46 * time.Hour)},
				Values: []float64{12, 13},
			},
			PercentIlluminated: timeseries.Series{
				Times:  []time.Time{day1.Add(22 * time.Hour), day1.Add(46 * time.Hour)},
				Values: []float64{88.0, 94.5},
			},
		},
		TideHeights: mk(day1, 48),
		TideExtrema: []tides.Extremum{
			{Time: day1.Add(5 * time.Hour), Height: 4.2},
			{Time: day1.Add(11 * time.Hour), Height: 0.1},
			{Time: day1.Add(29 * time.Hour), Height: 4.4},
		},
	}

	got := a.Day(day1.Add(3 * time.Hour))
	if got.SunHeights.Len() != 24 {
		t.Errorf("day slice has %d sun samples, wanted 24", got.SunHeights.Len())
	}
	if got.TideHeights.Len() != 24 {
		t.Errorf("day slice has %d tide samples, wanted 24", got.TideHeights.Len())
	}
	if len(got.TideExtrema) != 2 {
		t.Errorf("day slice has %d extrema, wanted 2", len(got.TideExtrema))
	}
	if got.PhaseDayNum != 12 {
		t.Errorf("phase day %d, wanted 12", got.PhaseDayNum)
	}
	if got.PercentIlluminated != 88.0 {
		t.Errorf("illumination %f, wanted 88.0", got.PercentIlluminated)
	}

	second := a.Day(day1.AddDate(0, 0, 1))
	if second.PhaseDayNum != 13 {
		t.Errorf("second day phase %d, wanted 13", second.PhaseDayNum)
	}
	if len(second.TideExtrema) != 1 {
		t.Errorf("second day has %d extrema, wanted 1", len(second.TideExtrema))
	}

	outside := a.Day(day1.AddDate(0, 6, 0))
	if outside.PhaseDayNum != -1 {
		t.Errorf("out-of-range day phase %d, wanted -1", outside.PhaseDayNum)
	}
}
