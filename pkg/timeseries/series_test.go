package timeseries

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	t0 := time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC)

	table := []struct {
		name    string
		series  Series
		wantErr error
	}{{
		name: "ok",
		series: Series{
			Times:  []time.Time{t0, t0.Add(time.Minute), t0.Add(2 * time.Minute)},
			Values: []float64{1, Gap(), 3},
		},
	}, {
		name: "length mismatch",
		series: Series{
			Times:  []time.Time{t0},
			Values: []float64{1, 2},
		},
		wantErr: ErrLengthMismatch,
	}, {
		name: "duplicate time",
		series: Series{
			Times:  []time.Time{t0, t0},
			Values: []float64{1, 2},
		},
		wantErr: ErrUnsortedSeries,
	}, {
		name: "decreasing time",
		series: Series{
			Times:  []time.Time{t0.Add(time.Minute), t0},
			Values: []float64{1, 2},
		},
		wantErr: ErrUnsortedSeries,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.series.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, wanted %v", err, tc.wantErr)
			}
		})
	}
}

func TestIn(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatal(err)
	}

	var s Series
	utc := time.Date(2016, time.January, 1, 8, 0, 0, 0, time.UTC)
	s.Append(utc, 1.5)

	local, err := s.In(la)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	want := "2016-01-01 00:00:00"
	got := local.Times[0].Format("2006-01-02 15:04:05")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong local time (-want,+got):\n%s", diff)
	}
	if !local.Times[0].Equal(utc) {
		t.Errorf("conversion changed the instant")
	}
}

func TestIndexBefore(t *testing.T) {
	t0 := time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC)
	var s Series
	for i := 0; i < 5; i++ {
		s.Append(t0.Add(time.Duration(i)*time.Hour), float64(i))
	}

	table := []struct {
		at   time.Time
		want int
	}{
		{t0.Add(-time.Minute), -1},
		{t0, 0},
		{t0.Add(90 * time.Minute), 1},
		{t0.Add(100 * time.Hour), 4},
	}
	for _, tc := range table {
		if got := s.IndexBefore(tc.at); got != tc.want {
			t.Errorf("IndexBefore(%s) = %d, wanted %d", tc.at, got, tc.want)
		}
	}
}

func TestSlice(t *testing.T) {
	t0 := time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC)
	var s Series
	for i := 0; i < 24; i++ {
		s.Append(t0.Add(time.Duration(i)*time.Hour), float64(i))
	}

	day := s.Slice(t0.Add(6*time.Hour), t0.Add(12*time.Hour))
	if day.Len() != 6 {
		t.Fatalf("got %d samples, wanted 6", day.Len())
	}
	if day.Values[0] != 6 || day.Values[5] != 11 {
		t.Errorf("got values %v at the edges, wanted 6 and 11",
			[]float64{day.Values[0], day.Values[5]})
	}
}
