package noaa

import (
	"fmt"
	"testing"
	"time"
)

func TestQueryURL(t *testing.T) {
	in := Query{
		Start:   time.Date(2015, time.December, 31, 8, 0, 0, 0, time.UTC),
		End:     time.Date(2017, time.January, 2, 7, 59, 59, 0, time.UTC),
		Station: SantaCruz,
	}
	want := fmt.Sprintf("https://api.tidesandcurrents.noaa.gov/api/prod/datagetter?begin_date=20151231&datum=MLLW&end_date=20170102&format=json&interval=hilo&product=predictions&station=%d&time_zone=gmt&units=english", SantaCruz)
	got := in.url().String()
	if want != got {
		t.Errorf("got  %q", got)
		t.Errorf("want %q", want)
	}
}

func TestForYear(t *testing.T) {
	q, err := ForYear(SantaCruz, "America/Los_Angeles", 2016)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	wantStart := time.Date(2015, time.December, 31, 8, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2017, time.January, 2, 7, 59, 59, 0, time.UTC)
	if !q.Start.Equal(wantStart) {
		t.Errorf("start: got %s, wanted %s", q.Start, wantStart)
	}
	if !q.End.Equal(wantEnd) {
		t.Errorf("end: got %s, wanted %s", q.End, wantEnd)
	}

	if _, err := ForYear(SantaCruz, "Nowhere/Atall", 2016); err == nil {
		t.Error("expected an error for an unknown zone")
	}
}
