package astro

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSolarEvents(t *testing.T) {
	events, err := SolarEvents(2015, time.UTC)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	wantLabels := []string{
		"spring equinox", "summer solstice", "fall equinox", "winter solstice",
	}
	var gotLabels []string
	for _, e := range events {
		gotLabels = append(gotLabels, e.Label)
	}
	if diff := cmp.Diff(wantLabels, gotLabels); diff != "" {
		t.Fatalf("wrong labels (-want,+got):\n%s", diff)
	}

	wantDates := []string{"2015-03-20", "2015-06-21", "2015-09-23", "2015-12-22"}
	for i, e := range events {
		if got := e.Time.Format("2006-01-02"); got != wantDates[i] {
			t.Errorf("%s: got %s, wanted %s", e.Label, got, wantDates[i])
		}
	}
}

func TestSolarEventsLocalized(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatal(err)
	}
	utc, err := SolarEvents(2016, time.UTC)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	local, err := SolarEvents(2016, la)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	for i := range utc {
		if !utc[i].Time.Equal(local[i].Time) {
			t.Errorf("%s: localization changed the instant", utc[i].Label)
		}
	}
}
