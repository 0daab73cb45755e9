package timeseries

import (
	"fmt"
	"time"
)

// Event is a labeled instant, e.g. an equinox or a moon phase landmark.
type Event struct {
	Time  time.Time `json:"time"`
	Label string    `json:"label"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Time.Format(time.RFC822), e.Label)
}

// Events is a chronological list of labeled instants.
type Events []Event

// In converts every event instant to loc.
func (e Events) In(loc *time.Location) (Events, error) {
	if loc == nil {
		return nil, ErrNilLocation
	}
	out := make(Events, len(e))
	for i, ev := range e {
		out[i] = Event{Time: ev.Time.In(loc), Label: ev.Label}
	}
	return out, nil
}

// Validate checks that events are in chronological order.
func (e Events) Validate() error {
	for i := 1; i < len(e); i++ {
		if e[i].Time.Before(e[i-1].Time) {
			return fmt.Errorf("%w: event %d (%s) before event %d (%s)",
				ErrUnsortedSeries, i, e[i].Time, i-1, e[i-1].Time)
		}
	}
	return nil
}
