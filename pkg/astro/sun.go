package astro

import (
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solstice"

	"github.com/halfmoonbay/sunmoontide/pkg/timeseries"
)

// SolarEvents returns the year's two equinoxes and two solstices as labeled
// instants converted to loc, in chronological order.
//
// The underlying tables yield instants in dynamical time; the minute-scale
// offset from UTC is far below calendar display resolution and is ignored.
func SolarEvents(year int, loc *time.Location) (timeseries.Events, error) {
	if loc == nil {
		return nil, timeseries.ErrNilLocation
	}
	events := timeseries.Events{
		{Time: julian.JDToTime(solstice.March(year)).In(loc), Label: "spring equinox"},
		{Time: julian.JDToTime(solstice.June(year)).In(loc), Label: "summer solstice"},
		{Time: julian.JDToTime(solstice.September(year)).In(loc), Label: "fall equinox"},
		{Time: julian.JDToTime(solstice.December(year)).In(loc), Label: "winter solstice"},
	}
	if err := events.Validate(); err != nil {
		return nil, fmt.Errorf("%w: solar events for %d: %v", ErrAstronomicalAnomaly, year, err)
	}
	return events, nil
}
