// Package visualize renders one calendar day of tide and sun data as an
// inline SVG strip. The tide silhouette is drawn from the dense interpolated
// curve, so no client-side math is needed to get a smooth shape.
package visualize

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/halfmoonbay/sunmoontide/pkg/sunset"
	"github.com/halfmoonbay/sunmoontide/pkg/timeseries"
	"github.com/halfmoonbay/sunmoontide/pkg/timetricks"
)

const (
	width  = 1200
	height = 300
)

type Tidal struct {
	date      time.Time
	tide      timeseries.Series
	sunEvents sunset.SunEvents
}

func NewTidal(tide timeseries.Series, sunEvents sunset.SunEvents) *Tidal {
	return &Tidal{
		tide:      tide,
		sunEvents: sunEvents,
	}
}

func (img *Tidal) SetDate(t time.Time) {
	img.date = timetricks.TrimClock(t)
}

func (img *Tidal) Encode(w io.Writer) (int, error) {
	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil {
			err = nexterr
		}
	}

	io(fmt.Fprintf(w, `<svg viewBox="0 0 %d %d" onclick="" xmlns="http://www.w3.org/2000/svg">`, width, height))

	// Calculate dawn/dusk and draw the sunshine.
	sunupIndex, ok := img.sunup(img.date)
	if !ok || sunupIndex+1 >= len(img.sunEvents) {
		return n, fmt.Errorf("not enough sun data")
	}
	sunup := img.sunEvents[sunupIndex]
	sundown := img.sunEvents[sunupIndex+1]
	risex := img.timeToX(sunup.Time)
	setx := img.timeToX(sundown.Time)
	io(fmt.Fprintf(w, `<rect class="daytime" fill="lightyellow" x="%d" y="%d" width="%d" height="%d"/>`,
		risex, 0,
		setx-risex, height))

	// Draw markers for tide levels.
	io(fmt.Fprintf(w, `<rect class="two_foot" fill="#e76f51" x="%d" y="%d" width="%d" height="%d"/>`,
		0, tideHeightToY(2),
		width, tideHeightToY(1)-tideHeightToY(2)+1))
	io(fmt.Fprintf(w, `<rect class="one_foot" fill="#f4a261" x="%d" y="%d" width="%d" height="%d"/>`,
		0, tideHeightToY(1),
		width, tideHeightToY(0)-tideHeightToY(1)+1))
	io(fmt.Fprintf(w, `<rect class="zero_foot" fill="#e9c46a" x="%d" y="%d" width="%d" height="%d"/>`,
		0, tideHeightToY(0),
		width, tideHeightToY(-2)-tideHeightToY(0)+1))

	// The curve is dense enough to draw as straight segments. Start a bit
	// before midnight so the silhouette enters from off screen.
	day := img.tide.Slice(img.date.Add(-time.Hour), img.date.Add(25*time.Hour))
	if day.Len() < 2 {
		return n, fmt.Errorf("not enough tide data")
	}
	io(fmt.Fprintf(w, `<path class="tide" fill="skyblue" d="M %d,%d `,
		img.timeToX(day.Times[0]), tideHeightToY(day.Values[0])))
	for i := 1; i < day.Len(); i++ {
		io(fmt.Fprintf(w, `L %d,%d `,
			img.timeToX(day.Times[i]), tideHeightToY(day.Values[i])))
	}
	io(fmt.Fprintf(w, `L %d,%d L %d,%d z"/>`,
		img.timeToX(day.Times[day.Len()-1]), height,
		img.timeToX(day.Times[0]), height))

	// Draw the night time shadows.
	io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="%d" y="%d" width="%d" height="%d"/>`,
		0, 0,
		risex, height))
	io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="%d" y="%d" width="%d" height="%d"/>`,
		setx, 0,
		width-setx, height))

	// Insert the day's curve as JSON for client-side hover readouts.
	io(fmt.Fprintf(w, `<text class="curve" visibility="hidden">`))
	json.NewEncoder(w).Encode(dayJSON(day))
	io(fmt.Fprintf(w, `</text>`))

	// Insert date of this graph as unix.
	io(fmt.Fprintf(w, `<text class="unixtime" visibility="hidden">%d</text>`, img.date.Unix()))

	io(fmt.Fprintf(w, `</svg>`))

	return n, err
}

type curvePoint struct {
	Unix   int64   `json:"unix"`
	Height float64 `json:"height"`
}

func dayJSON(day timeseries.Series) []curvePoint {
	pts := make([]curvePoint, day.Len())
	for i := range pts {
		pts[i] = curvePoint{Unix: day.Times[i].Unix(), Height: day.Values[i]}
	}
	return pts
}

func (img *Tidal) sunup(t time.Time) (int, bool) {
	for i := 0; i < len(img.sunEvents); i++ {
		if img.sunEvents[i].Time.After(t) {
			return i, true
		}
	}
	return 0, false
}

func tideHeightToY(tideHeight float64) int {
	return height - int((tideHeight+2)*(height/10)) // scaling ratio of img height to 10 feet of tide variance
}

func (img *Tidal) timeToX(t time.Time) int {
	return int(t.Unix()-img.date.Unix()) * width / (60 * 60 * 24)
}
