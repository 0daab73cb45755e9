package noaa

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/halfmoonbay/sunmoontide/pkg/tides"
)

const predTimeFormat = "2006-01-02 15:04"

// Prediction holds a single predicted tide extremum.
type Prediction struct {
	// Time of the extremum, UTC.
	Time Time `json:"t"`
	// Height in feet above MLLW.
	Height Height `json:"v"`
	// High or Low tide, "H" or "L" when encoded.
	Type Tide `json:"type"`
}

// Verify the custom types can be unmarshaled
var _ json.Unmarshaler = &Time{}
var _ json.Unmarshaler = new(Height)
var _ json.Unmarshaler = new(Tide)

// Predictions is a time series of Prediction.
type Predictions []Prediction

// Extrema converts the predictions into the interpolator's input form.
func (p Predictions) Extrema() []tides.Extremum {
	out := make([]tides.Extremum, len(p))
	for i, pred := range p {
		out[i] = tides.Extremum{
			Time:   time.Time(pred.Time),
			Height: float64(pred.Height),
		}
	}
	return out
}

// Result is the data type returned by the NOAA API.
type Result struct {
	Predictions Predictions `json:"predictions"`
	Error       *APIError   `json:"error,omitempty"`
}

// APIError is NOAA's in-band error payload, returned with a 200 status.
type APIError struct {
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("noaa: %s", e.Message)
}

// Query requests every high/low prediction in a UTC window at a station; see
// GetPredictions. For whole-year requests use ForYear, which resolves the
// local year's span and pads it so the first and last local-day curves stay
// buildable.
type Query struct {
	Start   time.Time
	End     time.Time
	Station Station
}

type Station int

const (
	SantaCruz Station = 9413745
)

type Time time.Time

func (t *Time) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("prediction time %q not string: %w", buf, err)
	}
	parsed, err := time.ParseInLocation(predTimeFormat, s, time.UTC)
	if err != nil {
		return fmt.Errorf("prediction time %q not in fmt %q: %w", s, predTimeFormat, err)
	}
	*t = Time(parsed)
	return nil
}

type Height float64

func (h *Height) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("water height %q not string: %w", buf, err)
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("water height %q not a float: %w", s, err)
	}
	*h = Height(parsed)
	return nil
}

type Tide uint

const (
	HighTide Tide = iota
	LowTide
)

func (t Tide) Valid() bool {
	return t == HighTide || t == LowTide
}

func (t *Tide) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("tide %q not a string: %w", buf, err)
	}
	switch s {
	case "H":
		*t = HighTide
	case "L":
		*t = LowTide
	default:
		return fmt.Errorf("invalid tide type %q", s)
	}
	return nil
}

func (t Tide) String() string {
	switch t {
	case HighTide:
		return "H"
	case LowTide:
		return "L"
	default:
		return "invalid"
	}
}

func (p Prediction) String() string {
	return fmt.Sprintf("{t: %s, v: %f, type: %s}",
		time.Time(p.Time).Format(time.RFC822),
		p.Height,
		p.Type.String())
}
