// Package place describes an observer location on Earth: coordinates plus
// the IANA zone whose wall clock the final series are presented in.
package place

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/halfmoonbay/sunmoontide/pkg/yearspan"
)

// ErrUnreachable marks coordinates outside [-90,90] latitude or [-180,180]
// longitude.
var ErrUnreachable = errors.New("location unreachable")

var validate = validator.New()

// Place is a lat/long coordinate matched with its time zone.
type Place struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat" validate:"gte=-90,lte=90"`
	Long     float64 `json:"long" validate:"gte=-180,lte=180"`
	TimeZone string  `json:"timezone" validate:"required"`
}

var SantaCruz = Place{
	Name:     "Santa Cruz, CA",
	Lat:      36.9741,
	Long:     -122.0308,
	TimeZone: "America/Los_Angeles",
}

// Validate checks the coordinate ranges and that a zone name is present. It
// does not load the zone; see Location.
func (p Place) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return nil
}

// Location resolves the place's zone name.
func (p Place) Location() (*time.Location, error) {
	return yearspan.Location(p.TimeZone)
}

func (p Place) String() string {
	return fmt.Sprintf("%s (%.4f, %.4f, %s)", p.Name, p.Lat, p.Long, p.TimeZone)
}
