// Package yearspan computes the UTC instants bounding one calendar year in a
// given IANA time zone.
package yearspan

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidYear     = errors.New("year must be a positive integer")
	ErrUnknownTimezone = errors.New("unknown timezone")
)

// Bounds returns the UTC instant of local midnight on Jan 1 of year and the
// UTC instant of local 23:59:59 on Dec 31 of year, in the named zone.
//
// The UTC offset is resolved independently at each boundary. For zones with
// daylight saving, Jan 1 and Dec 31 usually share an offset, but nothing here
// assumes so; zones switch rules often enough that each end is looked up on
// its own.
func Bounds(timezone string, year int) (start, end time.Time, err error) {
	if year <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, timezone, err)
	}
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc).UTC()
	end = time.Date(year, time.December, 31, 23, 59, 59, 0, loc).UTC()
	return start, end, nil
}

// Location resolves the named zone, mapping failures to ErrUnknownTimezone.
func Location(timezone string) (*time.Location, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, timezone, err)
	}
	return loc, nil
}
