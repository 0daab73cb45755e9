package place

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	table := []struct {
		name    string
		place   Place
		wantErr bool
	}{{
		name:  "santa cruz",
		place: SantaCruz,
	}, {
		name:  "extremes",
		place: Place{Lat: 90, Long: -180, TimeZone: "UTC"},
	}, {
		name:    "latitude too big",
		place:   Place{Lat: 90.01, Long: 0, TimeZone: "UTC"},
		wantErr: true,
	}, {
		name:    "longitude too small",
		place:   Place{Lat: 0, Long: -180.5, TimeZone: "UTC"},
		wantErr: true,
	}, {
		name:    "missing timezone",
		place:   Place{Lat: 0, Long: 0},
		wantErr: true,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.place.Validate()
			if tc.wantErr && !errors.Is(err, ErrUnreachable) {
				t.Errorf("got %v, wanted ErrUnreachable", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected: %v", err)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	if _, err := SantaCruz.Location(); err != nil {
		t.Errorf("unexpected: %v", err)
	}
	bogus := Place{Lat: 0, Long: 0, TimeZone: "Nowhere/Atall"}
	if _, err := bogus.Location(); err == nil {
		t.Errorf("expected an error for a bogus zone")
	}
}
