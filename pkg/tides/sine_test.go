package tides

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSineInterp(t *testing.T) {
	table := []struct {
		name     string
		h1, h2   float64
		res      int
		dropLast bool
		want     []float64
	}{{
		name: "falling",
		h1:   -1.2, h2: -6.2, res: 5,
		want: []float64{-1.2, -1.93223305, -3.7, -5.46776695, -6.2},
	}, {
		name: "falling positive",
		h1:   6.2, h2: 1.2, res: 5,
		want: []float64{6.2, 5.46776695, 3.7, 1.93223305, 1.2},
	}, {
		name: "rising",
		h1:   -6.2, h2: -1.2, res: 5,
		want: []float64{-6.2, -5.46776695, -3.7, -1.93223305, -1.2},
	}, {
		name: "rising drop last",
		h1:   -6.2, h2: -1.2, res: 5, dropLast: true,
		want: []float64{-6.2, -5.46776695, -3.7, -1.93223305},
	}, {
		name: "flat",
		h1:   2.5, h2: 2.5, res: 4,
		want: []float64{2.5, 2.5, 2.5, 2.5},
	}}

	approx := cmpopts.EquateApprox(0, 1e-6)
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SineInterp(tc.h1, tc.h2, tc.res, tc.dropLast)
			if err != nil {
				t.Fatalf("unexpected: %v", err)
			}
			if diff := cmp.Diff(tc.want, got, approx); diff != "" {
				t.Errorf("wrong samples (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestSineInterpMonotonic(t *testing.T) {
	table := []struct {
		h1, h2 float64
	}{
		{-3, 4.5},
		{4.5, -3},
		{0, 0.001},
		{100, 99},
	}
	for _, tc := range table {
		got, err := SineInterp(tc.h1, tc.h2, 50, false)
		if err != nil {
			t.Fatalf("unexpected: %v", err)
		}
		for i := 1; i < len(got); i++ {
			if tc.h1 < tc.h2 && got[i] < got[i-1] {
				t.Fatalf("(%g,%g): decreased at index %d", tc.h1, tc.h2, i)
			}
			if tc.h1 > tc.h2 && got[i] > got[i-1] {
				t.Fatalf("(%g,%g): increased at index %d", tc.h1, tc.h2, i)
			}
		}
	}
}

func TestSineInterpDropLastIsPrefix(t *testing.T) {
	full, err := SineInterp(1.5, -2.25, 9, false)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	short, err := SineInterp(1.5, -2.25, 9, true)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if diff := cmp.Diff(full[:len(full)-1], short); diff != "" {
		t.Errorf("dropLast result is not a prefix (-full,+short):\n%s", diff)
	}
}

func TestSineInterpBadResolution(t *testing.T) {
	for _, res := range []int{-1, 0, 1, 2} {
		if _, err := SineInterp(0, 1, res, false); !errors.Is(err, ErrInvalidResolution) {
			t.Errorf("resolution %d: got %v, wanted ErrInvalidResolution", res, err)
		}
	}
}
