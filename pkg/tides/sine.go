package tides

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidResolution = errors.New("resolution must be an integer greater than 2")

	// ErrInterpolationInvariant marks an internal-consistency failure: the
	// interpolated curve did not pass through its endpoints. It indicates a
	// defect in the algorithm rather than bad input.
	ErrInterpolationInvariant = errors.New("interpolation invariant violated")
)

// endpointTolerance is the rounding applied before comparing interpolation
// endpoints to the requested heights.
const endpointTolerance = 1e-8

// SineInterp produces resolution evenly spaced samples forming a half sine
// wave from h1 to h2. The phase runs trough-to-peak (-pi/2 to pi/2) when
// h1 < h2 and peak-to-trough (pi/2 to 3pi/2) otherwise, so the result is
// monotonic and passes exactly through both endpoints. Equal heights yield a
// flat line.
//
// With dropLast the final sample (equal to h2) is omitted, so consecutive
// intervals can be concatenated without duplicating the shared extremum.
func SineInterp(h1, h2 float64, resolution int, dropLast bool) ([]float64, error) {
	if resolution <= 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidResolution, resolution)
	}

	amp := (math.Max(h1, h2) - math.Min(h1, h2)) / 2
	bump := math.Max(h1, h2) - amp

	phase0 := math.Pi / 2 // peak-to-trough
	if h1 < h2 {
		phase0 = -math.Pi / 2 // trough-to-peak
	}

	y := make([]float64, resolution)
	for i := range y {
		x := phase0 + math.Pi*float64(i)/float64(resolution-1)
		y[i] = amp*math.Sin(x) + bump
	}

	if !closeEnough(y[0], h1) || !closeEnough(y[resolution-1], h2) {
		return nil, fmt.Errorf("%w: endpoints (%g, %g) do not match heights (%g, %g)",
			ErrInterpolationInvariant, y[0], y[resolution-1], h1, h2)
	}

	if dropLast {
		return y[:resolution-1], nil
	}
	return y, nil
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < endpointTolerance
}
