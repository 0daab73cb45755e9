// Package noaa fetches tide predictions from the NOAA CO-OPS API. Predictions
// are requested per station as high/low extrema over a window (a whole local
// year with ForYear) and come back with UTC timestamps, ready to feed the
// tide curve interpolator.
package noaa
