// Command almanac builds one place-year of sun, moon, and tide series and
// writes it as JSON, for piping into plotting or calendar tooling.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/halfmoonbay/sunmoontide/pkg/almanac"
	"github.com/halfmoonbay/sunmoontide/pkg/noaa"
	"github.com/halfmoonbay/sunmoontide/pkg/place"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		year    = flag.Int("year", time.Now().Year()+1, "year to build")
		station = flag.Int("station", int(noaa.SantaCruz), "NOAA station ID")
		name    = flag.String("name", place.SantaCruz.Name, "place name")
		lat     = flag.Float64("lat", place.SantaCruz.Lat, "latitude in degrees")
		long    = flag.Float64("long", place.SantaCruz.Long, "longitude in degrees")
		tz      = flag.String("tz", place.SantaCruz.TimeZone, "IANA time zone of the place")
		out     = flag.String("o", "", "output file, default stdout")
	)
	flag.Parse()

	p := place.Place{Name: *name, Lat: *lat, Long: *long, TimeZone: *tz}
	if err := p.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad place")
	}

	ctx := context.Background()

	query, err := noaa.ForYear(noaa.Station(*station), p.TimeZone, *year)
	if err != nil {
		log.Fatal().Err(err).Msg("bad query")
	}
	log.Info().Int("station", *station).Int("year", *year).Msg("fetching tide predictions")
	preds, err := noaa.GetPredictions(ctx, query)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch from NOAA")
	}
	log.Info().Int("extrema", len(preds)).Msg("fetched tide predictions")

	start := time.Now()
	a, err := almanac.Build(ctx, p, *year, preds.Extrema(), almanac.Options{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build almanac")
	}
	log.Info().
		Dur("elapsed", time.Since(start)).
		Int("sun_samples", a.Sun.Heights.Len()).
		Int("moon_samples", a.Moon.Heights.Len()).
		Int("tide_samples", a.TideHeights.Len()).
		Float64("min_tide", a.MinTide).
		Float64("max_tide", a.MaxTide).
		Msg("built almanac")

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create output file")
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		log.Fatal().Err(err).Msg("failed to encode almanac")
	}
}
