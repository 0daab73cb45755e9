// Package handlers wires the HTTP surface: JSON APIs for year almanacs and
// good beach times, plus the server-rendered week view.
package handlers

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/halfmoonbay/sunmoontide/pkg/almanac"
	"github.com/halfmoonbay/sunmoontide/pkg/cache"
	"github.com/halfmoonbay/sunmoontide/pkg/meta"
	"github.com/halfmoonbay/sunmoontide/pkg/metrics"
	"github.com/halfmoonbay/sunmoontide/pkg/noaa"
	"github.com/halfmoonbay/sunmoontide/pkg/place"
	"github.com/halfmoonbay/sunmoontide/pkg/sunset"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const (
	day            = 24 * time.Hour
	forecastLength = 7 * day

	// Good times go stale daily; almanacs only when NOAA reissues a year.
	goodTimesCacheTTL = 23 * time.Hour
	almanacCacheTTL   = 7 * day

	koDataEnvKey = "KO_DATA_PATH"
)

var (
	defaultPlace   = place.SantaCruz
	defaultStation = noaa.SantaCruz
)

func Register(r *mux.Router, prefix string, content embed.FS) {
	dataDir := getDataDir()

	r.Handle("/", makeServerSideIndex(content))
	r.Handle("/config", makeConfigTideParameters(prefix, content))
	r.Handle("/api/v1/almanac/{year:[0-9]+}", makeServeAlmanac())
	r.Handle("/api/v1/goodtimes", makeServeGoodTimes())
	r.PathPrefix("/static/").Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(dataDir))))
}

// LogRequests emits one structured line per request.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("verb", r.Method).
			Stringer("url", r.URL).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func getDataDir() string {
	if dir := os.Getenv(koDataEnvKey); dir != "" {
		return dir
	}
	return "."
}

// makeServeAlmanac serves a full place-year of sun, moon, and tide series as
// JSON. Builds take tens of seconds, so results are cached aggressively.
func makeServeAlmanac() http.Handler {
	almanacCache := cache.NewTimed(almanacCacheTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		year, err := strconv.Atoi(mux.Vars(r)["year"])
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "bad year: %v", err)
			return
		}

		key := cache.Key(int(defaultStation), defaultPlace.TimeZone, year)
		if cached, ok := almanacCache.Get(key); ok {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		payload, err := buildAlmanacJSON(r.Context(), year)
		if err != nil {
			serveError(w, fmt.Errorf("failed to build almanac for %d: %w", year, err))
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)

		go func() {
			almanacCache.Set(key, payload)
		}()
	})
}

func buildAlmanacJSON(ctx context.Context, year int) ([]byte, error) {
	start := time.Now()

	query, err := noaa.ForYear(defaultStation, defaultPlace.TimeZone, year)
	if err != nil {
		return nil, err
	}
	preds, err := noaa.GetPredictions(ctx, query)
	if err != nil {
		return nil, err
	}

	a, err := almanac.Build(ctx, defaultPlace, year, preds.Extrema(), almanac.Options{})
	if err != nil {
		return nil, err
	}
	metrics.ObserveBuildDuration("almanac", time.Since(start))
	log.Info().Int("year", year).Dur("elapsed", time.Since(start)).Msg("built almanac")

	return json.Marshal(a)
}

func fetchGoodTimes(ctx context.Context, numDays time.Duration, opts meta.Options) ([]meta.GoodTime, error) {
	now := time.Now()
	query := noaa.Query{
		Start:   now,
		End:     now.Add(numDays * day),
		Station: defaultStation,
	}

	preds, err := noaa.GetPredictions(ctx, &query)
	if err != nil {
		return nil, err
	}
	loc, err := defaultPlace.Location()
	if err != nil {
		return nil, err
	}
	preds = localize(preds, loc)

	sunevents := sunset.GetSunEvents(now.In(loc), query.End.Sub(query.Start), defaultPlace)

	return meta.GoodTimesOpts(meta.Conditions{Tides: preds, SunEvents: sunevents}, opts), nil
}

func makeServeGoodTimes() http.Handler {
	// cache for slightly less than one day so daily clients don't see stale
	// data
	timeCache := cache.NewTimed(goodTimesCacheTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// cache based on method and URL, which should encapsulate the query
		key := fmt.Sprintf("%s %s", r.Method, r.URL)

		// serve cache version from memory if possible
		if cached, ok := timeCache.Get(key); ok {
			w.Header().Add("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
		log.Debug().Str("key", key).Msg("good times cache miss")

		goodTimes, err := fetchGoodTimes(r.Context(), forecastLength/day, meta.Options{})
		if err != nil {
			serveError(w, fmt.Errorf("failed to get data: %w", err))
			return
		}

		// duplicate the http response onto a buffer for the cache
		var toCache bytes.Buffer
		mw := io.MultiWriter(w, &toCache)

		// serve result
		outputFormat := r.FormValue("o")
		if outputFormat == "json" {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if err := json.NewEncoder(mw).Encode(goodTimes); err != nil {
				log.Error().Err(err).Msg("failed to encode JSON result")
			}
		} else {
			w.Header().Add("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			for i, gt := range goodTimes {
				fmt.Fprintf(mw, "%s", gt.String())
				if i+1 < len(goodTimes) {
					fmt.Fprintf(mw, "\n")
				}
			}
		}

		// save the result asynchonously as the cache may block
		go func() {
			timeCache.Set(key, toCache.Bytes())
		}()
	})
}
