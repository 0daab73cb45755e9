package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/halfmoonbay/sunmoontide/pkg/yearspan"
)

const (
	NOAA_URL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"
	TIME_FMT = "20060102"

	// queryPadding widens the request by a day on each side so the local
	// year's first and last tide curves have extrema to lean on.
	queryPadding = 24 * time.Hour
)

// ForYear builds the query covering one local year at a station. The span is
// resolved in the given zone and padded by a day on each side.
func ForYear(station Station, timezone string, year int) (*Query, error) {
	start, end, err := yearspan.Bounds(timezone, year)
	if err != nil {
		return nil, err
	}
	return &Query{
		Start:   start.Add(-queryPadding),
		End:     end.Add(queryPadding),
		Station: station,
	}, nil
}

// GetPredictions fetches the high/low predictions for q. Timestamps in the
// response are UTC.
func GetPredictions(ctx context.Context, q *Query) (Predictions, error) {
	var result Result

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.url().String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("noaa: unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	// NOAA reports bad stations and empty windows in-band with a 200.
	if result.Error != nil {
		return nil, result.Error
	}

	return result.Predictions, nil
}

func (q *Query) url() *url.URL {
	// NOAA_URL is a constant and always parses.
	addr, _ := url.Parse(NOAA_URL)

	vals := make(url.Values)
	vals.Add("begin_date", q.Start.UTC().Format(TIME_FMT))
	vals.Add("end_date", q.End.UTC().Format(TIME_FMT))
	vals.Add("station", fmt.Sprintf("%d", q.Station))
	vals.Add("product", "predictions")
	vals.Add("datum", "MLLW")
	vals.Add("time_zone", "gmt")
	vals.Add("interval", "hilo")
	vals.Add("units", "english")
	vals.Add("format", "json")

	addr.RawQuery = vals.Encode()
	return addr
}
