package handlers

import (
	"bytes"
	"crypto/sha1"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/halfmoonbay/sunmoontide/pkg/data"
	"github.com/halfmoonbay/sunmoontide/pkg/meta"
	"github.com/halfmoonbay/sunmoontide/pkg/noaa"
	"github.com/halfmoonbay/sunmoontide/pkg/sunset"
	"github.com/halfmoonbay/sunmoontide/pkg/tides"
	"github.com/halfmoonbay/sunmoontide/pkg/timetricks"
	"github.com/halfmoonbay/sunmoontide/pkg/visualize"
	"golang.org/x/crypto/pbkdf2"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
)

const (
	sessionName       = "sunmoontide"
	sessionLastViewed = "last-viewed-referrer"
	userID            = "userid"
	// See https://developer.chrome.com/blog/cookie-max-age-expires.
	defaultMaxAge = 60 * 60 * 24 * 400 // 400 days in seconds.

	// dayImageResolution keeps a week view cheap; roughly one sample every
	// eight minutes of a semidiurnal interval.
	dayImageResolution = 48
)

var (
	store = &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs(
			getSessionKey(),
			getEncryptionKey(),
		),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultMaxAge,
			Secure:   true,
			HttpOnly: true,
		},
	}
	db = data.PostgresFromEnvOrDie()
)

func init() {
	store.MaxAge(defaultMaxAge)
}

type TemplateInput struct {
	PresentationElements []PresentationElement
	NextStart            string
	PrevStart            string
	Name                 string
}

type PresentationElement struct {
	Date      string
	GoodTimes []meta.GoodTime
	TideImage template.HTML
}

// makeServerSideIndex serves a week of tide strips and good times fully
// rendered on the server.
func makeServerSideIndex(content embed.FS) http.HandlerFunc {
	indexTemplate := template.Must(template.ParseFS(content, "static/index.template.html"))

	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := store.Get(r, sessionName)
		session.Values[sessionLastViewed] = r.URL.String()
		if err := session.Save(r, w); err != nil {
			log.Warn().Err(err).Msg("failed to save session")
		}

		date := time.Now()
		startString := r.FormValue("start")
		if startString != "" {
			parsed, err := time.Parse(time.RFC3339, startString)
			if err != nil {
				log.Warn().Str("start", startString).Err(err).Msg("unreadable start time")
			} else {
				date = parsed
			}
		}
		loc, err := defaultPlace.Location()
		if err != nil {
			serveError(w, fmt.Errorf("bad server zone: %w", err))
			return
		}
		date = date.In(loc)

		opts, user := goodTimeOptionsFromSession(session)
		station := defaultStation
		if user != nil && user.Station != 0 {
			station = noaa.Station(user.Station)
		}

		// Fetch tide data with a day of padding so the first and last
		// strips are complete.
		query := noaa.Query{
			Start:   date.Add(-1 * day),
			End:     date.Add(forecastLength + day),
			Station: station,
		}
		preds, err := noaa.GetPredictions(r.Context(), &query)
		if err != nil {
			serveError(w, fmt.Errorf("failed to fetch from NOAA: %w", err))
			return
		}
		preds = localize(preds, loc)

		curve, err := tides.Curve(preds.Extrema(), dayImageResolution, false)
		if err != nil {
			serveError(w, fmt.Errorf("failed to build tide curve: %w", err))
			return
		}

		sunevents := sunset.GetSunEvents(date, query.End.Sub(query.Start), defaultPlace)
		// Trim the padding back off before looking for good times.
		trimmed := predictionsBefore(preds, timetricks.TrimClock(date.Add(forecastLength)))
		goodTimes := meta.GoodTimesOpts(meta.Conditions{Tides: trimmed, SunEvents: sunevents}, opts)
		tideimages := visualize.NewTidal(curve, sunevents)

		tinput := TemplateInput{
			PresentationElements: goodTimesToPresentationElements(tideimages, goodTimes),
			NextStart:            date.Add(forecastLength).Format(time.RFC3339),
			PrevStart:            date.Add(-1 * forecastLength).Format(time.RFC3339),
		}
		if user != nil {
			tinput.Name = user.Name
		}

		w.Header().Add("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		if err := indexTemplate.Execute(w, tinput); err != nil {
			log.Error().Err(err).Msg("failed to execute index template")
		}
	}
}

func localize(preds noaa.Predictions, loc *time.Location) noaa.Predictions {
	out := make(noaa.Predictions, len(preds))
	for i, p := range preds {
		p.Time = noaa.Time(time.Time(p.Time).In(loc))
		out[i] = p
	}
	return out
}

// predictionsBefore returns the prefix of preds at or before t.
func predictionsBefore(preds noaa.Predictions, t time.Time) noaa.Predictions {
	for i, p := range preds {
		if time.Time(p.Time).After(t) {
			return preds[:i]
		}
	}
	return preds
}

func imgToString(img *visualize.Tidal, t time.Time) string {
	img.SetDate(t)
	var b bytes.Buffer
	if _, err := img.Encode(&b); err != nil {
		log.Warn().Err(err).Time("date", t).Msg("failed to render tide image")
	}
	return b.String()
}

func goodTimesToPresentationElements(tideimages *visualize.Tidal, goodTimes []meta.GoodTime) []PresentationElement {
	var result []PresentationElement
	for _, gt := range goodTimes {
		gt.UpdatePrettyTime()

		if n := len(result); n != 0 && result[n-1].Date == timetricks.Day(gt.Time) {
			// There is already an entry in the result that corresponds
			// to the same day as the next time we're entering.
			result[n-1].GoodTimes = append(result[n-1].GoodTimes, gt)
			continue
		}
		result = append(result, PresentationElement{
			Date:      timetricks.Day(gt.Time),
			GoodTimes: []meta.GoodTime{gt},
			TideImage: template.HTML(imgToString(tideimages, gt.Time)),
		})
	}
	return result
}

func goodTimeOptionsFromSession(s *sessions.Session) (meta.Options, *data.User) {
	opts := meta.Options{}

	id, ok := s.Values[userID]
	if !ok {
		return opts, nil
	}

	// Note the db lookup can fail here, and that's
	// fine. We'll just use default options.
	var user data.User
	if r := db.First(&user, id); r.Error != nil {
		log.Warn().Interface("id", id).Err(r.Error).Msg("failed to find user")
		return opts, nil
	}
	if !user.LastSeen.IsZero() {
		log.Info().Uint("id", user.ID).Str("name", user.Name).
			Dur("since_last_seen", time.Since(user.LastSeen)).Msg("returning user")
	}
	user.LastSeen = time.Now()
	db.Save(&user)

	opts.LowTideThresh = user.LowTideThresh
	return opts, &user
}

func makeConfigTideParameters(redirectPrefix string, content embed.FS) http.HandlerFunc {
	configTideTemplate := template.Must(template.ParseFS(content, "static/config_tide.template.html"))

	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := store.Get(r, sessionName)

		if r.Method == "GET" {
			session.Save(r, w)
			opts, user := goodTimeOptionsFromSession(session)
			if err := configTideTemplate.Execute(w, map[string]any{
				"Options": opts,
				"User":    user,
				"Station": int(defaultStation),
			}); err != nil {
				log.Error().Err(err).Msg("failed to execute config template")
			}
			return
		}
		if r.Method != "POST" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if err := r.ParseForm(); err != nil {
			serveError(w, fmt.Errorf("failed to parse form: %w", err))
			return
		}

		var user data.User
		if id, ok := session.Values[userID].(uint); ok {
			// Read-modify-write if the user provided an ID.
			// Otherwise, one will be generated with db.Save later.
			db.First(&user, id)
		}
		if f, err := strconv.ParseFloat(r.PostForm.Get("low_tide"), 64); err == nil {
			user.LowTideThresh = &f
		} else {
			user.LowTideThresh = nil
		}
		if n, err := strconv.Atoi(r.PostForm.Get("station")); err == nil {
			user.Station = n
		}

		user.LastSeen = time.Now()
		user.Name = r.PostForm.Get("name")
		if tx := db.Save(&user); tx.Error != nil {
			serveError(w, fmt.Errorf("failed to save preferences: %w", tx.Error))
			return
		}
		session.Values[userID] = user.ID
		session.Values["name"] = user.Name
		session.Save(r, w)

		// Redirect to whatever they saw last, or the index.
		referredFrom, ok := session.Values[sessionLastViewed].(string)
		if !ok || referredFrom == "/config" {
			referredFrom = "/"
		}
		redirectTo := pathJoinPreservePrefix(redirectPrefix, referredFrom)
		http.Redirect(w, r, redirectTo, http.StatusFound)
	}
}

func serveError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("request failed")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, "%v", err)
}

func pathJoinPreservePrefix(prefix string, suffix string) string {
	trimmedPrefix := path.Join(prefix, "")
	result := path.Join(prefix, suffix)
	if result == trimmedPrefix {
		return prefix
	}
	return result
}

// getSessionKey returns a key to authenticate session cookies defined in the
// environment.
// If it is not set, it uses a compile-time default.
func getSessionKey() []byte {
	defaultKey := []byte("deadbeef")
	if key := os.Getenv("SESSION_KEY"); key != "" {
		return []byte(key)
	}
	return defaultKey
}

func getEncryptionKey() []byte {
	password := "deadbeef"
	if fromEnv := os.Getenv("ENCRYPTION_KEY"); fromEnv != "" {
		password = fromEnv
	}
	return pbkdf2.Key([]byte(password), []byte{}, 4096, 32, sha1.New)
}
