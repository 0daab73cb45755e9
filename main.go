package main

import (
	"embed"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/halfmoonbay/sunmoontide/pkg/handlers"
	"github.com/halfmoonbay/sunmoontide/pkg/metrics"
)

//go:embed static
var content embed.FS

type Config struct {
	Port   string `default:"8080"`
	Prefix string `default:"/"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal().Err(err).Msg("bad environment")
	}

	r := mux.NewRouter().StrictSlash(true)
	r.Handle("/metrics", promhttp.Handler())

	s := r.PathPrefix(env.Prefix).Subrouter()
	handlers.Register(s, env.Prefix, content)

	srv := &http.Server{
		Handler:      metrics.LatencyHandler(handlers.LogRequests(r)),
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Info().Str("addr", srv.Addr).Str("prefix", env.Prefix).Msg("listening")
	log.Fatal().Err(srv.ListenAndServe()).Msg("server exited")
}
