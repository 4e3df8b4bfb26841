package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/9seconds/georesolver/geolib"
)

type logger struct {
	lookupLog      zerolog.Logger
	geolocationLog zerolog.Logger
	resolveLog     zerolog.Logger
}

func (l *logger) LookupError(endpoint string, err error) {
	l.lookupLog.Error().Str("endpoint", endpoint).Err(err).Msg("")
}

func (l *logger) GeolocationError(err error) {
	l.geolocationLog.Warn().Err(err).Msg("Fall back to IP-based location")
}

func (l *logger) Resolved(command string, state geolib.ResolverState, stats []*geolib.UsageStats) {
	l.resolveLog.Debug().
		Str("command", command).
		Str("ip", state.IP()).
		Str("geo_source", string(state.GeoSource())).
		Interface("stats", stats).
		Msg("State was resolved")
}

func newLogger(w io.Writer) *logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if w == nil {
		w = os.Stderr
	}

	return &logger{
		lookupLog:      zerolog.New(w).With().Timestamp().Stack().Str("event_name", "lookup").Logger(),
		geolocationLog: zerolog.New(w).With().Timestamp().Str("event_name", "geolocation").Logger(),
		resolveLog:     zerolog.New(w).With().Timestamp().Str("event_name", "resolve").Logger(),
	}
}
