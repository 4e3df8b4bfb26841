package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/9seconds/georesolver/geolib"
	"github.com/9seconds/georesolver/locators"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func makeHTTPClient(conf *config) geolib.HTTPClient {
	httpClient := &http.Client{
		Timeout: conf.GetHTTPTimeout(),
	}

	return geolib.NewHTTPClient(httpClient,
		conf.GetUserAgent(),
		conf.GetRateLimitInterval(),
		conf.GetRateLimitBurst())
}

// makeLocator builds a locator from command line position or from the
// config. Command line wins. If position is unknown, user 'denies'
// geolocation.
func makeLocator(conf *config, position string) (geolib.Geolocator, error) {
	if position != "" {
		latitude, longitude, err := parsePosition(position)
		if err != nil {
			return nil, err
		}

		return locators.NewStatic(latitude, longitude)
	}

	if conf.Position != nil {
		return locators.NewStatic(conf.Position.Latitude, conf.Position.Longitude)
	}

	return locators.NewDenied("position is not configured"), nil
}

func makeResolver(conf *config,
	locator geolib.Geolocator,
	log geolib.Logger,
	cache *geolib.GeocodeCache) *geolib.GeoResolver {
	return geolib.NewGeoResolver(makeHTTPClient(conf),
		locator,
		geolib.WithLogger(log),
		geolib.WithIPEchoURL(conf.Endpoints.GetIPEcho()),
		geolib.WithGeoBaseURL(conf.Endpoints.GetGeoBase()),
		geolib.WithGeocodeURL(conf.Endpoints.GetGeocode()),
		geolib.WithGeocodeCache(cache))
}

// parsePosition parses coordinates in 'latitude,longitude' format.
func parsePosition(value string) (float64, float64, error) {
	chunks := strings.Split(value, ",")
	if len(chunks) != 2 {
		return 0, 0, fmt.Errorf("position should be in latitude,longitude format: %s", value)
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(chunks[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("incorrect latitude: %w", err)
	}

	longitude, err := strconv.ParseFloat(strings.TrimSpace(chunks[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("incorrect longitude: %w", err)
	}

	return latitude, longitude, nil
}

// encodeJSON writes nothing if data cannot be encoded.
func encodeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)

	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("cannot encode json: %w", err)
	}

	return nil
}

func encodeError(w io.Writer, err error) {
	if marshaler, ok := err.(json.Marshaler); ok {
		if encodeJSON(w, marshaler) == nil {
			return
		}
	}

	value := struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}{}
	value.Error.Message = err.Error()

	encodeJSON(w, value) // nolint: errcheck
}
