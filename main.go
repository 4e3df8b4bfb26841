package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/9seconds/georesolver/geolib"
)

var version = "0.0.1"

var (
	app = kingpin.New(
		"georesolver",
		"Find out where you are: public IP address, coarse and precise location.")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("GEORESOLVER_DEBUG").
		Bool()
	configPath = app.Flag("config", "Path to the config.").
			Short('c').
			Envar("GEORESOLVER_CONFIG").
			String()

	ipCommand = app.Command("ip", "Show public IP address.")

	geoCommand = app.Command("geo", "Show location based on IP address.")

	userCommand = app.Command("user",
		"Show precise location. Falls back to location based on IP address.")
	userAPIKey = userCommand.Flag("api-key", "Google Geocoding API key.").
			Envar("GEORESOLVER_GOOGLE_API_KEY").
			String()
	userPosition = userCommand.Flag("position", "Coordinates in latitude,longitude format.").
			Short('p').
			String()
)

func init() {
	app.Version(version)
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	conf, err := parseConfig(afero.NewOsFs(), *configPath)
	if err != nil {
		app.Fatalf("cannot parse config: %v", err)
	}

	locator, err := makeLocator(conf, *userPosition)
	if err != nil {
		app.Fatalf("cannot make a locator: %v", err)
	}

	ctx, cancel := makeRootContext()
	defer cancel()

	log := newLogger(os.Stderr)
	cache := geolib.NewGeocodeCache(conf.GeocodeCache.GetItems(), conf.GeocodeCache.GetTTL())

	defer cache.Close()

	resolver := makeResolver(conf, locator, log, cache)

	var result interface{}

	switch command {
	case ipCommand.FullCommand():
		var ip string

		ip, err = resolver.GetIP(ctx)
		result = struct {
			IP string `json:"ip"`
		}{
			IP: ip,
		}
	case geoCommand.FullCommand():
		result, err = resolver.GetGeoFromIP(ctx)
	case userCommand.FullCommand():
		apiKey := *userAPIKey
		if apiKey == "" {
			apiKey = conf.GetGoogleAPIKey()
		}

		result, err = resolver.RequestAndSetGeoFromUser(ctx, apiKey)
	}

	log.Resolved(command, resolver.State(), resolver.Stats())

	if err == nil {
		err = encodeJSON(os.Stdout, result)
	}

	if err != nil {
		encodeError(os.Stdout, err)
		cancel()
		cache.Close()
		os.Exit(1) // nolint: gocritic
	}
}
