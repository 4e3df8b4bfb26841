package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/hjson/hjson-go"
	"github.com/spf13/afero"

	"github.com/9seconds/georesolver/geolib"
	"github.com/9seconds/georesolver/locators"
)

const (
	DefaultHTTPTimeout       = 10 * time.Second
	DefaultRateLimitInterval = 0
	DefaultRateLimitBurst    = 1
)

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	dur, err := time.ParseDuration(vv)
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	d.Duration = dur

	return nil
}

type config struct {
	UserAgent         string             `json:"user_agent"`
	HTTPTimeout       duration           `json:"http_timeout"`
	RateLimitInterval duration           `json:"rate_limit_interval"`
	RateLimitBurst    uint               `json:"rate_limit_burst"`
	GoogleAPIKey      string             `json:"google_api_key"`
	Endpoints         configEndpoints    `json:"endpoints"`
	Position          *configPosition    `json:"position"`
	GeocodeCache      configGeocodeCache `json:"geocode_cache"`
}

func (c config) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}

	return "georesolver/" + version
}

func (c config) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout.Duration == 0 {
		return DefaultHTTPTimeout
	}

	return c.HTTPTimeout.Duration
}

func (c config) GetRateLimitInterval() time.Duration {
	if c.RateLimitInterval.Duration == 0 {
		return DefaultRateLimitInterval
	}

	return c.RateLimitInterval.Duration
}

func (c config) GetRateLimitBurst() int {
	if c.RateLimitBurst == 0 {
		return DefaultRateLimitBurst
	}

	return int(c.RateLimitBurst)
}

func (c config) GetGoogleAPIKey() string {
	return c.GoogleAPIKey
}

type configEndpoints struct {
	IPEcho  string `json:"ip_echo"`
	GeoBase string `json:"geo_base"`
	Geocode string `json:"geocode"`
}

func (c configEndpoints) GetIPEcho() string {
	if c.IPEcho != "" {
		return c.IPEcho
	}

	return geolib.DefaultIPEchoURL
}

func (c configEndpoints) GetGeoBase() string {
	if c.GeoBase != "" {
		return c.GeoBase
	}

	return geolib.DefaultGeoBaseURL
}

func (c configEndpoints) GetGeocode() string {
	if c.Geocode != "" {
		return c.Geocode
	}

	return geolib.DefaultGeocodeURL
}

type configPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type configGeocodeCache struct {
	Items uint     `json:"items"`
	TTL   duration `json:"ttl"`
}

func (c configGeocodeCache) GetItems() uint {
	if c.Items == 0 {
		return geolib.DefaultGeocodeCacheItems
	}

	return c.Items
}

func (c configGeocodeCache) GetTTL() time.Duration {
	if c.TTL.Duration == 0 {
		return geolib.DefaultGeocodeCacheTTL
	}

	return c.TTL.Duration
}

// parseConfig reads a config from the given path. Empty path means
// that all defaults are used.
func parseConfig(fs afero.Fs, path string) (*config, error) {
	conf := config{}

	if path != "" {
		content, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("cannot read file: %w", err)
		}

		rawMap := map[string]interface{}{}

		if err := hjson.Unmarshal(content, &rawMap); err != nil {
			return nil, fmt.Errorf("cannot parse json: %w", err)
		}

		rawBytes, _ := json.Marshal(rawMap)

		if err := json.Unmarshal(rawBytes, &conf); err != nil {
			return nil, fmt.Errorf("incorrect config: %w", err)
		}
	}

	endpoints := map[string]string{
		"ip_echo":  conf.Endpoints.GetIPEcho(),
		"geo_base": conf.Endpoints.GetGeoBase(),
		"geocode":  conf.Endpoints.GetGeocode(),
	}

	for name, value := range endpoints {
		if err := validateEndpoint(value); err != nil {
			return nil, fmt.Errorf("incorrect %s endpoint: %w", name, err)
		}
	}

	if conf.Position != nil {
		if _, err := locators.NewStatic(conf.Position.Latitude, conf.Position.Longitude); err != nil {
			return nil, fmt.Errorf("incorrect position: %w", err)
		}
	}

	return &conf, nil
}

func validateEndpoint(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("cannot parse url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %s", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("host is empty")
	}

	return nil
}
