package geolib

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

const (
	// DefaultIPEchoURL is an URL of the service which responds with an
	// IP address of the caller in plain text.
	DefaultIPEchoURL = "https://api.ipify.org"

	// DefaultGeoBaseURL is a base URL of IP geolocation service. If you
	// append IP address to this URL, service resolves this address.
	// Otherwise, it resolves an address of the caller.
	DefaultGeoBaseURL = "https://freegeoip.net/json/"

	// DefaultGeocodeURL is an URL of Google Geocoding API.
	DefaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

	// textual IPv6 is 45 bytes at most, the rest is for whitespace.
	maxIPResponseSize = 256
)

// Option customizes GeoResolver.
type Option func(*GeoResolver)

// WithLogger sets a logger. By default GeoResolver logs nothing.
func WithLogger(logger Logger) Option {
	return func(r *GeoResolver) {
		r.logger = logger
	}
}

// WithIPEchoURL overrides DefaultIPEchoURL.
func WithIPEchoURL(endpoint string) Option {
	return func(r *GeoResolver) {
		r.ipEchoURL = endpoint
	}
}

// WithGeoBaseURL overrides DefaultGeoBaseURL. This URL has to be ready
// to concatenate with IP address.
func WithGeoBaseURL(endpoint string) Option {
	return func(r *GeoResolver) {
		r.geoBaseURL = endpoint
	}
}

// WithGeocodeURL overrides DefaultGeocodeURL.
func WithGeocodeURL(endpoint string) Option {
	return func(r *GeoResolver) {
		r.geocodeURL = endpoint
	}
}

// WithGeocodeCache sets a cache for reverse geocoding responses.
func WithGeocodeCache(cache *GeocodeCache) Option {
	return func(r *GeoResolver) {
		r.cache = cache
	}
}

// GeoResolver resolves IP address and location of the user. It caches
// everything it has resolved so each piece of data is requested only
// once.
//
// All methods are safe for concurrent use but concurrent calls are not
// coordinated: if you call GetIP twice before the first call is
// finished, 2 requests are sent and the last one wins.
type GeoResolver struct {
	client  HTTPClient
	locator Geolocator
	logger  Logger
	cache   *GeocodeCache

	ipEchoURL  string
	geoBaseURL string
	geocodeURL string

	ipEchoStats  *UsageStats
	geoIPStats   *UsageStats
	geocodeStats *UsageStats

	mutex sync.Mutex
	state ResolverState
}

// GetIP returns a public IP address of the user.
func (r *GeoResolver) GetIP(ctx context.Context) (string, error) {
	r.mutex.Lock()
	ip := r.state.IP()
	r.mutex.Unlock()

	if ip != "" {
		r.ipEchoStats.Cached()

		return ip, nil
	}

	ip, err := r.fetchIP(ctx)
	r.ipEchoStats.Used(err)

	if err != nil {
		return "", err
	}

	r.mutex.Lock()
	r.state.SetIP(ip)
	r.state.SetGeoWithIPURL(r.geoBaseURL + ip)
	r.mutex.Unlock()

	return ip, nil
}

// GetGeoFromIP returns a location of the user. If any location is known
// already, it is returned as is, regardless of its source. Otherwise,
// location is resolved by IP address.
//
// If IP address is unknown yet, it is taken from the response of IP
// geolocation service. A known IP address is never replaced.
func (r *GeoResolver) GetGeoFromIP(ctx context.Context) (*GeoRecord, error) {
	r.mutex.Lock()
	geo := r.state.Geo()
	ip := r.state.IP()
	geoWithIPURL := r.state.GeoWithIPURL()
	r.mutex.Unlock()

	if geo != nil {
		r.geoIPStats.Cached()

		return geo, nil
	}

	geoURL := geoWithIPURL
	if geoURL == "" {
		geoURL = r.geoBaseURL + ip
	}

	jsonResponse, err := r.fetchGeo(ctx, geoURL)
	r.geoIPStats.Used(err)

	if err != nil {
		return nil, err
	}

	geo = jsonResponse.GeoRecord()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	switch {
	case r.state.IP() != "":
		if r.state.GeoWithIPURL() == "" {
			r.state.SetGeoWithIPURL(r.geoBaseURL + r.state.IP())
		}
	case jsonResponse.IP != "":
		r.state.SetIP(jsonResponse.IP)
		r.state.SetGeoWithIPURL(r.geoBaseURL + jsonResponse.IP)
	}

	r.state.SetGeo(geo, GeoSourceIP)

	return geo, nil
}

// RequestAndSetGeoFromUser asks platform for a precise location of the
// user. If apiKey is not empty, coordinates are reverse-geocoded into
// an address.
//
// If platform refuses to give a position, this method falls back to
// GetGeoFromIP and returns its result with a reason of refusal. This is
// not an error: error is returned only if there is no location at all
// or geocoding has failed.
func (r *GeoResolver) RequestAndSetGeoFromUser(ctx context.Context, apiKey string) (UserGeoResult, error) {
	r.mutex.Lock()
	geo := r.state.Geo()
	source := r.state.GeoSource()
	r.mutex.Unlock()

	if geo != nil && source == GeoSourceUser {
		return UserGeoResult{Geo: geo}, nil
	}

	position, err := r.currentPosition(ctx)
	if err != nil {
		r.logger.GeolocationError(err)

		ipGeo, ipErr := r.GetGeoFromIP(ctx)
		if ipErr != nil {
			return UserGeoResult{}, ipErr
		}

		return UserGeoResult{
			Geo:   ipGeo,
			Error: geolocationErrorMessage(err),
		}, nil
	}

	geo = newCoordinatesRecord(position.Coords)

	r.mutex.Lock()
	r.state.SetGeo(geo, GeoSourceUser)
	r.mutex.Unlock()

	if apiKey == "" {
		return UserGeoResult{Geo: geo}, nil
	}

	geo, err = r.ReverseGeocodeBasedOnCoords(ctx, position.Coords, apiKey)
	if err != nil {
		return UserGeoResult{}, err
	}

	return UserGeoResult{Geo: geo}, nil
}

// Stats returns usage statistics of remote services: IP echo service,
// IP geolocation service and geocoding service, in this order.
func (r *GeoResolver) Stats() []*UsageStats {
	return []*UsageStats{r.ipEchoStats, r.geoIPStats, r.geocodeStats}
}

// State returns a snapshot of the current state.
func (r *GeoResolver) State() ResolverState {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.state
}

// Restore replaces a state of the resolver. This is useful if you
// already know something about the user, an IP address for example.
func (r *GeoResolver) Restore(state ResolverState) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.state = state
}

// Reset forgets everything resolved so far.
func (r *GeoResolver) Reset() {
	r.Restore(ResolverState{})
}

func (r *GeoResolver) fetchIP(ctx context.Context) (string, error) {
	resp, err := r.request(ctx, r.ipEchoURL, r.ipEchoURL, "text/plain")
	if err != nil {
		return "", err
	}

	defer flushResponse(resp.Body)

	body, err := ioutil.ReadAll(io.LimitReader(bufio.NewReader(resp.Body), maxIPResponseSize+1))
	if err != nil {
		return "", r.networkError(r.ipEchoURL, fmt.Errorf("cannot read a response: %w", err))
	}

	if len(body) > maxIPResponseSize {
		return "", r.networkError(r.ipEchoURL, ErrIPResponseTooLarge)
	}

	ip := strings.TrimSpace(string(body))
	if ip == "" {
		return "", r.networkError(r.ipEchoURL, ErrEmptyIP)
	}

	return ip, nil
}

func (r *GeoResolver) fetchGeo(ctx context.Context, geoURL string) (freegeoipResponse, error) {
	jsonResponse := freegeoipResponse{}

	resp, err := r.request(ctx, geoURL, geoURL, "application/json")
	if err != nil {
		return jsonResponse, err
	}

	defer flushResponse(resp.Body)

	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&jsonResponse); err != nil {
		return jsonResponse, r.networkError(geoURL, fmt.Errorf("cannot parse a response: %w", err))
	}

	return jsonResponse, nil
}

func (r *GeoResolver) currentPosition(ctx context.Context) (Position, error) {
	if r.locator == nil {
		return Position{}, &GeolocationError{
			Code:    GeolocationPositionUnavailable,
			Message: "geolocation is not supported",
		}
	}

	return r.locator.CurrentPosition(ctx)
}

// request sends GET request to target. endpoint is a name of the service
// which is safe to put into logs and errors: it has no secrets.
func (r *GeoResolver) request(ctx context.Context, target, endpoint, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, r.networkError(endpoint, fmt.Errorf("cannot build a request: %w", err))
	}

	req.Header.Set("Accept", accept)

	resp, err := r.client.Do(req)
	if err != nil {
		var urlErr *url.Error

		if errors.As(err, &urlErr) {
			urlErr.URL = endpoint
		}

		return nil, r.networkError(endpoint, fmt.Errorf("cannot send a request: %w", err))
	}

	return resp, nil
}

func (r *GeoResolver) networkError(endpoint string, err error) error {
	r.logger.LookupError(endpoint, err)

	return &NetworkError{
		Endpoint: endpoint,
		Err:      err,
	}
}

// NewGeoResolver creates a new resolver with an empty state. locator
// could be nil: it means that platform has no geolocation capability
// at all.
func NewGeoResolver(client HTTPClient, locator Geolocator, opts ...Option) *GeoResolver {
	rv := &GeoResolver{
		client:     client,
		locator:    locator,
		logger:     noopLogger{},
		ipEchoURL:  DefaultIPEchoURL,
		geoBaseURL: DefaultGeoBaseURL,
		geocodeURL: DefaultGeocodeURL,

		ipEchoStats:  &UsageStats{Name: ServiceIPEcho},
		geoIPStats:   &UsageStats{Name: ServiceGeoIP},
		geocodeStats: &UsageStats{Name: ServiceGeocode},
	}

	for _, opt := range opts {
		opt(rv)
	}

	if rv.logger == nil {
		rv.logger = noopLogger{}
	}

	return rv
}
