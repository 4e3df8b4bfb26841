package geolib

import (
	"encoding/json"
	"errors"
	"strconv"
)

var (
	// ErrEmptyIP is returned if IP echo service responds with an empty
	// body.
	ErrEmptyIP = errors.New("ip address is empty")

	// ErrIPResponseTooLarge is returned if IP echo service responds
	// with something much larger than any IP address.
	ErrIPResponseTooLarge = errors.New("ip address response is too large")

	// ErrNoGeocodeResults is returned if geocoding service responds
	// without any address.
	ErrNoGeocodeResults = errors.New("no geocoding results")
)

// W3C geolocation error codes.
const (
	GeolocationPermissionDenied    = 1
	GeolocationPositionUnavailable = 2
	GeolocationTimeout             = 3
)

type jsonError struct {
	Error struct {
		Message string     `json:"message"`
		Context string     `json:"context"`
		Code    int        `json:"code,omitempty"`
		Geo     *GeoRecord `json:"geo,omitempty"`
	} `json:"error"`
}

// NetworkError is returned if remote service is not accessible: we
// cannot send a request, it responds with a bad status code or with a
// body we cannot parse.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (n *NetworkError) Unwrap() error {
	if n == nil {
		return nil
	}

	return n.Err
}

func (n *NetworkError) Error() string {
	switch {
	case n == nil:
		return ""
	case n.Err != nil:
		return "cannot access " + n.Endpoint + ": " + n.Err.Error()
	}

	return "cannot access " + n.Endpoint
}

func (n *NetworkError) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}

	value := jsonError{}
	value.Error.Message = "cannot access " + n.Endpoint

	if n.Err != nil {
		value.Error.Context = n.Err.Error()
	}

	return json.Marshal(&value)
}

// GeocodeError is returned if geocoding service has responded but
// reported an error. Geo is the best known record at this moment:
// usually it has coordinates only.
type GeocodeError struct {
	Geo     *GeoRecord
	Message string
	Err     error
}

func (g *GeocodeError) Unwrap() error {
	if g == nil {
		return nil
	}

	return g.Err
}

func (g *GeocodeError) Error() string {
	if g == nil {
		return ""
	}

	return "geocoding has failed: " + g.Message
}

func (g *GeocodeError) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("null"), nil
	}

	value := jsonError{}
	value.Error.Message = "geocoding has failed"
	value.Error.Context = g.Message
	value.Error.Geo = g.Geo

	return json.Marshal(&value)
}

// GeolocationError is returned by Geolocator if platform refuses to
// give a position.
type GeolocationError struct {
	Code    int
	Message string
}

func (g *GeolocationError) Error() string {
	switch {
	case g == nil:
		return ""
	case g.Message != "":
		return g.Message
	}

	return "geolocation has failed with code " + strconv.Itoa(g.Code)
}

func (g *GeolocationError) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("null"), nil
	}

	value := jsonError{}
	value.Error.Message = "geolocation has failed"
	value.Error.Context = g.Error()
	value.Error.Code = g.Code

	return json.Marshal(&value)
}

func geolocationErrorMessage(err error) string {
	var geoErr *GeolocationError

	if errors.As(err, &geoErr) {
		return geoErr.Error()
	}

	return err.Error()
}
