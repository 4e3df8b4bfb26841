package geolib

import (
	"context"
	"net/http"
)

// HTTPClient is an interface for the client which is used to access
// remote services. Usually you want to build it with NewHTTPClient.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Geolocator is a platform capability to get precise coordinates of the
// user. This is a single-shot request, not a subscription.
//
// If platform refuses to give a position, it is recommended to return
// *GeolocationError so GeoResolver can report a code and a message.
type Geolocator interface {
	CurrentPosition(context.Context) (Position, error)
}

// Logger is an interface which is used by GeoResolver to report
// failures it swallows or propagates.
type Logger interface {
	LookupError(endpoint string, err error)
	GeolocationError(err error)
}

type noopLogger struct{}

func (noopLogger) LookupError(_ string, _ error) {}

func (noopLogger) GeolocationError(_ error) {}
