package locators

import (
	"context"

	"github.com/9seconds/georesolver/geolib"
)

const DefaultDeniedMessage = "User denied Geolocation"

type deniedLocator struct {
	message string
}

func (d deniedLocator) CurrentPosition(_ context.Context) (geolib.Position, error) {
	return geolib.Position{}, &geolib.GeolocationError{
		Code:    geolib.GeolocationPermissionDenied,
		Message: d.message,
	}
}

// NewDenied returns a locator which always refuses to give a position.
func NewDenied(message string) geolib.Geolocator {
	if message == "" {
		message = DefaultDeniedMessage
	}

	return deniedLocator{
		message: message,
	}
}
