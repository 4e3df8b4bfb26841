package locators

import (
	"context"
	"fmt"
	"math"

	"github.com/9seconds/georesolver/geolib"
)

type staticLocator struct {
	position geolib.Position
}

func (s staticLocator) CurrentPosition(ctx context.Context) (geolib.Position, error) {
	select {
	case <-ctx.Done():
		return geolib.Position{}, &geolib.GeolocationError{
			Code:    geolib.GeolocationTimeout,
			Message: ctx.Err().Error(),
		}
	default:
		return s.position, nil
	}
}

// NewStatic returns a locator which always reports the same
// coordinates. This is a case of devices with fixed location or of
// users who have entered their location manually.
func NewStatic(latitude, longitude float64) (geolib.Geolocator, error) {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("incorrect latitude %v: %w", latitude, ErrCoordinatesOutOfRange)
	}

	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("incorrect longitude %v: %w", longitude, ErrCoordinatesOutOfRange)
	}

	return staticLocator{
		position: geolib.Position{
			Coords: geolib.Coordinates{
				Latitude:  latitude,
				Longitude: longitude,
			},
		},
	}, nil
}
