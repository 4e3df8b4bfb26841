package locators

import (
	"context"

	"github.com/9seconds/georesolver/geolib"
)

// Func is an adapter to use ordinary functions as geolib.Geolocator.
type Func func(context.Context) (geolib.Position, error)

func (f Func) CurrentPosition(ctx context.Context) (geolib.Position, error) {
	return f(ctx)
}
