package locators

import "errors"

var ErrCoordinatesOutOfRange = errors.New("coordinates are out of range")
