package dashboard

import (
	"context"
	"errors"
)

// ErrNoPosition is returned by a Locator that cannot supply a reading.
var ErrNoPosition = errors.New("device position unavailable")

// Locator is the device geolocation capability: a one-shot reading.
type Locator interface {
	Locate(ctx context.Context) (latitude, longitude float64, err error)
}

type LocatorFunc func(ctx context.Context) (float64, float64, error)

func (f LocatorFunc) Locate(ctx context.Context) (float64, float64, error) {
	return f(ctx)
}

// Fixed always reports the same position.
func Fixed(latitude, longitude float64) Locator {
	return LocatorFunc(func(context.Context) (float64, float64, error) {
		return latitude, longitude, nil
	})
}

// Unavailable never has a position.
var Unavailable Locator = LocatorFunc(func(context.Context) (float64, float64, error) {
	return 0, 0, ErrNoPosition
})
