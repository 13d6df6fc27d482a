// README: Route value objects and the dispatch validity gate.
package trip

import (
	"errors"

	"hailpad/internal/types"
)

var (
	// ErrMissingAddress means pickup or dropoff has no display address;
	// the user must fill in both fields.
	ErrMissingAddress = errors.New("pickup and dropoff addresses are required")
	// ErrMissingCoordinates means a stop has no (or only half of a)
	// coordinate pair; the user must pick an address from suggestions.
	ErrMissingCoordinates = errors.New("pickup and dropoff coordinates are required")
)

// Stop is one end of a route. Lat/Lng are pointers so a half-present pair
// coming from a misbehaving lookup is representable and rejected.
type Stop struct {
	Address string
	Lat     *float64
	Lng     *float64
	PlaceID string
}

// Point returns the stop coordinates; ok is false unless both are set.
func (s Stop) Point() (types.Point, bool) {
	if s.Lat == nil || s.Lng == nil {
		return types.Point{}, false
	}
	return types.Point{Lat: *s.Lat, Lng: *s.Lng}, true
}

// Route is a transient trip request, built fresh per dispatch attempt.
type Route struct {
	Pickup  Stop
	Dropoff Stop
}

// Validate enforces the two hard gates: both addresses non-empty and both
// coordinate pairs fully present. PlaceID is never required.
func (r Route) Validate() error {
	if r.Pickup.Address == "" || r.Dropoff.Address == "" {
		return ErrMissingAddress
	}
	if _, ok := r.Pickup.Point(); !ok {
		return ErrMissingCoordinates
	}
	if _, ok := r.Dropoff.Point(); !ok {
		return ErrMissingCoordinates
	}
	return nil
}
