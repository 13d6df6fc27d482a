// README: Google Places wrapper: autocomplete, place details, reverse geocoding.
package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"hailpad/internal/types"
)

// Network calls carry explicit timeouts so a stalled lookup can never hang
// the UI indefinitely.
const (
	lookupTimeout  = 10 * time.Second
	reverseTimeout = 25 * time.Second
)

// Suggestion is one ranked autocomplete result.
type Suggestion struct {
	PlaceID       string
	Description   string
	MainText      string
	SecondaryText string
}

// Resolved is the outcome of a place-details lookup; coordinates are always
// fully present (both lat and lng), never partial.
type Resolved struct {
	FormattedAddress string
	Location         types.Point
}

// Bias narrows autocomplete results around a point.
type Bias struct {
	Location     types.Point
	RadiusMeters uint
}

// PlacesService handles interactions with the Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// Autocomplete returns ranked suggestions for a partial address, optionally
// biased around a location. bias can be nil.
func (s *PlacesService) Autocomplete(ctx context.Context, input string, bias *Bias) ([]Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	r := &maps.PlaceAutocompleteRequest{Input: input}
	if bias != nil {
		r.Location = &maps.LatLng{Lat: bias.Location.Lat, Lng: bias.Location.Lng}
		r.Radius = bias.RadiusMeters
	}

	resp, err := s.client.PlaceAutocomplete(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places autocomplete error: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		suggestions = append(suggestions, Suggestion{
			PlaceID:       p.PlaceID,
			Description:   p.Description,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return suggestions, nil
}

// Details resolves a place id to its formatted address and coordinates.
func (s *PlacesService) Details(ctx context.Context, placeID string) (Resolved, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	r := &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskFormattedAddress,
			maps.PlaceDetailsFieldMaskGeometry,
		},
	}
	resp, err := s.client.PlaceDetails(ctx, r)
	if err != nil {
		return Resolved{}, fmt.Errorf("place details error: %w", err)
	}
	return Resolved{
		FormattedAddress: resp.FormattedAddress,
		Location: types.Point{
			Lat: resp.Geometry.Location.Lat,
			Lng: resp.Geometry.Location.Lng,
		},
	}, nil
}

// ReverseGeocode returns the best display address for a point. It never
// fails into an empty string: with no usable result the raw "lat, lng"
// rendering is returned so the pickup field is always populated.
func (s *PlacesService) ReverseGeocode(ctx context.Context, p types.Point) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, reverseTimeout)
	defer cancel()

	resp, err := s.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: p.Lat, Lng: p.Lng},
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode error: %w", err)
	}
	return bestAddress(resp, p), nil
}

// bestAddress picks the most precise result: a street-number component with
// rooftop precision wins, then range-interpolated, then the first result,
// then the raw coordinates.
func bestAddress(results []maps.GeocodingResult, p types.Point) string {
	for _, r := range results {
		if hasStreetNumber(r) && r.Geometry.LocationType == "ROOFTOP" {
			return r.FormattedAddress
		}
	}
	for _, r := range results {
		if hasStreetNumber(r) && r.Geometry.LocationType == "RANGE_INTERPOLATED" {
			return r.FormattedAddress
		}
	}
	if len(results) > 0 {
		return results[0].FormattedAddress
	}
	return p.String()
}

func hasStreetNumber(r maps.GeocodingResult) bool {
	for _, c := range r.AddressComponents {
		for _, t := range c.Types {
			if t == "street_number" {
				return true
			}
		}
	}
	return false
}
