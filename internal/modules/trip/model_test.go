// README: Route validity gate tests.
package trip

import (
	"errors"
	"testing"
)

func f(v float64) *float64 { return &v }

func validRoute() Route {
	return Route{
		Pickup:  Stop{Address: "Rua Senador Vergueiro 218, Rio de Janeiro", Lat: f(-22.9068), Lng: f(-43.1729)},
		Dropoff: Stop{Address: "Rua do Catete 214, Rio de Janeiro", Lat: f(-22.9249), Lng: f(-43.1777)},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Route)
		want   error
	}{
		{"valid", func(r *Route) {}, nil},
		{"empty pickup address", func(r *Route) { r.Pickup.Address = "" }, ErrMissingAddress},
		{"empty dropoff address", func(r *Route) { r.Dropoff.Address = "" }, ErrMissingAddress},
		{"pickup missing both coordinates", func(r *Route) { r.Pickup.Lat, r.Pickup.Lng = nil, nil }, ErrMissingCoordinates},
		{"dropoff missing both coordinates", func(r *Route) { r.Dropoff.Lat, r.Dropoff.Lng = nil, nil }, ErrMissingCoordinates},
		{"pickup half pair", func(r *Route) { r.Pickup.Lng = nil }, ErrMissingCoordinates},
		{"dropoff half pair", func(r *Route) { r.Dropoff.Lat = nil }, ErrMissingCoordinates},
		{"address gate checked before coordinates", func(r *Route) {
			r.Pickup.Address = ""
			r.Dropoff.Lat = nil
		}, ErrMissingAddress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRoute()
			tc.mutate(&r)
			if err := r.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestStopPoint(t *testing.T) {
	s := Stop{Address: "x", Lat: f(1.5), Lng: f(-2.5)}
	p, ok := s.Point()
	if !ok || p.Lat != 1.5 || p.Lng != -2.5 {
		t.Errorf("Point() = %v, %v", p, ok)
	}

	s.Lng = nil
	if _, ok := s.Point(); ok {
		t.Error("half pair reported as present")
	}
}

func TestPlaceIDNotRequired(t *testing.T) {
	r := validRoute()
	r.Pickup.PlaceID = ""
	r.Dropoff.PlaceID = ""
	if err := r.Validate(); err != nil {
		t.Errorf("route without place ids should be valid, got %v", err)
	}
}
