// README: Deep-link construction; one formatting function per provider, dispatched by id.
package deeplink

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"hailpad/internal/modules/registry"
	"hailpad/internal/modules/trip"
	"hailpad/internal/types"
)

var (
	// ErrNoBuilder is the invalid-URI sentinel: the provider id has no
	// formatting function. Callers must treat this as a dispatch failure.
	ErrNoBuilder = errors.New("no deep link builder for provider")
	// ErrMissingCoordinates is returned when a provider needs numeric
	// coordinates and the route does not carry a full pair.
	ErrMissingCoordinates = errors.New("provider deep link requires coordinates")
)

type buildFunc func(p registry.Provider, r trip.Route, pickup, dropoff types.Point) string

// builders is the closed set of provider contracts. Each provider has its
// own parameter names and encoding; there is no shared schema, so this is a
// lookup table rather than a template.
var builders = map[string]struct {
	needsCoords  bool
	carriesRoute bool
	build        buildFunc
}{
	"uber":     {needsCoords: true, carriesRoute: true, build: buildUber},
	"99":       {needsCoords: true, carriesRoute: true, build: build99},
	"cabify":   {needsCoords: true, carriesRoute: true, build: buildCabify},
	"bolt":     {needsCoords: true, carriesRoute: true, build: buildBolt},
	"taxirio":  {needsCoords: false, carriesRoute: true, build: buildTaxiRio},
	"indriver": {needsCoords: false, carriesRoute: false, build: buildBareScheme},
}

// Build maps (provider, route) to the provider's launch URI. It is pure:
// same inputs always produce the same string.
func Build(p registry.Provider, r trip.Route) (string, error) {
	b, ok := builders[p.ID]
	if !ok {
		return "", ErrNoBuilder
	}
	pickup, pickupOK := r.Pickup.Point()
	dropoff, dropoffOK := r.Dropoff.Point()
	if b.needsCoords && (!pickupOK || !dropoffOK) {
		return "", ErrMissingCoordinates
	}
	return b.build(p, r, pickup, dropoff), nil
}

// CarriesRoute reports whether the provider's deep link pre-fills the route.
// Providers that only support a bare app open (inDrive) return false; the
// user is told to enter the addresses manually after launch.
func CarriesRoute(providerID string) bool {
	b, ok := builders[providerID]
	return ok && b.carriesRoute
}

// WebFallback returns the https equivalent for providers that expose a web
// interface. Only Uber has one today.
func WebFallback(p registry.Provider, r trip.Route) (string, bool) {
	if p.ID != "uber" {
		return "", false
	}
	pickup, pickupOK := r.Pickup.Point()
	dropoff, dropoffOK := r.Dropoff.Point()
	if !pickupOK || !dropoffOK {
		return "", false
	}
	return "https://m.uber.com/ul/?" + uberQuery(r, pickup, dropoff), true
}

// Uber uses bracketed parameter names; brackets stay literal, values are
// percent-encoded.
func buildUber(p registry.Provider, r trip.Route, pickup, dropoff types.Point) string {
	return p.DeepLinkScheme + "://?" + uberQuery(r, pickup, dropoff)
}

func uberQuery(r trip.Route, pickup, dropoff types.Point) string {
	var q strings.Builder
	q.WriteString("action=setPickup")
	q.WriteString("&pickup[latitude]=" + coord(pickup.Lat))
	q.WriteString("&pickup[longitude]=" + coord(pickup.Lng))
	q.WriteString("&pickup[formatted_address]=" + url.QueryEscape(r.Pickup.Address))
	q.WriteString("&dropoff[latitude]=" + coord(dropoff.Lat))
	q.WriteString("&dropoff[longitude]=" + coord(dropoff.Lng))
	q.WriteString("&dropoff[formatted_address]=" + url.QueryEscape(r.Dropoff.Address))
	return q.String()
}

// 99 uses flat snake_case query parameters.
func build99(p registry.Provider, r trip.Route, pickup, dropoff types.Point) string {
	var q strings.Builder
	q.WriteString(p.DeepLinkScheme + "://call?")
	q.WriteString("pickup_latitude=" + coord(pickup.Lat))
	q.WriteString("&pickup_longitude=" + coord(pickup.Lng))
	q.WriteString("&pickup_title=" + url.QueryEscape(r.Pickup.Address))
	q.WriteString("&dropoff_latitude=" + coord(dropoff.Lat))
	q.WriteString("&dropoff_longitude=" + coord(dropoff.Lng))
	q.WriteString("&dropoff_title=" + url.QueryEscape(r.Dropoff.Address))
	return q.String()
}

// Cabify takes the whole journey as one JSON parameter.
func buildCabify(p registry.Provider, r trip.Route, pickup, dropoff types.Point) string {
	type stop struct {
		Lat     float64 `json:"lat"`
		Lng     float64 `json:"lng"`
		Address string  `json:"address"`
	}
	payload, _ := json.Marshal(struct {
		Pickup  stop `json:"pickup"`
		Dropoff stop `json:"dropoff"`
	}{
		Pickup:  stop{Lat: pickup.Lat, Lng: pickup.Lng, Address: r.Pickup.Address},
		Dropoff: stop{Lat: dropoff.Lat, Lng: dropoff.Lng, Address: r.Dropoff.Address},
	})
	return p.DeepLinkScheme + "://cabify/journey?json=" + url.QueryEscape(string(payload))
}

func buildBolt(p registry.Provider, r trip.Route, pickup, dropoff types.Point) string {
	var q strings.Builder
	q.WriteString(p.DeepLinkScheme + "://action/bookARide?")
	q.WriteString("pickup_lat=" + coord(pickup.Lat))
	q.WriteString("&pickup_lng=" + coord(pickup.Lng))
	q.WriteString("&pickup_title=" + url.QueryEscape(r.Pickup.Address))
	q.WriteString("&destination_lat=" + coord(dropoff.Lat))
	q.WriteString("&destination_lng=" + coord(dropoff.Lng))
	q.WriteString("&destination_title=" + url.QueryEscape(r.Dropoff.Address))
	return q.String()
}

// Taxi.Rio pre-fills from addresses only; it geocodes on its own side.
func buildTaxiRio(p registry.Provider, r trip.Route, _, _ types.Point) string {
	return p.DeepLinkScheme + "://ride?pickup=" + url.QueryEscape(r.Pickup.Address) +
		"&dropoff=" + url.QueryEscape(r.Dropoff.Address)
}

// inDrive has no route-carrying contract at all: open the app, the user
// types the addresses. Intentional, not a bug.
func buildBareScheme(p registry.Provider, _ trip.Route, _, _ types.Point) string {
	return p.DeepLinkScheme + "://"
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
