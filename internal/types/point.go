// README: Common geographic point value object used across modules.
package types

import "strconv"

type Point struct {
	Lat float64
	Lng float64
}

// String renders the point as a "lat, lng" display string, used as the
// last-resort address when reverse geocoding returns nothing.
func (p Point) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + ", " + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
