// README: Places lookup handlers (autocomplete, details, reverse geocode).
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hailpad/internal/maps"
	"hailpad/internal/types"
)

type PlacesHandler struct {
	places *maps.PlacesService
}

func NewPlacesHandler(svc *maps.PlacesService) *PlacesHandler {
	return &PlacesHandler{places: svc}
}

type suggestionResp struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	input := c.Query("input")
	if input == "" {
		writeError(c, http.StatusBadRequest, "input is required")
		return
	}

	var bias *maps.Bias
	if lat, lng, ok := latLngParams(c); ok {
		radius := uint(50000)
		if r, err := strconv.ParseUint(c.Query("radius"), 10, 32); err == nil && r > 0 {
			radius = uint(r)
		}
		bias = &maps.Bias{Location: types.Point{Lat: lat, Lng: lng}, RadiusMeters: radius}
	}

	suggestions, err := h.places.Autocomplete(c.Request.Context(), input, bias)
	if err != nil {
		writeError(c, http.StatusBadGateway, "address lookup failed")
		return
	}
	out := make([]suggestionResp, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, suggestionResp{
			PlaceID:       s.PlaceID,
			Description:   s.Description,
			MainText:      s.MainText,
			SecondaryText: s.SecondaryText,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *PlacesHandler) Details(c *gin.Context) {
	placeID := c.Query("place_id")
	if placeID == "" {
		writeError(c, http.StatusBadRequest, "place_id is required")
		return
	}
	resolved, err := h.places.Details(c.Request.Context(), placeID)
	if err != nil {
		writeError(c, http.StatusBadGateway, "place lookup failed")
		return
	}
	// Coordinates are both present or the lookup failed; never partial.
	c.JSON(http.StatusOK, gin.H{
		"formatted_address": resolved.FormattedAddress,
		"lat":               resolved.Location.Lat,
		"lng":               resolved.Location.Lng,
	})
}

func (h *PlacesHandler) Reverse(c *gin.Context) {
	lat, lng, ok := latLngParams(c)
	if !ok {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	address, err := h.places.ReverseGeocode(c.Request.Context(), types.Point{Lat: lat, Lng: lng})
	if err != nil {
		writeError(c, http.StatusBadGateway, "reverse geocode failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address, "lat": lat, "lng": lng})
}

func latLngParams(c *gin.Context) (float64, float64, bool) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
