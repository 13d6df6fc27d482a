// README: Dispatch handler; runs one launch attempt and returns the outcome.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hailpad/internal/modules/dispatch"
	"hailpad/internal/modules/registry"
	"hailpad/internal/modules/trip"
)

// Opener abstracts the launch orchestrator for testability.
type Opener interface {
	Open(ctx context.Context, p registry.Provider, r trip.Route) dispatch.Outcome
}

type DispatchHandler struct {
	registry *registry.Service
	opener   Opener
}

func NewDispatchHandler(reg *registry.Service, opener Opener) *DispatchHandler {
	return &DispatchHandler{registry: reg, opener: opener}
}

type stopReq struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	PlaceID string   `json:"place_id"`
}

type dispatchReq struct {
	Pickup  stopReq `json:"pickup"`
	Dropoff stopReq `json:"dropoff"`
}

type dispatchResp struct {
	Outcome  dispatch.OutcomeKind `json:"outcome"`
	OpenURL  string               `json:"open_url,omitempty"`
	StoreURL string               `json:"store_url,omitempty"`
	Message  string               `json:"message"`
}

func (h *DispatchHandler) Open(c *gin.Context) {
	provider, err := h.registry.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRegistryError(c, err)
		return
	}

	var req dispatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	route := trip.Route{
		Pickup:  trip.Stop{Address: req.Pickup.Address, Lat: req.Pickup.Lat, Lng: req.Pickup.Lng, PlaceID: req.Pickup.PlaceID},
		Dropoff: trip.Stop{Address: req.Dropoff.Address, Lat: req.Dropoff.Lat, Lng: req.Dropoff.Lng, PlaceID: req.Dropoff.PlaceID},
	}

	out := h.opener.Open(c.Request.Context(), provider, route)

	// A dispatch attempt always resolves to a renderable outcome; the HTTP
	// status stays 200 and the client branches on the outcome kind.
	c.JSON(http.StatusOK, dispatchResp{
		Outcome:  out.Kind,
		OpenURL:  out.URI,
		StoreURL: out.StoreURL,
		Message:  out.Message,
	})
}
