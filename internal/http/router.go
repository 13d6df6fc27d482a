// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"

	"hailpad/internal/http/handlers"
	"hailpad/internal/http/middleware"
	"hailpad/internal/maps"
	"hailpad/internal/modules/registry"
)

func NewRouter(
	registrySvc *registry.Service,
	opener handlers.Opener,
	placesSvc *maps.PlacesService,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery(), middleware.Auth())

	providerHandler := handlers.NewProviderHandler(registrySvc)
	r.GET("/api/providers", providerHandler.List)
	r.GET("/api/providers/enabled", providerHandler.ListEnabled)
	r.POST("/api/providers/:id/toggle", providerHandler.Toggle)
	r.POST("/api/providers/reset", providerHandler.Reset)

	dispatchHandler := handlers.NewDispatchHandler(registrySvc, opener)
	r.POST("/api/dispatch/:id", dispatchHandler.Open)

	placesHandler := handlers.NewPlacesHandler(placesSvc)
	r.GET("/api/places/autocomplete", placesHandler.Autocomplete)
	r.GET("/api/places/details", placesHandler.Details)
	r.GET("/api/places/reverse", placesHandler.Reverse)

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	return r
}
