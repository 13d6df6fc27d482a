// README: Provider registry handlers (list, toggle, reset).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hailpad/internal/modules/registry"
)

type ProviderHandler struct {
	registry *registry.Service
}

func NewProviderHandler(svc *registry.Service) *ProviderHandler {
	return &ProviderHandler{registry: svc}
}

func (h *ProviderHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Load(c.Request.Context()))
}

func (h *ProviderHandler) ListEnabled(c *gin.Context) {
	enabled := h.registry.EnabledProviders(c.Request.Context())
	if enabled == nil {
		enabled = []registry.Provider{}
	}
	c.JSON(http.StatusOK, enabled)
}

func (h *ProviderHandler) Toggle(c *gin.Context) {
	id := c.Param("id")
	if err := h.registry.Toggle(c.Request.Context(), id); err != nil {
		writeRegistryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ProviderHandler) Reset(c *gin.Context) {
	if err := h.registry.ResetToDefaults(c.Request.Context()); err != nil {
		writeRegistryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
