// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hailpad/internal/modules/registry"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeRegistryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, registry.ErrUnknownProvider):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, registry.ErrSaveFailed):
		writeError(c, http.StatusInternalServerError, registry.ErrSaveFailed.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
