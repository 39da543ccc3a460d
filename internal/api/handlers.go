package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-wizard/backend/internal/middleware"
)

// Version is reported by the health endpoint.
var Version = "dev"

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipe Wizard API is running",
		"version": Version,
	})
}

// badRequest reports a body that could not be decoded.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: err.Error(), Kind: middleware.KindInvalidRequest})
}

// chain returns the non-nil handlers in order.
func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
