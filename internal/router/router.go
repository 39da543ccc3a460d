package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/recipe-wizard/backend/internal/api"
	"github.com/pageza/recipe-wizard/backend/internal/logger"
	"github.com/pageza/recipe-wizard/backend/internal/middleware"
)

// Handlers groups the API handlers mounted under /api/v1.
type Handlers struct {
	Recipe      *api.RecipeHandler
	Wizard      *api.WizardHandler
	Preferences *api.PreferencesHandler
}

// SetupRouter configures the application routes
func SetupRouter(log zerolog.Logger, allowedOrigins []string, h Handlers) *gin.Engine {
	router := gin.New()

	router.Use(logger.GinMiddleware(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", api.HealthCheck)

	v1 := router.Group("/api/v1")
	h.Recipe.RegisterRoutes(v1)
	h.Wizard.RegisterRoutes(v1)
	h.Preferences.RegisterRoutes(v1)

	return router
}
