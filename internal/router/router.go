package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pageza/alchemorsel-recipes/backend/internal/api"
	"github.com/pageza/alchemorsel-recipes/backend/internal/middleware"
)

// Deps are the collaborators the routes are built from. Limits and Images
// may be left empty to run without Redis or object storage.
type Deps struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	Health         api.Pinger
	Auth           *api.AuthHandler
	Recipes        *api.RecipeHandler
	Images         *api.ImageHandler
}

// SetupRouter configures the application routes
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORS(deps.AllowedOrigins),
	)

	health := deps.Health
	if health == nil {
		health = func(context.Context) error { return nil }
	}
	router.GET("/health", api.HealthCheck(health))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	if deps.Auth != nil {
		deps.Auth.RegisterRoutes(v1)
	}
	if deps.Images != nil {
		deps.Images.RegisterRoutes(v1)
	}
	if deps.Recipes != nil {
		deps.Recipes.RegisterRoutes(v1)
	}

	return router
}
