package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/alchemorsel-recipes/backend/config"
	"github.com/pageza/alchemorsel-recipes/backend/internal/api"
	"github.com/pageza/alchemorsel-recipes/backend/internal/database"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recipes/backend/internal/middleware"
	"github.com/pageza/alchemorsel-recipes/backend/internal/router"
	"github.com/pageza/alchemorsel-recipes/backend/internal/server"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.Log, cfg.Env)
	if cfg.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
	log.Info().Msg("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := database.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	authService := service.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	recipeService := service.NewRecipeService(db)

	var limits api.RateLimits
	var imageLimit *middleware.RateLimiter
	if cfg.Redis.Enabled() {
		redisClient, err := database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, rate limiting disabled")
		} else {
			defer redisClient.Close()
			limits = api.RateLimits{
				Create:   middleware.NewRecipeCreationRateLimiter(redisClient),
				Modify:   middleware.NewRecipeModificationRateLimiter(redisClient),
				Favorite: middleware.NewFavoriteRateLimiter(redisClient),
			}
			imageLimit = middleware.NewImageUploadRateLimiter(redisClient)
		}
	}

	var storage service.Presigner
	if cfg.Storage.Enabled() {
		s3cfg, err := config.NewS3Config(ctx, cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Msg("Object storage unavailable, image uploads disabled")
		} else {
			storage = s3cfg
		}
	}
	imageService := service.NewImageService(storage)

	engine := router.SetupRouter(router.Deps{
		Logger:         log,
		AllowedOrigins: cfg.Server.AllowedOrigins(),
		Health:         func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
		Auth:           api.NewAuthHandler(authService),
		Recipes:        api.NewRecipeHandler(recipeService, authService, limits),
		Images:         api.NewImageHandler(imageService, authService, imageLimit),
	})

	return server.New(cfg.Server, engine, log).Start(ctx)
}
