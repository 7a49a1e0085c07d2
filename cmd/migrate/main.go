package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/alchemorsel-recipes/backend/config"
	"github.com/pageza/alchemorsel-recipes/backend/internal/database"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.Log, cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(db.WithContext(ctx)); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
	log.Info().Int("models", len(database.Models())).Msg("All migrations applied successfully")
}
