package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/pageza/alchemorsel-recipes/backend/config"
	"github.com/pageza/alchemorsel-recipes/backend/internal/database"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recipes/backend/internal/seed"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Populate the database with demo users and sample recipes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "password",
				Value:   "testpassword123",
				Usage:   "Password given to every demo user",
				Sources: cli.EnvVars("SEED_PASSWORD"),
			},
			&cli.BoolFlag{
				Name:  "migrate",
				Value: true,
				Usage: "Run auto-migration before seeding",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "users",
				Usage: "Create the demo users only",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withSeeder(ctx, cmd, func(s *seed.Seeder, log zerolog.Logger) error {
						users, err := s.Users(ctx, cmd.String("password"))
						if err != nil {
							return err
						}
						log.Info().Int("users", len(users)).Msg("Seeded users")
						return nil
					})
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withSeeder(ctx, cmd, func(s *seed.Seeder, log zerolog.Logger) error {
				users, err := s.Users(ctx, cmd.String("password"))
				if err != nil {
					return err
				}
				created, err := s.Recipes(ctx, users)
				if err != nil {
					return err
				}
				log.Info().Int("users", len(users)).Int("recipes", created).Msg("Seeding complete")
				return nil
			})
		},
	}
}

func withSeeder(ctx context.Context, cmd *cli.Command, fn func(*seed.Seeder, zerolog.Logger) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log, cfg.Env)

	db, err := database.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cmd.Bool("migrate") {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	s := seed.New(
		service.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		service.NewRecipeService(db),
		log,
	)
	return fn(s, log)
}
