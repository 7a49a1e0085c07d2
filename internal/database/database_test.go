package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-recipes/backend/config"
	"github.com/pageza/alchemorsel-recipes/backend/internal/database"
	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
	"github.com/pageza/alchemorsel-recipes/backend/internal/testhelpers"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

func TestPostgresMigrateAndSearch(t *testing.T) {
	cfg := testhelpers.StartPostgres(t)
	ctx := context.Background()

	db, err := database.New(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.HealthCheck(ctx, db))

	author := testhelpers.CreateTestUser(t, db, "Chef")
	recipe := testhelpers.NewTestRecipe(author.ID, "Weeknight Ragu")
	recipe.Tags = models.JSONBStringArray{"Comfort", "slow-cook"}
	testhelpers.CreateTestRecipe(t, db, recipe, time.Now())

	svc := service.NewRecipeService(db)

	found, err := svc.Search(ctx, types.SearchParams{Query: "COMFORT"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Chef", found[0].Author.Name)

	found, err = svc.Search(ctx, types.SearchParams{Query: "slow"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	for _, q := range []string{"100%", "[", `","`, `comfort","slow`} {
		found, err = svc.Search(ctx, types.SearchParams{Query: q})
		require.NoError(t, err)
		assert.Empty(t, found, "query %q", q)
	}

	title := "Sunday Ragu"
	updated, err := svc.UpdateRecipe(ctx, recipe.ID, &models.RecipePatch{
		Title:       &title,
		Cuisine:     "Italian",
		PrepTime:    1,
		CookingTime: 1,
		Servings:    1,
		Difficulty:  models.DifficultyMedium,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sunday Ragu", updated.Title)
	assert.Equal(t, models.JSONBStringArray{"Comfort", "slow-cook"}, updated.Tags)

	_, favorited, err := svc.ToggleFavorite(ctx, recipe.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestPostgresRejectsInvalidRecipe(t *testing.T) {
	cfg := testhelpers.StartPostgres(t)
	ctx := context.Background()

	db, err := database.New(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))

	svc := service.NewRecipeService(db)
	_, err = svc.CreateRecipe(ctx, testhelpers.NewTestRecipe(uuid.New(), ""))
	var vErr *models.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestNewFailsWithoutServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := database.New(ctx, config.DatabaseConfig{
		Host:         "127.0.0.1",
		Port:         "1",
		User:         "nobody",
		Password:     "nothing",
		Name:         "none",
		SSLMode:      "disable",
		MaxOpenConns: 1,
	}, zerolog.Nop())
	assert.Error(t, err)
}
