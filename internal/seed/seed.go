// Package seed fills a database with demo users and recipes. Recipes go
// through the same normalizer and service as API submissions.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

//go:embed recipes.json
var sampleRecipes []byte

// DemoUser is a seeded account
type DemoUser struct {
	Name  string
	Email string
}

// DemoUsers are created by Users, in order
var DemoUsers = []DemoUser{
	{Name: "John Doe", Email: "john.doe@example.com"},
	{Name: "Jane Smith", Email: "jane.smith@example.com"},
	{Name: "Bob Wilson", Email: "bob.wilson@example.com"},
}

// SampleRecipes decodes the bundled recipe submissions
func SampleRecipes() ([]types.RecipeRequest, error) {
	var reqs []types.RecipeRequest
	if err := json.Unmarshal(sampleRecipes, &reqs); err != nil {
		return nil, fmt.Errorf("failed to decode sample recipes: %w", err)
	}
	return reqs, nil
}

type Seeder struct {
	auth    service.IAuthService
	recipes service.IRecipeService
	log     zerolog.Logger
}

func New(auth service.IAuthService, recipes service.IRecipeService, log zerolog.Logger) *Seeder {
	return &Seeder{auth: auth, recipes: recipes, log: log}
}

// Users registers every DemoUser with password. Accounts that already exist
// are reused when the password matches.
func (s *Seeder) Users(ctx context.Context, password string) ([]*models.User, error) {
	users := make([]*models.User, 0, len(DemoUsers))
	for _, d := range DemoUsers {
		user, err := s.auth.Register(ctx, d.Name, d.Email, password)
		if errors.Is(err, service.ErrUserExists) {
			s.log.Info().Str("email", d.Email).Msg("User already exists, reusing")
			user, err = s.auth.Login(ctx, d.Email, password)
		}
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", d.Email, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// Recipes creates the sample recipes, dealing them round-robin to authors.
// A recipe is skipped when its author already has one with the same title.
// It returns the number of recipes created.
func (s *Seeder) Recipes(ctx context.Context, authors []*models.User) (int, error) {
	if len(authors) == 0 {
		return 0, errors.New("no authors to seed recipes for")
	}
	reqs, err := SampleRecipes()
	if err != nil {
		return 0, err
	}

	existing := make(map[string]bool)
	for _, author := range authors {
		recipes, err := s.recipes.ListByAuthor(ctx, author.ID)
		if err != nil {
			return 0, fmt.Errorf("list recipes of %s: %w", author.ID, err)
		}
		for _, r := range recipes {
			existing[author.ID.String()+"/"+r.Title] = true
		}
	}

	created := 0
	for i := range reqs {
		author := authors[i%len(authors)]
		recipe := service.NormalizeRecipe(&reqs[i], author.ID)
		if existing[author.ID.String()+"/"+recipe.Title] {
			s.log.Debug().Str("title", recipe.Title).Msg("Recipe already seeded, skipping")
			continue
		}

		title := recipe.Title
		recipe, err := s.recipes.CreateRecipe(ctx, recipe)
		if err != nil {
			return created, fmt.Errorf("seed recipe %q: %w", title, err)
		}
		s.log.Info().Str("id", recipe.ID.String()).Str("title", recipe.Title).Msg("Created recipe")
		created++
	}
	return created, nil
}
