package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

var _ service.IRecipeService = (*MockRecipeService)(nil)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func recipes(args mock.Arguments) ([]models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func recipe(args mock.Arguments) (*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// ListPublic mocks the ListPublic method
func (m *MockRecipeService) ListPublic(ctx context.Context) ([]models.Recipe, error) {
	return recipes(m.Called(ctx))
}

// ListByAuthor mocks the ListByAuthor method
func (m *MockRecipeService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Recipe, error) {
	return recipes(m.Called(ctx, authorID))
}

// ListFavorites mocks the ListFavorites method
func (m *MockRecipeService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	return recipes(m.Called(ctx, userID))
}

// Search mocks the Search method
func (m *MockRecipeService) Search(ctx context.Context, params types.SearchParams) ([]models.Recipe, error) {
	return recipes(m.Called(ctx, params))
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	return recipe(m.Called(ctx, id))
}

// GetAuthorID mocks the GetAuthorID method
func (m *MockRecipeService) GetAuthorID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, r *models.Recipe) (*models.Recipe, error) {
	return recipe(m.Called(ctx, r))
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, patch *models.RecipePatch) (*models.Recipe, error) {
	return recipe(m.Called(ctx, id, patch))
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ToggleFavorite mocks the ToggleFavorite method
func (m *MockRecipeService) ToggleFavorite(ctx context.Context, recipeID, userID uuid.UUID) (*models.Recipe, bool, error) {
	args := m.Called(ctx, recipeID, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Recipe), args.Bool(1), args.Error(2)
}
