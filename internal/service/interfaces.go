package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListPublic(ctx context.Context) ([]models.Recipe, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Recipe, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	Search(ctx context.Context, params types.SearchParams) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	GetAuthorID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, patch *models.RecipePatch) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, recipeID, userID uuid.UUID) (*models.Recipe, bool, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IImageService defines the interface for recipe image uploads
type IImageService interface {
	CreateUploadURL(ctx context.Context, userID uuid.UUID, contentType string) (*types.UploadURLResponse, error)
}

var (
	_ IRecipeService = (*RecipeService)(nil)
	_ IAuthService   = (*AuthService)(nil)
	_ IImageService  = (*ImageService)(nil)
)
