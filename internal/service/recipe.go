package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

// PublicListLimit caps the unfiltered public listing
const PublicListLimit = 50

const newestFirst = "recipes.created_at DESC"

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// withRelations attaches the author summary and likes to every loaded recipe
func (s *RecipeService) withRelations(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Likes")
}

func (s *RecipeService) visible(ctx context.Context) *gorm.DB {
	return s.withRelations(ctx).Where("recipes.is_public = ? AND recipes.is_published = ?", true, true)
}

// ListPublic returns the newest public, published recipes
func (s *RecipeService) ListPublic(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.visible(ctx).Order(newestFirst).Limit(PublicListLimit).Find(&recipes).Error
	return recipes, classify(err, "list public recipes")
}

// ListByAuthor returns every recipe written by authorID, newest first
func (s *RecipeService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.withRelations(ctx).
		Where("recipes.author_id = ?", authorID).
		Order(newestFirst).
		Find(&recipes).Error
	return recipes, classify(err, "list author recipes")
}

// ListFavorites returns the recipes userID has liked, newest first
func (s *RecipeService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	liked := s.db.Model(&models.RecipeLike{}).Select("recipe_id").Where("user_id = ?", userID)

	var recipes []models.Recipe
	err := s.withRelations(ctx).
		Where("recipes.id IN (?)", liked).
		Order(newestFirst).
		Find(&recipes).Error
	return recipes, classify(err, "list favorite recipes")
}

// Search filters public, published recipes. Query is a case-insensitive
// substring match against title, description or tags; the other params are
// exact matches. Empty params are ignored.
func (s *RecipeService) Search(ctx context.Context, params types.SearchParams) ([]models.Recipe, error) {
	query := s.visible(ctx)

	if q := strings.TrimSpace(params.Query); q != "" {
		like := "%" + escapeLike(strings.ToLower(q)) + "%"
		query = query.Where(
			"(LOWER(recipes.title) LIKE ? ESCAPE '\\' OR LOWER(recipes.description) LIKE ? ESCAPE '\\' OR "+s.tagMatch()+")",
			like, like, like,
		)
	}
	if params.Category != "" {
		query = query.Where("recipes.category = ?", params.Category)
	}
	if params.Cuisine != "" {
		query = query.Where("recipes.cuisine = ?", params.Cuisine)
	}
	if params.Difficulty != "" {
		query = query.Where("recipes.difficulty = ?", params.Difficulty)
	}

	var recipes []models.Recipe
	err := query.Order(newestFirst).Find(&recipes).Error
	return recipes, classify(err, "search recipes")
}

// tagMatch is a condition true when any single tag matches the bound LIKE
// pattern. Tags are compared one element at a time, never as array text.
func (s *RecipeService) tagMatch() string {
	if s.db.Dialector.Name() == "postgres" {
		return "EXISTS (SELECT 1 FROM jsonb_array_elements_text(recipes.tags) AS t(tag) WHERE LOWER(t.tag) LIKE ? ESCAPE '\\')"
	}
	return "EXISTS (SELECT 1 FROM json_each(recipes.tags) WHERE LOWER(json_each.value) LIKE ? ESCAPE '\\')"
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.withRelations(ctx).First(&recipe, "recipes.id = ?", id).Error; err != nil {
		return nil, classify(err, "get recipe")
	}
	return &recipe, nil
}

// GetAuthorID returns only the author of a recipe. Used by the ownership gate.
func (s *RecipeService) GetAuthorID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Select("id", "author_id").First(&recipe, "id = ?", id).Error
	if err != nil {
		return uuid.Nil, classify(err, "get recipe author")
	}
	return recipe.AuthorID, nil
}

// CreateRecipe persists a normalized recipe and returns it with relations
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error; err != nil {
		return nil, classify(err, "create recipe")
	}
	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe merges patch into recipe id. Fields the patch leaves nil keep
// their stored values; the author and creation time are never changed.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, patch *models.RecipePatch) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Recipe
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}
		existing.ApplyPatch(patch)

		res := tx.Model(&existing).
			Select("*").
			Omit("ID", "AuthorID", "CreatedAt", clause.Associations).
			Updates(&existing)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, classify(err, "update recipe")
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes a recipe and its likes. Deleting an id that does not
// exist is not an error.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
	return classify(err, "delete recipe")
}

// ToggleFavorite removes userID from the recipe's likes if present and adds
// it otherwise. It reports whether the recipe is now favorited. Each toggle
// touches only the caller's like row, so concurrent toggles by different
// users cannot overwrite each other.
func (s *RecipeService) ToggleFavorite(ctx context.Context, recipeID, userID uuid.UUID) (*models.Recipe, bool, error) {
	var favorited bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		res := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).Delete(&models.RecipeLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			favorited = false
			return nil
		}

		favorited = true
		like := models.RecipeLike{RecipeID: recipeID, UserID: userID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
	})
	if err != nil {
		return nil, false, classify(err, "toggle favorite")
	}

	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, false, err
	}
	return recipe, favorited, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// IsNotFound reports whether err means the recipe does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecipeNotFound)
}
