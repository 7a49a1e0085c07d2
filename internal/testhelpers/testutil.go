package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
)

// TestPassword is the plain-text password of users made by CreateTestUser
const TestPassword = "testpassword123"

// CreateTestUser creates a user with a unique email and TestPassword
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	id := uuid.New()
	user := &models.User{
		ID:           id,
		Name:         name,
		Email:        fmt.Sprintf("testuser+%s@example.com", id),
		PasswordHash: string(hashed),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// NewTestRecipe builds a valid, unsaved recipe written by authorID
func NewTestRecipe(authorID uuid.UUID, title string) *models.Recipe {
	return &models.Recipe{
		Title:        title,
		Description:  "A test recipe",
		Category:     "Dinner",
		Cuisine:      "Italian",
		PrepTime:     10,
		CookingTime:  20,
		Servings:     2,
		Difficulty:   models.DifficultyMedium,
		Ingredients:  models.Ingredients{{Name: "pasta", Quantity: "1"}},
		Instructions: models.Instructions{{Step: 1, Text: "Boil water"}},
		Tags:         models.JSONBStringArray{},
		Dietary:      models.JSONBStringArray{},
		Images:       models.Images{},
		AuthorID:     authorID,
		IsPublic:     true,
		IsPublished:  true,
	}
}

// CreateTestRecipe saves recipe with an explicit creation time so ordering
// assertions do not depend on clock resolution
func CreateTestRecipe(t *testing.T, db *gorm.DB, recipe *models.Recipe, createdAt time.Time) *models.Recipe {
	t.Helper()
	recipe.CreatedAt = createdAt
	recipe.UpdatedAt = createdAt
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}
