package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
)

// AuthorSummary is the author reference attached to recipe responses
type AuthorSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RecipeResponse is the API shape of a recipe
type RecipeResponse struct {
	ID           uuid.UUID               `json:"id"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	Category     string                  `json:"category"`
	Cuisine      string                  `json:"cuisine"`
	PrepTime     int                     `json:"prepTime"`
	CookingTime  int                     `json:"cookingTime"`
	Servings     int                     `json:"servings"`
	Difficulty   models.Difficulty       `json:"difficulty"`
	Ingredients  models.Ingredients      `json:"ingredients"`
	Instructions models.Instructions     `json:"instructions"`
	Tags         models.JSONBStringArray `json:"tags"`
	Dietary      models.JSONBStringArray `json:"dietary"`
	Images       models.Images           `json:"images"`
	Author       AuthorSummary           `json:"author"`
	Likes        []uuid.UUID             `json:"likes"`
	IsPublic     bool                    `json:"isPublic"`
	IsPublished  bool                    `json:"isPublished"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

// NewRecipeResponse shapes r for the API. The author name is only present
// when the author association was loaded.
func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		Cuisine:      r.Cuisine,
		PrepTime:     r.PrepTime,
		CookingTime:  r.CookingTime,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		Ingredients:  nonNil(r.Ingredients),
		Instructions: nonNil(r.Instructions),
		Tags:         nonNil(r.Tags),
		Dietary:      nonNil(r.Dietary),
		Images:       nonNil(r.Images),
		Author:       AuthorSummary{ID: r.AuthorID},
		Likes:        r.LikeIDs(),
		IsPublic:     r.IsPublic,
		IsPublished:  r.IsPublished,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Author != nil {
		resp.Author.Name = r.Author.Name
	}
	return resp
}

// NewRecipeResponses shapes a list of recipes, never returning nil
func NewRecipeResponses(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i]))
	}
	return out
}

func nonNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse shapes u for the API
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UploadURLResponse carries a presigned upload target for a recipe image
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
	Key       string `json:"key"`
}
