package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecipe() *Recipe {
	return &Recipe{
		Title:        "Shakshuka",
		Description:  "Eggs poached in spiced tomato sauce",
		Category:     "Breakfast",
		Cuisine:      "Middle Eastern",
		PrepTime:     10,
		CookingTime:  20,
		Servings:     2,
		Difficulty:   DifficultyEasy,
		Ingredients:  Ingredients{{Name: "eggs", Quantity: "1"}},
		Instructions: Instructions{{Step: 1, Text: "Simmer the sauce"}},
		AuthorID:     uuid.New(),
	}
}

func TestValidateAcceptsValidRecipe(t *testing.T) {
	assert.NoError(t, Validate(validRecipe()))
}

func TestValidateReportsFirstFieldByJSONName(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Recipe)
		field   string
		message string
	}{
		{"missing title", func(r *Recipe) { r.Title = "" }, "title", "title is required"},
		{"zero servings", func(r *Recipe) { r.Servings = 0 }, "servings", "servings must be at least 1"},
		{"negative prep time", func(r *Recipe) { r.PrepTime = -5 }, "prepTime", "prepTime must be at least 1"},
		{"bad difficulty", func(r *Recipe) { r.Difficulty = "Expert" }, "difficulty", "difficulty must be one of Easy, Medium, Hard"},
		{"too many images", func(r *Recipe) {
			r.Images = Images{{URL: "a"}, {URL: "b"}}
		}, "images", "images must contain at most 1 items"},
		{"empty instruction", func(r *Recipe) {
			r.Instructions = Instructions{{Step: 1}}
		}, "instructions[0].text", "instructions[0].text is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe()
			tt.mutate(r)

			err := Validate(r)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, tt.message, vErr.Message)
		})
	}
}

func TestJSONBRoundTripThroughDriverValue(t *testing.T) {
	in := Instructions{{Step: 1, Text: "chop"}, {Step: 2, Text: "fry"}}
	v, err := in.Value()
	require.NoError(t, err)

	var out Instructions
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	var empty JSONBStringArray
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var tags JSONBStringArray
	require.NoError(t, tags.Scan(nil))
	assert.Empty(t, tags)
}

func TestLikes(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	r := validRecipe()
	r.Likes = []RecipeLike{{UserID: a}}

	assert.True(t, r.LikedBy(a))
	assert.False(t, r.LikedBy(b))
	assert.Equal(t, []uuid.UUID{a}, r.LikeIDs())
}

func TestApplyPatch(t *testing.T) {
	author := uuid.New()
	stored := validRecipe()
	stored.AuthorID = author
	stored.Tags = JSONBStringArray{"warm"}
	description := stored.Description

	title := "Green shakshuka"
	stored.ApplyPatch(&RecipePatch{
		Title:      &title,
		Cuisine:    "Other",
		PrepTime:   1,
		Servings:   2,
		Difficulty: DifficultyEasy,
	})

	assert.Equal(t, "Green shakshuka", stored.Title)
	assert.Equal(t, description, stored.Description)
	assert.Equal(t, JSONBStringArray{"warm"}, stored.Tags)
	assert.Equal(t, 2, stored.Servings)
	assert.Equal(t, DifficultyEasy, stored.Difficulty)
	assert.Equal(t, author, stored.AuthorID)
	assert.True(t, stored.IsPublic)
	assert.True(t, stored.IsPublished)
}
