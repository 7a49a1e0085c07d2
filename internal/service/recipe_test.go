package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/testhelpers"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

type recipeFixture struct {
	db     *gorm.DB
	svc    *RecipeService
	author *models.User
	other  *models.User
	base   time.Time
}

func setupRecipeTest(t *testing.T) *recipeFixture {
	db := testhelpers.NewSQLiteDB(t)
	return &recipeFixture{
		db:     db,
		svc:    NewRecipeService(db),
		author: testhelpers.CreateTestUser(t, db, "Ada"),
		other:  testhelpers.CreateTestUser(t, db, "Grace"),
		base:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// add saves a recipe created i minutes after the fixture's base time
func (f *recipeFixture) add(t *testing.T, title string, i int, mutate func(r *models.Recipe)) *models.Recipe {
	r := testhelpers.NewTestRecipe(f.author.ID, title)
	if mutate != nil {
		mutate(r)
	}
	return testhelpers.CreateTestRecipe(t, f.db, r, f.base.Add(time.Duration(i)*time.Minute))
}

func titles(recipes []models.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Title)
	}
	return out
}

func TestListPublicFiltersAndOrdersNewestFirst(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()

	f.add(t, "oldest", 1, nil)
	f.add(t, "private", 2, func(r *models.Recipe) { r.IsPublic = false })
	f.add(t, "draft", 3, func(r *models.Recipe) { r.IsPublished = false })
	f.add(t, "newest", 4, nil)

	recipes, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "oldest"}, titles(recipes))

	require.NotNil(t, recipes[0].Author)
	assert.Equal(t, "Ada", recipes[0].Author.Name)
}

func TestListPublicIsCapped(t *testing.T) {
	f := setupRecipeTest(t)
	for i := 0; i < PublicListLimit+5; i++ {
		f.add(t, "r", i, nil)
	}

	recipes, err := f.svc.ListPublic(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, PublicListLimit)
	assert.Equal(t, f.base.Add(time.Duration(PublicListLimit+4)*time.Minute).Unix(), recipes[0].CreatedAt.Unix())
}

func TestListByAuthorIncludesPrivate(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()

	f.add(t, "mine public", 1, nil)
	f.add(t, "mine private", 2, func(r *models.Recipe) { r.IsPublic = false })
	f.add(t, "theirs", 3, func(r *models.Recipe) { r.AuthorID = f.other.ID })

	recipes, err := f.svc.ListByAuthor(ctx, f.author.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"mine private", "mine public"}, titles(recipes))
}

func TestSearch(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()

	f.add(t, "Tomato Soup", 1, func(r *models.Recipe) { r.Category = "Lunch" })
	f.add(t, "Pancakes", 2, func(r *models.Recipe) {
		r.Description = "Fluffy and SWEET"
		r.Category = "Breakfast"
		r.Difficulty = models.DifficultyEasy
	})
	f.add(t, "Curry", 3, func(r *models.Recipe) {
		r.Tags = models.JSONBStringArray{"Spicy", "weeknight"}
		r.Cuisine = "Indian"
	})
	f.add(t, "Hidden Soup", 4, func(r *models.Recipe) { r.IsPublic = false })

	tests := []struct {
		name   string
		params types.SearchParams
		want   []string
	}{
		{"title substring", types.SearchParams{Query: "soup"}, []string{"Tomato Soup"}},
		{"description case-insensitive", types.SearchParams{Query: "sweet"}, []string{"Pancakes"}},
		{"tag", types.SearchParams{Query: "SPICY"}, []string{"Curry"}},
		{"category exact", types.SearchParams{Category: "Breakfast"}, []string{"Pancakes"}},
		{"category is not a substring match", types.SearchParams{Category: "Break"}, []string{}},
		{"cuisine", types.SearchParams{Cuisine: "Indian"}, []string{"Curry"}},
		{"difficulty", types.SearchParams{Difficulty: "Easy"}, []string{"Pancakes"}},
		{"combined", types.SearchParams{Query: "soup", Category: "Breakfast"}, []string{}},
		{"wildcards are literal", types.SearchParams{Query: "%"}, []string{}},
		{"tag substring", types.SearchParams{Query: "night"}, []string{"Curry"}},
		{"array brackets", types.SearchParams{Query: "["}, []string{}},
		{"closing bracket", types.SearchParams{Query: "]"}, []string{}},
		{"tag separator", types.SearchParams{Query: `","`}, []string{}},
		{"across tag boundary", types.SearchParams{Query: `spicy","week`}, []string{}},
		{"quote", types.SearchParams{Query: `"`}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, err := f.svc.Search(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(recipes))
		})
	}
}

func TestSearchWithoutParamsMatchesPublicListing(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()

	f.add(t, "a", 1, nil)
	f.add(t, "b", 2, func(r *models.Recipe) { r.IsPublished = false })
	f.add(t, "c", 3, nil)

	public, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)
	searched, err := f.svc.Search(ctx, types.SearchParams{})
	require.NoError(t, err)

	assert.Equal(t, titles(public), titles(searched))
}

func TestGetRecipe(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()
	created := f.add(t, "Soup", 1, nil)

	got, err := f.svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", got.Title)
	assert.Equal(t, "Ada", got.Author.Name)
	assert.Empty(t, got.Author.Email)

	_, err = f.svc.GetRecipe(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrRecipeNotFound))
	assert.True(t, IsNotFound(err))

	author, err := f.svc.GetAuthorID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, f.author.ID, author)

	_, err = f.svc.GetAuthorID(ctx, uuid.New())
	assert.True(t, IsNotFound(err))
}

func TestCreateRecipe(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()

	req := decodeRequest(t, `{
		"title": "Toast",
		"description": "Bread, but warm",
		"category": "Breakfast",
		"difficulty": "Expert",
		"instructions": ["slice", "", "toast"]
	}`)
	created, err := f.svc.CreateRecipe(ctx, NormalizeRecipe(req, f.author.ID))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, models.DifficultyHard, created.Difficulty)
	assert.Equal(t, "Other", created.Cuisine)
	assert.Equal(t, models.Instructions{{Step: 1, Text: "slice"}, {Step: 2, Text: "toast"}}, created.Instructions)
	assert.Equal(t, "Ada", created.Author.Name)
	assert.Empty(t, created.Likes)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateRecipeValidationError(t *testing.T) {
	f := setupRecipeTest(t)

	r := NormalizeRecipe(decodeRequest(t, `{"description": "d", "category": "c"}`), f.author.ID)
	_, err := f.svc.CreateRecipe(context.Background(), r)

	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr), "got %v", err)
	assert.Equal(t, "title is required", vErr.Error())

	var count int64
	f.db.Model(&models.Recipe{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateRecipeKeepsAuthorAndLikes(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()
	original := f.add(t, "Soup", 1, nil)

	_, _, err := f.svc.ToggleFavorite(ctx, original.ID, f.other.ID)
	require.NoError(t, err)

	update := NormalizeRecipePatch(decodeRequest(t, `{
		"title": "Better Soup",
		"description": "Now with herbs",
		"category": "Lunch",
		"prepTime": 5,
		"author": "`+f.other.ID.String()+`"
	}`))

	updated, err := f.svc.UpdateRecipe(ctx, original.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Better Soup", updated.Title)
	assert.Equal(t, 5, updated.PrepTime)
	assert.Equal(t, f.author.ID, updated.AuthorID)
	assert.Equal(t, []uuid.UUID{f.other.ID}, updated.LikeIDs())
	assert.Equal(t, original.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdateRecipeKeepsOmittedFields(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()
	original := f.add(t, "Soup", 1, func(r *models.Recipe) {
		r.Tags = models.JSONBStringArray{"warm"}
		r.Dietary = models.JSONBStringArray{"vegan"}
	})

	updated, err := f.svc.UpdateRecipe(ctx, original.ID, NormalizeRecipePatch(decodeRequest(t, `{"title": "New Soup"}`)))
	require.NoError(t, err)

	assert.Equal(t, "New Soup", updated.Title)
	assert.Equal(t, original.Description, updated.Description)
	assert.Equal(t, original.Category, updated.Category)
	assert.Equal(t, models.JSONBStringArray{"warm"}, updated.Tags)
	assert.Equal(t, models.JSONBStringArray{"vegan"}, updated.Dietary)
	// fields without a stored fallback are normalized from the body
	assert.Equal(t, "Other", updated.Cuisine)
	assert.Equal(t, 1, updated.PrepTime)
	assert.Equal(t, models.DifficultyMedium, updated.Difficulty)

	cleared, err := f.svc.UpdateRecipe(ctx, original.ID, NormalizeRecipePatch(decodeRequest(t, `{"tags": [], "dietary": null}`)))
	require.NoError(t, err)
	assert.Empty(t, cleared.Tags)
	assert.Equal(t, models.JSONBStringArray{"vegan"}, cleared.Dietary)
	assert.Equal(t, "New Soup", cleared.Title)
}

func TestUpdateRecipeRejectsBlankedRequiredField(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()
	original := f.add(t, "Soup", 1, nil)

	_, err := f.svc.UpdateRecipe(ctx, original.ID, NormalizeRecipePatch(decodeRequest(t, `{"description": ""}`)))
	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr), "got %v", err)
	assert.Equal(t, "description", vErr.Field)
}

func TestUpdateRecipeErrors(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()
	original := f.add(t, "Soup", 1, nil)

	_, err := f.svc.UpdateRecipe(ctx, uuid.New(), NormalizeRecipePatch(decodeRequest(t, `{"title": "x"}`)))
	assert.True(t, IsNotFound(err))

	_, err = f.svc.UpdateRecipe(ctx, original.ID, NormalizeRecipePatch(decodeRequest(t, `{"servings": -2}`)))
	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr), "got %v", err)
	assert.Equal(t, "servings", vErr.Field)

	stored, err := f.svc.GetRecipe(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Servings)
}

func TestDeleteRecipe(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()
	r := f.add(t, "Soup", 1, nil)
	_, _, err := f.svc.ToggleFavorite(ctx, r.ID, f.other.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteRecipe(ctx, r.ID))
	_, err = f.svc.GetRecipe(ctx, r.ID)
	assert.True(t, IsNotFound(err))

	var likes int64
	f.db.Model(&models.RecipeLike{}).Where("recipe_id = ?", r.ID).Count(&likes)
	assert.Zero(t, likes)

	assert.NoError(t, f.svc.DeleteRecipe(ctx, uuid.New()))
}

func TestToggleFavoriteTwiceRestoresLikes(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()
	r := f.add(t, "Soup", 1, nil)

	_, _, err := f.svc.ToggleFavorite(ctx, r.ID, f.author.ID)
	require.NoError(t, err)

	liked, favorited, err := f.svc.ToggleFavorite(ctx, r.ID, f.other.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.ElementsMatch(t, []uuid.UUID{f.author.ID, f.other.ID}, liked.LikeIDs())

	unliked, favorited, err := f.svc.ToggleFavorite(ctx, r.ID, f.other.ID)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.Equal(t, []uuid.UUID{f.author.ID}, unliked.LikeIDs())
}

func TestToggleFavoriteMissingRecipe(t *testing.T) {
	f := setupRecipeTest(t)

	_, _, err := f.svc.ToggleFavorite(context.Background(), uuid.New(), f.author.ID)
	assert.True(t, IsNotFound(err))
}

func TestConcurrentFavoritesFromDifferentUsers(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()
	r := f.add(t, "Soup", 1, nil)

	users := make([]uuid.UUID, 8)
	for i := range users {
		users[i] = testhelpers.CreateTestUser(t, f.db, "fan").ID
	}

	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(u uuid.UUID) {
			defer wg.Done()
			_, _, err := f.svc.ToggleFavorite(ctx, r.ID, u)
			assert.NoError(t, err)
		}(u)
	}
	wg.Wait()

	got, err := f.svc.GetRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, users, got.LikeIDs())
}

func TestListFavorites(t *testing.T) {
	f := setupRecipeTest(t)
	ctx := context.Background()

	a := f.add(t, "a", 1, nil)
	f.add(t, "b", 2, nil)
	c := f.add(t, "c", 3, func(r *models.Recipe) { r.IsPublic = false })

	for _, id := range []uuid.UUID{a.ID, c.ID} {
		_, _, err := f.svc.ToggleFavorite(ctx, id, f.other.ID)
		require.NoError(t, err)
	}

	recipes, err := f.svc.ListFavorites(ctx, f.other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, titles(recipes))

	recipes, err = f.svc.ListFavorites(ctx, f.author.ID)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}
