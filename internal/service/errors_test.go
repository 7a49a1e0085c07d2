package service

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil, "op"))

	err := classify(gorm.ErrRecordNotFound, "get recipe")
	assert.True(t, errors.Is(err, ErrRecipeNotFound))
	assert.Equal(t, "get recipe: recipe not found", err.Error())

	err = classify(&pq.Error{Code: "23502", Column: "title", Message: `null value in column "title"`}, "create recipe")
	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "title", vErr.Field)

	err = classify(&pq.Error{Code: "23505", Message: "duplicate key"}, "create recipe")
	assert.False(t, errors.As(err, &vErr))
	assert.Contains(t, err.Error(), "create recipe")

	validation := &models.ValidationError{Field: "servings", Message: "servings must be at least 1"}
	err = classify(validation, "update recipe")
	require.True(t, errors.As(err, &vErr))
	assert.Same(t, validation, vErr)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now \\o/`, escapeLike(`50% off_now \o/`))
}
