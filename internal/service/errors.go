package service

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
)

var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorageDisabled    = errors.New("image storage is not configured")
)

// Postgres integrity error codes reported as validation failures
var pqValidationCodes = map[pq.ErrorCode]bool{
	"23502": true, // not_null_violation
	"23514": true, // check_violation
	"22001": true, // string_data_right_truncation
	"22P02": true, // invalid_text_representation
}

// classify maps persistence errors onto the service's error kinds. Model
// validation errors pass through untouched so callers can errors.As them.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrRecipeNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqValidationCodes[pqErr.Code] {
		return &models.ValidationError{Field: pqErr.Column, Message: pqErr.Message}
	}
	return fmt.Errorf("%s: %w", op, err)
}
