package models

import (
	"time"

	"github.com/google/uuid"
)

// RecipeLike records that a user favorited a recipe. The composite primary
// key keeps each user in a recipe's likes at most once.
type RecipeLike struct {
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (RecipeLike) TableName() string {
	return "recipe_likes"
}
