package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Difficulty is the effort level of a recipe
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Ingredient is a single ingredient line
type Ingredient struct {
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Instruction is a numbered preparation step
type Instruction struct {
	Step int    `json:"step" validate:"min=1"`
	Text string `json:"text" validate:"required"`
}

// Image is a recipe photo
type Image struct {
	URL       string `json:"url" validate:"required"`
	IsPrimary bool   `json:"isPrimary"`
}

// Ingredients is stored as a JSONB array
type Ingredients []Ingredient

func (a Ingredients) Value() (driver.Value, error) {
	return jsonbValue(a, len(a))
}

func (a *Ingredients) Scan(value interface{}) error {
	return jsonbScan(value, a)
}

// Instructions is stored as a JSONB array
type Instructions []Instruction

func (a Instructions) Value() (driver.Value, error) {
	return jsonbValue(a, len(a))
}

func (a *Instructions) Scan(value interface{}) error {
	return jsonbScan(value, a)
}

// Images is stored as a JSONB array
type Images []Image

func (a Images) Value() (driver.Value, error) {
	return jsonbValue(a, len(a))
}

func (a *Images) Scan(value interface{}) error {
	return jsonbScan(value, a)
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

func (a JSONBStringArray) Value() (driver.Value, error) {
	return jsonbValue(a, len(a))
}

func (a *JSONBStringArray) Scan(value interface{}) error {
	return jsonbScan(value, a)
}

// jsonbValue encodes v for a JSONB column; empty collections are stored as []
func jsonbValue(v interface{}, n int) (driver.Value, error) {
	if n == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonbScan(value interface{}, dest interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		data = []byte("[]")
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}
	return json.Unmarshal(data, dest)
}

// Recipe is the persisted recipe document
type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string           `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Description  string           `gorm:"type:text;not null" json:"description" validate:"required,max=5000"`
	Category     string           `gorm:"size:100;not null;index" json:"category" validate:"required,max=100"`
	Cuisine      string           `gorm:"size:100;not null;index" json:"cuisine" validate:"required,max=100"`
	PrepTime     int              `gorm:"not null" json:"prepTime" validate:"min=1"`
	CookingTime  int              `gorm:"not null" json:"cookingTime" validate:"min=1"`
	Servings     int              `gorm:"not null" json:"servings" validate:"min=1"`
	Difficulty   Difficulty       `gorm:"size:10;not null;index" json:"difficulty" validate:"oneof=Easy Medium Hard"`
	Ingredients  Ingredients      `gorm:"type:jsonb;not null" json:"ingredients" validate:"dive"`
	Instructions Instructions     `gorm:"type:jsonb;not null" json:"instructions" validate:"dive"`
	Tags         JSONBStringArray `gorm:"type:jsonb;not null" json:"tags"`
	Dietary      JSONBStringArray `gorm:"type:jsonb;not null" json:"dietary"`
	Images       Images           `gorm:"type:jsonb;not null" json:"images" validate:"max=1,dive"`
	AuthorID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"authorId"`
	Author       *User            `gorm:"foreignKey:AuthorID" json:"-" validate:"-"`
	Likes        []RecipeLike     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	IsPublic     bool             `gorm:"not null;index:idx_recipes_visibility" json:"isPublic"`
	IsPublished  bool             `gorm:"not null;index:idx_recipes_visibility" json:"isPublished"`
	CreatedAt    time.Time        `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// BeforeCreate assigns an id when the caller did not
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeSave runs field validation on every create and update
func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	return Validate(r)
}

// LikedBy reports whether userID is in the recipe's likes
func (r *Recipe) LikedBy(userID uuid.UUID) bool {
	for _, l := range r.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// LikeIDs returns the ids of the users who liked the recipe
func (r *Recipe) LikeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Likes))
	for _, l := range r.Likes {
		ids = append(ids, l.UserID)
	}
	return ids
}

// RecipePatch is a normalized update. Nil fields were not supplied and keep
// their stored values; the rest are always written.
type RecipePatch struct {
	Title       *string
	Description *string
	Category    *string
	Tags        *JSONBStringArray
	Dietary     *JSONBStringArray

	Cuisine      string
	PrepTime     int
	CookingTime  int
	Servings     int
	Difficulty   Difficulty
	Ingredients  Ingredients
	Instructions Instructions
	Images       Images
}

// ApplyPatch copies the supplied fields of p onto r and marks the recipe
// public and published. Identity, author, likes and timestamps are left
// untouched.
func (r *Recipe) ApplyPatch(p *RecipePatch) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Tags != nil {
		r.Tags = *p.Tags
	}
	if p.Dietary != nil {
		r.Dietary = *p.Dietary
	}
	r.Cuisine = p.Cuisine
	r.PrepTime = p.PrepTime
	r.CookingTime = p.CookingTime
	r.Servings = p.Servings
	r.Difficulty = p.Difficulty
	r.Ingredients = p.Ingredients
	r.Instructions = p.Instructions
	r.Images = p.Images
	r.IsPublic = true
	r.IsPublished = true
}
