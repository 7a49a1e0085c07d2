package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// LooseNumber accepts a JSON number, a numeric string, a boolean or null.
// Anything that cannot be read as a number decodes to 0 instead of failing
// the request.
type LooseNumber float64

// UnmarshalJSON implements the json.Unmarshaler interface
func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*n = LooseNumber(f)
		}
	case 't':
		*n = 1
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err == nil {
			*n = LooseNumber(f)
		}
	}
	return nil
}

// RecipeRequest is the body of create and update requests. Ingredients and
// instructions are free-form lists; the normalizer decides what survives.
// The pointer fields are nil when the client left them out, so an update
// keeps their stored values.
type RecipeRequest struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	Category     *string       `json:"category"`
	Cuisine      string        `json:"cuisine"`
	PrepTime     LooseNumber   `json:"prepTime"`
	CookTime     LooseNumber   `json:"cookTime"`
	Servings     LooseNumber   `json:"servings"`
	Difficulty   string        `json:"difficulty"`
	Ingredients  []interface{} `json:"ingredients"`
	Instructions []interface{} `json:"instructions"`
	Tags         *[]string     `json:"tags"`
	Image        string        `json:"image"`
	Dietary      *[]string     `json:"dietary"`
}

// SearchParams are the optional filters of the search endpoint
type SearchParams struct {
	Query      string `form:"q"`
	Category   string `form:"category"`
	Cuisine    string `form:"cuisine"`
	Difficulty string `form:"difficulty"`
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UploadURLRequest asks for a presigned recipe image upload
type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required,oneof=image/jpeg image/png image/webp"`
}
