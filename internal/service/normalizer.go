package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

const (
	defaultCuisine  = "Other"
	defaultQuantity = "1"
	defaultMinutes  = 1
)

// NormalizeRecipe maps a client submission onto a persistence-ready recipe
// authored by authorID. It never fails; shape problems are left for model
// validation.
func NormalizeRecipe(req *types.RecipeRequest, authorID uuid.UUID) *models.Recipe {
	r := &models.Recipe{
		AuthorID: authorID,
		Tags:     models.JSONBStringArray{},
		Dietary:  models.JSONBStringArray{},
	}
	r.ApplyPatch(NormalizeRecipePatch(req))
	return r
}

// NormalizeRecipePatch normalizes an update body. Text fields and the tag
// lists stay nil when absent; every other field gets its normalized default.
func NormalizeRecipePatch(req *types.RecipeRequest) *models.RecipePatch {
	return &models.RecipePatch{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Tags:         stringList(req.Tags),
		Dietary:      stringList(req.Dietary),
		Cuisine:      normalizeCuisine(req.Cuisine),
		PrepTime:     positiveOrDefault(req.PrepTime),
		CookingTime:  positiveOrDefault(req.CookTime),
		Servings:     positiveOrDefault(req.Servings),
		Difficulty:   NormalizeDifficulty(req.Difficulty),
		Ingredients:  normalizeIngredients(req.Ingredients),
		Instructions: normalizeInstructions(req.Instructions),
		Images:       normalizeImages(req.Image),
	}
}

// NormalizeDifficulty maps free text onto Easy, Medium or Hard. Matching is
// exact; "Expert" is an alias for Hard and everything else is Medium.
func NormalizeDifficulty(s string) models.Difficulty {
	switch models.Difficulty(s) {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return models.Difficulty(s)
	}
	if s == "Expert" {
		return models.DifficultyHard
	}
	return models.DifficultyMedium
}

func normalizeCuisine(s string) string {
	if strings.TrimSpace(s) == "" {
		return defaultCuisine
	}
	return s
}

// positiveOrDefault rounds n to an integer. Zero, non-finite values and
// fractions that round to zero become 1; negatives are kept.
func positiveOrDefault(n types.LooseNumber) int {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return defaultMinutes
	}
	v := int(math.Round(f))
	if v == 0 {
		return defaultMinutes
	}
	return v
}

func normalizeIngredients(items []interface{}) models.Ingredients {
	out := models.Ingredients{}
	for _, item := range items {
		if isFalsy(item) {
			continue
		}
		out = append(out, models.Ingredient{
			Name:     textOf(item),
			Quantity: defaultQuantity,
			Unit:     "",
		})
	}
	return out
}

// normalizeInstructions numbers steps by position after falsy entries are
// dropped, ignoring any numbering the client sent.
func normalizeInstructions(items []interface{}) models.Instructions {
	out := models.Instructions{}
	for _, item := range items {
		if isFalsy(item) {
			continue
		}
		out = append(out, models.Instruction{
			Step: len(out) + 1,
			Text: textOf(item),
		})
	}
	return out
}

func normalizeImages(url string) models.Images {
	if url == "" {
		return models.Images{}
	}
	return models.Images{{URL: url, IsPrimary: true}}
}

func stringList(s *[]string) *models.JSONBStringArray {
	if s == nil {
		return nil
	}
	out := models.JSONBStringArray{}
	if *s != nil {
		out = append(out, *s...)
	}
	return &out
}

// isFalsy reports whether a decoded JSON value is null, false, 0, NaN or "".
func isFalsy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0 || math.IsNaN(x)
	case string:
		return x == ""
	}
	return false
}

func textOf(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
