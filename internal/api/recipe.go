package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-recipes/backend/internal/metrics"
	"github.com/pageza/alchemorsel-recipes/backend/internal/middleware"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

// RateLimits holds the optional limiters applied to recipe writes. A nil
// limiter disables that limit.
type RateLimits struct {
	Create   *middleware.RateLimiter
	Modify   *middleware.RateLimiter
	Favorite *middleware.RateLimiter
}

type RecipeHandler struct {
	recipes     service.IRecipeService
	authService middleware.TokenValidator
	limits      RateLimits
}

func NewRecipeHandler(recipes service.IRecipeService, authService middleware.TokenValidator, limits RateLimits) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		authService: authService,
		limits:      limits,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)
	owner := middleware.RequireRecipeOwner(h.recipes, service.IsNotFound)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/my", auth, h.ListMyRecipes)
		recipes.GET("/favorites", auth, h.ListFavoriteRecipes)
		recipes.GET("/:id", h.GetRecipe)

		recipes.POST("", chain(auth, limit(h.limits.Create, false), h.CreateRecipe)...)
		recipes.PUT("/:id", chain(auth, owner, limit(h.limits.Modify, true), h.UpdateRecipe)...)
		recipes.DELETE("/:id", chain(auth, owner, limit(h.limits.Modify, true), h.DeleteRecipe)...)
		recipes.POST("/:id/favorite", chain(auth, limit(h.limits.Favorite, false), h.ToggleFavorite)...)
	}
}

// limit returns the limiter's middleware, or nil when rate limiting is off
func limit(rl *middleware.RateLimiter, perRecipe bool) gin.HandlerFunc {
	if rl == nil {
		return nil
	}
	if perRecipe {
		return rl.PerRecipeRateLimitMiddleware()
	}
	return rl.RateLimitMiddleware()
}

func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

// ListRecipes returns the newest public, published recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch recipes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": types.NewRecipeResponses(recipes)})
}

// ListMyRecipes returns every recipe written by the caller
func (h *RecipeHandler) ListMyRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.ListByAuthor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch your recipes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": types.NewRecipeResponses(recipes)})
}

// ListFavoriteRecipes returns the recipes the caller has liked
func (h *RecipeHandler) ListFavoriteRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch favorite recipes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": types.NewRecipeResponses(recipes)})
}

// SearchRecipes filters public recipes by q, category, cuisine and difficulty
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var params types.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search parameters"})
		return
	}
	recipes, err := h.recipes.Search(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to search recipes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": types.NewRecipeResponses(recipes)})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch recipe")
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeResponse(recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), service.NormalizeRecipe(&req, userID))
	if err != nil {
		respondError(c, err, "Failed to create recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe":  types.NewRecipeResponse(created),
		"message": "Recipe created successfully",
	})
}

// UpdateRecipe applies a partial update. Ownership is checked by the route's
// middleware; the stored author is kept by the service.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), id, service.NormalizeRecipePatch(&req))
	if err != nil {
		respondError(c, err, "Failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe":  types.NewRecipeResponse(updated),
		"message": "Recipe updated successfully",
	})
}

// DeleteRecipe removes the recipe. Deleting a recipe that is already gone
// still succeeds.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, favorited, err := h.recipes.ToggleFavorite(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err, "Failed to update favorite")
		return
	}
	metrics.RecordFavoriteToggle(favorited)

	message := "Recipe removed from favorites"
	if favorited {
		message = "Recipe added to favorites"
	}
	c.JSON(http.StatusOK, gin.H{
		"recipe":    types.NewRecipeResponse(recipe),
		"favorited": favorited,
		"message":   message,
	})
}
