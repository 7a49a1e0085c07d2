package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RecipeOwnerLookup resolves the author of a recipe
type RecipeOwnerLookup interface {
	GetAuthorID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// RequireRecipeOwner lets the request through only when the authenticated
// user wrote the recipe named by the :id path parameter. It must run after
// AuthMiddleware. isNotFound tells absent recipes apart from lookup failures.
func RequireRecipeOwner(lookup RecipeOwnerLookup, isNotFound func(error) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		recipeID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}

		authorID, err := lookup.GetAuthorID(c.Request.Context(), recipeID)
		if err != nil {
			if isNotFound(err) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
				return
			}
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("recipe_id", recipeID.String()).Msg("ownership lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify recipe ownership"})
			return
		}

		if authorID != userID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not authorized to modify this recipe"})
			return
		}

		c.Set(RecipeIDKey, recipeID)
		c.Next()
	}
}
