package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/alchemorsel-recipes/backend/internal/middleware"
	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
)

const errRecipeNotFound = "Recipe not found"

// respondError maps a service error onto a status code. Validation and
// not-found errors carry their own message; anything else is logged and
// reported with the fixed internalMsg.
func respondError(c *gin.Context, err error, internalMsg string) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": errRecipeNotFound})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg(internalMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}

// recipeID returns the :id path parameter, preferring the value already
// parsed by the ownership gate. A malformed id is reported as not found.
func recipeID(c *gin.Context) (uuid.UUID, bool) {
	if id, ok := middleware.GetRecipeID(c); ok {
		return id, true
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errRecipeNotFound})
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the authenticated user, answering 401 if there is none
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}
