package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/alchemorsel-recipes/backend/internal/middleware"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

// ImageHandler hands out presigned upload URLs for recipe images
type ImageHandler struct {
	imageService service.IImageService
	authService  middleware.TokenValidator
	rateLimiter  *middleware.RateLimiter
}

// NewImageHandler creates a new image handler. rateLimiter may be nil.
func NewImageHandler(imageService service.IImageService, authService middleware.TokenValidator, rateLimiter *middleware.RateLimiter) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		authService:  authService,
		rateLimiter:  rateLimiter,
	}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/images/upload-url",
		chain(middleware.AuthMiddleware(h.authService), limit(h.rateLimiter, false), h.CreateUploadURL)...)
}

// CreateUploadURL returns a presigned PUT target; the client uploads the
// file there and submits imageUrl as the recipe image.
func (h *ImageHandler) CreateUploadURL(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contentType must be one of image/jpeg, image/png, image/webp"})
		return
	}

	resp, err := h.imageService.CreateUploadURL(c.Request.Context(), userID, req.ContentType)
	if errors.Is(err, service.ErrStorageDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not available"})
		return
	}
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to presign image upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
