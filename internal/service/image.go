package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-recipes/backend/config"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Presigner issues upload URLs for object keys. *config.S3Config satisfies it.
type Presigner interface {
	PresignPut(ctx context.Context, objectKey, contentType string) (string, error)
	ObjectURL(objectKey string) string
}

var _ Presigner = (*config.S3Config)(nil)

// ImageService hands out presigned upload targets for recipe images
type ImageService struct {
	storage Presigner
}

// NewImageService creates a new ImageService. A nil storage disables uploads.
func NewImageService(storage Presigner) *ImageService {
	return &ImageService{storage: storage}
}

// CreateUploadURL presigns a PUT for a new object owned by userID. The
// returned image URL is what the client submits as the recipe image.
func (s *ImageService) CreateUploadURL(ctx context.Context, userID uuid.UUID, contentType string) (*types.UploadURLResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	key := fmt.Sprintf("recipes/%s/%s.%s", userID, uuid.New(), ext)
	uploadURL, err := s.storage.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &types.UploadURLResponse{
		UploadURL: uploadURL,
		ImageURL:  s.storage.ObjectURL(key),
		Key:       key,
	}, nil
}
