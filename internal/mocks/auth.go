package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

var (
	_ service.IAuthService  = (*MockAuthService)(nil)
	_ service.IImageService = (*MockImageService)(nil)
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) GenerateToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

// MockImageService is a mock implementation of the ImageService interface
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) CreateUploadURL(ctx context.Context, userID uuid.UUID, contentType string) (*types.UploadURLResponse, error) {
	args := m.Called(ctx, userID, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UploadURLResponse), args.Error(1)
}

// ClaimsFor returns token claims for userID, for stubbing ValidateToken
func ClaimsFor(userID uuid.UUID, name string) *types.TokenClaims {
	return &types.TokenClaims{UserID: userID, Name: name}
}
