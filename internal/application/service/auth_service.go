package service

import (
	"context"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/ajjawam/ajjawam-api/pkg/utils"
	"github.com/google/uuid"
)

// AuthService handles authentication and operator account management. There
// is no self-registration: admins create store accounts.
type AuthService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.TenantID, user.StoreID, user.Role.String())
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken exchanges a refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrUnauthorized
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.TenantID, user.StoreID, user.Role.String())
	if err != nil {
		return nil, err
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// CreateUserInput represents the create user input (admin only)
type CreateUserInput struct {
	Name     string
	Username string
	Password string
	Role     enum.UserRole
	StoreID  *uuid.UUID
}

// CreateUser creates an operator account. Store users must be bound to an
// existing store.
func (s *AuthService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if !input.Role.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown role")
	}
	if input.Role == enum.UserRoleStore && input.StoreID == nil {
		return nil, apperror.NewBadRequestError("Store users must be assigned a store")
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewBadRequestError("Password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	if input.StoreID != nil {
		store, err := s.storeRepo.GetByID(ctx, *input.StoreID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, apperror.NewNotFoundError("Store")
		}
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		TenantID: tenantID,
		StoreID:  input.StoreID,
		Name:     input.Name,
		Username: input.Username,
		Password: hashedPassword,
		Role:     input.Role,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// ChangePassword verifies the current password and replaces it
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}
	if len(input.NewPassword) < 8 {
		return apperror.NewBadRequestError("Password must be at least 8 characters")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// GetProfile retrieves the authenticated user
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers lists the tenant's operator accounts
func (s *AuthService) ListUsers(ctx context.Context) ([]entity.User, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	return s.userRepo.List(ctx, tenantID)
}

// SetUserActive enables or disables an operator account
func (s *AuthService) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	user.Active = active
	return s.userRepo.Update(ctx, user)
}
