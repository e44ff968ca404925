package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gift-registry-platform/internal/models"
	"gift-registry-platform/internal/utils"
)

// AuthService handles owner account registration and login. Guests never
// authenticate; only page owners have accounts.
type AuthService struct {
	users UserRepository
}

func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new owner account
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := models.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, err.Error())
	}
	if err := models.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, err.Error())
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", models.ErrInvalidInput)
	} else if err != models.ErrUserNotFound {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the owner account. The same error
// is returned for a missing account and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err == models.ErrUserNotFound {
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, models.ErrUnauthorized
	}
	return user, nil
}

// UpdateEmail changes the account email after verifying the current password.
func (s *AuthService) UpdateEmail(ctx context.Context, userID, newEmail, currentPassword string) error {
	newEmail = strings.TrimSpace(strings.ToLower(newEmail))
	if err := models.ValidateEmail(newEmail); err != nil {
		return fmt.Errorf("%w: %s", models.ErrInvalidInput, err.Error())
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := utils.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil || !ok {
		return models.ErrUnauthorized
	}

	if existing, err := s.users.GetByEmail(ctx, newEmail); err == nil && existing.ID != userID {
		return fmt.Errorf("%w: email already registered", models.ErrInvalidInput)
	} else if err != nil && err != models.ErrUserNotFound {
		return err
	}

	return s.users.UpdateEmail(ctx, userID, newEmail)
}

// UpdatePassword changes the account password after verifying the current one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := models.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %s", models.ErrInvalidInput, err.Error())
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := utils.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil || !ok {
		return models.ErrUnauthorized
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}
