package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/animexapp/animex-server/internal/auth"
	"github.com/animexapp/animex-server/internal/domain"
	domainerrors "github.com/animexapp/animex-server/internal/errors"
	"github.com/animexapp/animex-server/internal/normalize"
	"github.com/animexapp/animex-server/internal/store"
	"github.com/animexapp/animex-server/internal/validation"
)

// ProfileService manages the caller's own account.
type ProfileService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store store.Store, validator *validation.Validator, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: store, validator: validator, logger: logger}
}

// Get returns the caller's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.GetUser(ctx, userID)
}

// UpdateProfileRequest contains optional profile updates.
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=2,max=50"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	Country   *string `json:"country" validate:"omitempty,max=100"`
	Language  *string `json:"language" validate:"omitempty,max=20"`
}

// Update applies a partial update to the caller's profile.
func (s *ProfileService) Update(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Country != nil {
		code := normalize.CountryCode(*req.Country)
		if code == "" && *req.Country != "" {
			return nil, domainerrors.Validationf("unrecognized country: %s", *req.Country)
		}
		user.Country = code
	}
	if req.Language != nil {
		code := normalize.LanguageCode(*req.Language)
		if code == "" && *req.Language != "" {
			return nil, domainerrors.Validationf("unsupported language: %s", *req.Language)
		}
		user.Language = code
	}
	user.UpdatedAt = time.Now()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePasswordRequest carries the current and replacement passwords.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=1024"`
}

// ChangePassword verifies the current password, replaces the hash, and
// revokes every other session so stolen refresh tokens die with it.
func (s *ProfileService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.InvalidCredentials("current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return err
	}

	if err := s.store.DeleteAllUserSessions(ctx, userID); err != nil {
		s.logger.Warn("failed to revoke sessions after password change", "user_id", userID, "error", err)
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}
