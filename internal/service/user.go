package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"meetapp.app/api/common/id"
	"meetapp.app/api/common/logger"
	"meetapp.app/api/internal/auth"
	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/store"
)

type RegisterParams struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// ProfileUpdate holds the fields a user may change on their own account.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name            *string `validate:"omitempty,min=1"`
	Email           *string `validate:"omitempty,email"`
	OldPassword     *string
	Password        *string `validate:"omitempty,min=6"`
	ConfirmPassword *string
}

type UserService interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*model.User, error)
}

type userService struct {
	userStore store.UserStore
}

func NewUserService(userStore store.UserStore) UserService {
	return &userService{userStore: userStore}
}

func (s *userService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	params.Email = normalizeEmail(params.Email)
	params.Name = strings.TrimSpace(params.Name)
	if err := validateStruct(params, "Invalid or missing fields"); err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, params.Email, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           id.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrEmailTaken
		}
		slog.ErrorContext(ctx, "failed to create user",
			"error", err,
			"email", logger.RedactEmail(params.Email),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*model.User, error) {
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		update.Email = &email
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}
	if err := validateStruct(update, "Invalid fields"); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotRegistered
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if update.Email != nil && *update.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *update.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *update.Email
	}

	if update.Password != nil {
		if update.OldPassword == nil || *update.OldPassword == "" {
			return nil, NewValidationError("Old password is required to set a new password")
		}
		if update.ConfirmPassword == nil || *update.ConfirmPassword != *update.Password {
			return nil, NewValidationError("Password confirmation does not match")
		}
		ok, err := auth.CheckPassword(user.PasswordHash, *update.OldPassword)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrPasswordMismatch
		}
		hash, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if update.Name != nil {
		user.Name = *update.Name
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	slog.InfoContext(ctx, "user profile updated", "user_id", user.ID)
	return user, nil
}

// ensureEmailFree fails with ErrEmailTaken when email belongs to a user other
// than selfID.
func (s *userService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.userStore.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("checking email: %w", err)
	case existing.ID != selfID:
		return ErrEmailTaken
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
