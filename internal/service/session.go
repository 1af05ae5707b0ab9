package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"meetapp.app/api/common/logger"
	"meetapp.app/api/internal/auth"
	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/store"
)

type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type Session struct {
	User  *model.User
	Token string
}

type SessionService interface {
	Authenticate(ctx context.Context, creds Credentials) (*Session, error)
	// VerifyToken checks an Authorization header value ("Bearer <jwt>") and
	// returns the caller's user id.
	VerifyToken(ctx context.Context, authorization string) (int64, error)
}

type sessionService struct {
	userStore store.UserStore
	tokens    *auth.Tokens
}

func NewSessionService(userStore store.UserStore, tokens *auth.Tokens) SessionService {
	return &sessionService{userStore: userStore, tokens: tokens}
}

func (s *sessionService) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	creds.Email = normalizeEmail(creds.Email)
	if err := validateStruct(creds, "Missing fields"); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.InfoContext(ctx, "login for unknown email", "email", logger.RedactEmail(creds.Email))
			return nil, ErrUserNotRegistered
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, creds.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.InfoContext(ctx, "login with incorrect password", "user_id", user.ID)
		return nil, ErrIncorrectPassword
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "session created", "user_id", user.ID)
	return &Session{User: user, Token: token}, nil
}

func (s *sessionService) VerifyToken(ctx context.Context, authorization string) (int64, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return 0, ErrUnauthenticated
	}

	userID, err := s.tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		slog.DebugContext(ctx, "token rejected", "error", err)
		return 0, ErrInvalidToken
	}
	return userID, nil
}
