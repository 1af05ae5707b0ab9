package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetapp.app/api/common/logger"
	"meetapp.app/api/internal/service"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// RequireAuth verifies the bearer token and attaches the caller's id to the
// request context.
func RequireAuth(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userID, err := sessions.VerifyToken(ctx, c.GetHeader("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnauthenticated):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization token"})
			case errors.Is(err, service.ErrInvalidToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Token"})
			default:
				slog.ErrorContext(ctx, "failed to verify token", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}

		ctx = context.WithValue(ctx, userIDContextKey, userID)
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &userID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// UserID returns the authenticated caller set by RequireAuth, or 0.
func UserID(ctx context.Context) int64 {
	userID, _ := ctx.Value(userIDContextKey).(int64)
	return userID
}

// WithUserID is used by tests that mount handlers without RequireAuth.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
