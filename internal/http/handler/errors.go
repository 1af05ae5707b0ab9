package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetapp.app/api/internal/service"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{service.ErrMeetupNotFound, http.StatusBadRequest, "Meetup not found"},
	{service.ErrPastDate, http.StatusBadRequest, "You can't create a meetup in the past"},
	{service.ErrImageNotFound, http.StatusBadRequest, "Image not found or uploaded"},
	{service.ErrEmailTaken, http.StatusBadRequest, "User already exists"},

	{service.ErrNotOrganizer, http.StatusUnauthorized, "You do not have permission to change this meetup"},
	{service.ErrPastMeetupLocked, http.StatusUnauthorized, "You can't change a past meetup"},
	{service.ErrOwnershipTransfer, http.StatusUnauthorized, "You can't transfer meetup ownership"},
	{service.ErrSelfSubscription, http.StatusUnauthorized, "You can't subscribe to your own meetup"},
	{service.ErrPastMeetup, http.StatusUnauthorized, "You can't subscribe to a past meetup"},
	{service.ErrDuplicateSubscription, http.StatusUnauthorized, "You already are subscribed for this meetup"},
	{service.ErrTimeConflict, http.StatusUnauthorized, "You already have another meetup at the same time"},

	{service.ErrUnauthenticated, http.StatusUnauthorized, "Missing authorization token"},
	{service.ErrInvalidToken, http.StatusUnauthorized, "Invalid Token"},
	{service.ErrUserNotRegistered, http.StatusUnauthorized, "User not registered"},
	{service.ErrIncorrectPassword, http.StatusUnauthorized, "Incorrect password"},
	{service.ErrPasswordMismatch, http.StatusUnauthorized, "Password does not match"},

	{service.ErrNotFound, http.StatusBadRequest, "Not found"},
	{service.ErrForbidden, http.StatusUnauthorized, "Operation not permitted"},
	{service.ErrAuthentication, http.StatusUnauthorized, "Not authenticated"},
}

// respondError translates a service error into the {error: string} body.
// Unknown errors are logged and reported as 500 without detail.
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"error": m.message})
			return
		}
	}

	slog.ErrorContext(c.Request.Context(), "request failed", "error", err)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
