package service

import (
	"errors"
	"fmt"
)

// Error families. Handlers match on these with errors.Is to pick a status.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrAuthentication = errors.New("authentication failed")
)

var (
	ErrMeetupNotFound = fmt.Errorf("meetup %w", ErrNotFound)
	ErrPastDate       = errors.New("meetup date is not in the future")
	ErrImageNotFound  = errors.New("image not found")
	ErrEmailTaken     = errors.New("email already registered")

	ErrNotOrganizer          = fmt.Errorf("%w: caller is not the organizer", ErrForbidden)
	ErrPastMeetupLocked      = fmt.Errorf("%w: past meetup is immutable", ErrForbidden)
	ErrOwnershipTransfer     = fmt.Errorf("%w: meetup ownership cannot change", ErrForbidden)
	ErrSelfSubscription      = fmt.Errorf("%w: organizer cannot subscribe", ErrForbidden)
	ErrPastMeetup            = fmt.Errorf("%w: meetup already happened", ErrForbidden)
	ErrDuplicateSubscription = fmt.Errorf("%w: already subscribed", ErrForbidden)
	ErrTimeConflict          = fmt.Errorf("%w: another subscription at the same time", ErrForbidden)

	ErrUnauthenticated   = fmt.Errorf("%w: missing token", ErrAuthentication)
	ErrInvalidToken      = fmt.Errorf("%w: invalid token", ErrAuthentication)
	ErrUserNotRegistered = fmt.Errorf("%w: user not registered", ErrAuthentication)
	ErrIncorrectPassword = fmt.Errorf("%w: incorrect password", ErrAuthentication)
	// ErrPasswordMismatch is a wrong current password on a profile update.
	ErrPasswordMismatch = fmt.Errorf("%w: old password does not match", ErrAuthentication)
)

// ValidationError carries a message safe to return to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
