package store

import (
	"context"
	"errors"
	"time"

	"meetapp.app/api/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a unique constraint
var ErrConflict = errors.New("conflict")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

// FileStore defines the contract for uploaded file records
type FileStore interface {
	Create(ctx context.Context, file *model.File) error
	GetByPath(ctx context.Context, path string) (*model.File, error)
}

// MeetupStore defines the contract for meetup data access
type MeetupStore interface {
	GetByID(ctx context.Context, id int64) (*model.Meetup, error)
	// GetDetail loads the meetup with its organizer and current subscriber count.
	GetDetail(ctx context.Context, id int64) (*model.Meetup, error)
	Create(ctx context.Context, meetup *model.Meetup) error
	Update(ctx context.Context, meetup *model.Meetup) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Meetup, error)
	// ListBetween returns meetups dated in [from, to] joined with their organizer.
	ListBetween(ctx context.Context, from, to time.Time, limit, offset int32) ([]model.Meetup, error)
}

// SubscriptionStore defines the contract for subscription data access
type SubscriptionStore interface {
	// LockSubscriber serializes admission for a subscriber until the
	// surrounding transaction ends. Outside a transaction it is a no-op.
	LockSubscriber(ctx context.Context, subscriberID int64) error
	Create(ctx context.Context, sub *model.Subscription) error
	Exists(ctx context.Context, subscriberID, meetupID int64) (bool, error)
	// HasConflict reports whether the subscriber holds a subscription to a
	// meetup other than excludeMeetupID dated exactly at date.
	HasConflict(ctx context.Context, subscriberID int64, date time.Time, excludeMeetupID int64) (bool, error)
	ListMeetups(ctx context.Context, subscriberID int64) ([]model.Meetup, error)
}
