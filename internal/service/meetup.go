package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"meetapp.app/api/common/id"
	"meetapp.app/api/common/logger"
	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/store"
)

// PageSize is the number of meetups per page of ListByDate.
const PageSize = 20

// Date layouts accepted for meetup dates. Layouts without a zone are read in
// the application time zone.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

type CreateMeetupParams struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Location    string `validate:"required"`
	Date        string `validate:"required"`
	Image       string `validate:"required"`
}

// MeetupPatch holds the fields to change on a meetup. Nil fields are left
// untouched. UserID is accepted only so that ownership transfer can be
// rejected explicitly.
type MeetupPatch struct {
	Title       *string `validate:"omitempty,min=1"`
	Description *string `validate:"omitempty,min=1"`
	Location    *string `validate:"omitempty,min=1"`
	Date        *string `validate:"omitempty,min=1"`
	Image       *string `validate:"omitempty,min=1"`
	UserID      *int64
}

type MeetupService interface {
	ListOwnedBy(ctx context.Context, userID int64) ([]model.Meetup, error)
	// ListByDate returns one page of the meetups on the calendar day of date.
	ListByDate(ctx context.Context, date string, page int) ([]model.Meetup, error)
	Create(ctx context.Context, organizerID int64, params CreateMeetupParams) (*model.Meetup, error)
	Update(ctx context.Context, meetupID, callerID int64, patch MeetupPatch) (*model.Meetup, error)
	Delete(ctx context.Context, meetupID, callerID int64) error
}

type meetupService struct {
	meetupStore store.MeetupStore
	fileStore   store.FileStore
	loc         *time.Location
	now         func() time.Time
}

func NewMeetupService(meetupStore store.MeetupStore, fileStore store.FileStore, loc *time.Location, now func() time.Time) MeetupService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &meetupService{
		meetupStore: meetupStore,
		fileStore:   fileStore,
		loc:         loc,
		now:         now,
	}
}

func (s *meetupService) ListOwnedBy(ctx context.Context, userID int64) ([]model.Meetup, error) {
	meetups, err := s.meetupStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing meetups: %w", err)
	}
	return meetups, nil
}

func (s *meetupService) ListByDate(ctx context.Context, date string, page int) ([]model.Meetup, error) {
	day, err := s.parseDay(date)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, NewValidationError("Invalid page")
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	meetups, err := s.meetupStore.ListBetween(ctx, start, end, PageSize, int32((page-1)*PageSize))
	if err != nil {
		return nil, fmt.Errorf("listing meetups by date: %w", err)
	}
	return meetups, nil
}

func (s *meetupService) Create(ctx context.Context, organizerID int64, params CreateMeetupParams) (*model.Meetup, error) {
	if err := validateStruct(params, "Invalid or missing fields"); err != nil {
		return nil, err
	}

	date, err := s.parseFutureDate(params.Date)
	if err != nil {
		return nil, err
	}

	if err := s.ensureImage(ctx, params.Image); err != nil {
		return nil, err
	}

	meetup := &model.Meetup{
		ID:          id.New(),
		Title:       params.Title,
		Description: params.Description,
		Location:    params.Location,
		Date:        date,
		Image:       params.Image,
		UserID:      organizerID,
	}

	if err := s.meetupStore.Create(ctx, meetup); err != nil {
		return nil, fmt.Errorf("creating meetup: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{MeetupID: &meetup.ID})
	slog.InfoContext(ctx, "meetup created", "date", meetup.Date)
	return meetup, nil
}

func (s *meetupService) Update(ctx context.Context, meetupID, callerID int64, patch MeetupPatch) (*model.Meetup, error) {
	if err := validateStruct(patch, "Invalid fields"); err != nil {
		return nil, err
	}

	meetup, err := s.meetupStore.GetDetail(ctx, meetupID)
	if err != nil {
		return nil, s.lookupErr(err)
	}
	if err := s.ensureMutable(meetup, callerID); err != nil {
		return nil, err
	}

	if patch.Date != nil {
		date, err := s.parseFutureDate(*patch.Date)
		if err != nil {
			return nil, err
		}
		meetup.Date = date
	}

	if patch.Image != nil {
		if err := s.ensureImage(ctx, *patch.Image); err != nil {
			return nil, err
		}
		meetup.Image = *patch.Image
	}

	if patch.UserID != nil && *patch.UserID != meetup.UserID {
		return nil, ErrOwnershipTransfer
	}

	if patch.Title != nil {
		meetup.Title = *patch.Title
	}
	if patch.Description != nil {
		meetup.Description = *patch.Description
	}
	if patch.Location != nil {
		meetup.Location = *patch.Location
	}

	if err := s.meetupStore.Update(ctx, meetup); err != nil {
		return nil, fmt.Errorf("updating meetup: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{MeetupID: &meetup.ID})
	slog.InfoContext(ctx, "meetup updated")
	return meetup, nil
}

func (s *meetupService) Delete(ctx context.Context, meetupID, callerID int64) error {
	meetup, err := s.meetupStore.GetByID(ctx, meetupID)
	if err != nil {
		return s.lookupErr(err)
	}
	if err := s.ensureMutable(meetup, callerID); err != nil {
		return err
	}

	if err := s.meetupStore.Delete(ctx, meetupID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMeetupNotFound
		}
		return fmt.Errorf("deleting meetup: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{MeetupID: &meetupID})
	slog.InfoContext(ctx, "meetup deleted")
	return nil
}

func (s *meetupService) ensureMutable(meetup *model.Meetup, callerID int64) error {
	if !meetup.IsOwnedBy(callerID) {
		return ErrNotOrganizer
	}
	if meetup.IsPast(s.now()) {
		return ErrPastMeetupLocked
	}
	return nil
}

func (s *meetupService) lookupErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrMeetupNotFound
	}
	return fmt.Errorf("fetching meetup: %w", err)
}

// parseFutureDate truncates raw to the start of its hour on the local clock
// and requires the result to be strictly after now.
func (s *meetupService) parseFutureDate(raw string) (time.Time, error) {
	date, err := s.parseDateTime(raw)
	if err != nil {
		return time.Time{}, NewValidationError("Invalid date")
	}
	local := date.In(s.loc)
	date = time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, s.loc)
	if !date.After(s.now()) {
		return time.Time{}, ErrPastDate
	}
	return date, nil
}

func (s *meetupService) parseDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, s.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// parseDay accepts a bare calendar date or any full timestamp and returns it
// in the application time zone.
func (s *meetupService) parseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, NewValidationError("Invalid or missing date")
	}
	if t, err := time.ParseInLocation(time.DateOnly, raw, s.loc); err == nil {
		return t, nil
	}
	t, err := s.parseDateTime(raw)
	if err != nil {
		return time.Time{}, NewValidationError("Invalid or missing date")
	}
	return t.In(s.loc), nil
}

// ensureImage resolves an image reference (a URL or bare key) to a recorded
// upload by its final path segment.
func (s *meetupService) ensureImage(ctx context.Context, ref string) error {
	key := imageKey(ref)
	if key == "" {
		return ErrImageNotFound
	}
	if _, err := s.fileStore.GetByPath(ctx, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("looking up image: %w", err)
	}
	return nil
}

func imageKey(ref string) string {
	ref = strings.TrimSpace(ref)
	p := ref
	if u, err := url.Parse(ref); err == nil {
		p = u.Path
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
