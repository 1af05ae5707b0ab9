package store

import (
	"context"
	"time"

	"meetapp.app/api/core/db/sqlc"
	"meetapp.app/api/internal/model"
)

type meetupStore struct {
	queries *sqlc.Queries
}

func newMeetupStore(queries *sqlc.Queries) MeetupStore {
	return &meetupStore{queries: queries}
}

func (s *meetupStore) GetByID(ctx context.Context, id int64) (*model.Meetup, error) {
	row, err := s.queries.GetMeetup(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	return toMeetupModel(row), nil
}

func (s *meetupStore) GetDetail(ctx context.Context, id int64) (*model.Meetup, error) {
	row, err := s.queries.GetMeetupDetail(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	m := toMeetupModel(sqlc.Meetup{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Location:    row.Location,
		Date:        row.Date,
		Image:       row.Image,
		UserID:      row.UserID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	})
	m.Organizer = &model.Organizer{ID: row.UserID, Name: row.OrganizerName, Email: row.OrganizerEmail}
	m.SubscriberCount = row.SubscriberCount
	return m, nil
}

func (s *meetupStore) Create(ctx context.Context, meetup *model.Meetup) error {
	row, err := s.queries.CreateMeetup(ctx, sqlc.CreateMeetupParams{
		ID:          meetup.ID,
		Title:       meetup.Title,
		Description: meetup.Description,
		Location:    meetup.Location,
		Date:        timestamptz(meetup.Date),
		Image:       meetup.Image,
		UserID:      meetup.UserID,
	})
	if err != nil {
		return translateErr(err)
	}
	*meetup = *toMeetupModel(row)
	return nil
}

// Update persists the mutable columns. user_id is never written.
func (s *meetupStore) Update(ctx context.Context, meetup *model.Meetup) error {
	row, err := s.queries.UpdateMeetup(ctx, sqlc.UpdateMeetupParams{
		ID:          meetup.ID,
		Title:       meetup.Title,
		Description: meetup.Description,
		Location:    meetup.Location,
		Date:        timestamptz(meetup.Date),
		Image:       meetup.Image,
	})
	if err != nil {
		return translateErr(err)
	}
	organizer := meetup.Organizer
	*meetup = *toMeetupModel(row)
	meetup.Organizer = organizer
	return nil
}

func (s *meetupStore) Delete(ctx context.Context, id int64) error {
	return translateErr(s.queries.DeleteMeetup(ctx, id))
}

func (s *meetupStore) ListByUser(ctx context.Context, userID int64) ([]model.Meetup, error) {
	rows, err := s.queries.ListMeetupsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	meetups := make([]model.Meetup, len(rows))
	for i, row := range rows {
		meetups[i] = *toMeetupModel(row)
	}
	return meetups, nil
}

func (s *meetupStore) ListBetween(ctx context.Context, from, to time.Time, limit, offset int32) ([]model.Meetup, error) {
	rows, err := s.queries.ListMeetupsBetween(ctx, sqlc.ListMeetupsBetweenParams{
		StartsAt:  timestamptz(from),
		EndsAt:    timestamptz(to),
		RowLimit:  limit,
		RowOffset: offset,
	})
	if err != nil {
		return nil, err
	}
	meetups := make([]model.Meetup, len(rows))
	for i, row := range rows {
		m := toMeetupModel(sqlc.Meetup{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			Location:    row.Location,
			Date:        row.Date,
			Image:       row.Image,
			UserID:      row.UserID,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
		m.Organizer = &model.Organizer{ID: row.UserID, Name: row.OrganizerName, Email: row.OrganizerEmail}
		meetups[i] = *m
	}
	return meetups, nil
}

func toMeetupModel(row sqlc.Meetup) *model.Meetup {
	return &model.Meetup{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Location:    row.Location,
		Date:        row.Date.Time,
		Image:       row.Image,
		UserID:      row.UserID,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
