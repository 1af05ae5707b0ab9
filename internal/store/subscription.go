package store

import (
	"context"
	"time"

	"meetapp.app/api/core/db/sqlc"
	"meetapp.app/api/internal/model"
)

type subscriptionStore struct {
	queries *sqlc.Queries
}

func newSubscriptionStore(queries *sqlc.Queries) SubscriptionStore {
	return &subscriptionStore{queries: queries}
}

func (s *subscriptionStore) LockSubscriber(ctx context.Context, subscriberID int64) error {
	return s.queries.LockSubscriber(ctx, subscriberID)
}

func (s *subscriptionStore) Create(ctx context.Context, sub *model.Subscription) error {
	row, err := s.queries.CreateSubscription(ctx, sqlc.CreateSubscriptionParams{
		ID:           sub.ID,
		SubscriberID: sub.SubscriberID,
		MeetupID:     sub.MeetupID,
	})
	if err != nil {
		return translateErr(err)
	}
	*sub = model.Subscription{
		ID:           row.ID,
		SubscriberID: row.SubscriberID,
		MeetupID:     row.MeetupID,
		CreatedAt:    row.CreatedAt.Time,
	}
	return nil
}

func (s *subscriptionStore) Exists(ctx context.Context, subscriberID, meetupID int64) (bool, error) {
	return s.queries.SubscriptionExists(ctx, sqlc.SubscriptionExistsParams{
		SubscriberID: subscriberID,
		MeetupID:     meetupID,
	})
}

func (s *subscriptionStore) HasConflict(ctx context.Context, subscriberID int64, date time.Time, excludeMeetupID int64) (bool, error) {
	return s.queries.HasSubscriptionAt(ctx, sqlc.HasSubscriptionAtParams{
		SubscriberID: subscriberID,
		Date:         timestamptz(date),
		ID:           excludeMeetupID,
	})
}

func (s *subscriptionStore) ListMeetups(ctx context.Context, subscriberID int64) ([]model.Meetup, error) {
	rows, err := s.queries.ListSubscribedMeetups(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	meetups := make([]model.Meetup, len(rows))
	for i, row := range rows {
		meetups[i] = *toMeetupModel(row)
	}
	return meetups, nil
}
