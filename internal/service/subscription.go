package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meetapp.app/api/common/id"
	"meetapp.app/api/common/logger"
	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/queue"
	"meetapp.app/api/internal/store"
)

type SubscribeResult struct {
	Subscription *model.Subscription
	Meetup       *model.Meetup
}

type SubscriptionService interface {
	// Subscribe admits callerID to meetupID. The checks run in order inside
	// one transaction holding a per-subscriber lock; the organizer is
	// notified asynchronously after commit.
	Subscribe(ctx context.Context, meetupID, callerID int64) (*SubscribeResult, error)
	// ListMine returns the upcoming meetups callerID is subscribed to.
	ListMine(ctx context.Context, callerID int64) ([]model.Meetup, error)
}

type subscriptionService struct {
	subscriptionStore store.SubscriptionStore
	txRunner          TxRunner
	queue             queue.Producer
	now               func() time.Time
}

func NewSubscriptionService(subscriptionStore store.SubscriptionStore, txRunner TxRunner, queue queue.Producer, now func() time.Time) SubscriptionService {
	if now == nil {
		now = time.Now
	}
	return &subscriptionService{
		subscriptionStore: subscriptionStore,
		txRunner:          txRunner,
		queue:             queue,
		now:               now,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, meetupID, callerID int64) (*SubscribeResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{MeetupID: &meetupID})

	var (
		meetup       *model.Meetup
		subscriber   *model.User
		subscription *model.Subscription
	)

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Subscriptions().LockSubscriber(ctx, callerID); err != nil {
			return fmt.Errorf("locking subscriber: %w", err)
		}

		var err error
		meetup, err = sp.Meetups().GetDetail(ctx, meetupID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrMeetupNotFound
			}
			return fmt.Errorf("fetching meetup: %w", err)
		}

		if meetup.IsOwnedBy(callerID) {
			return ErrSelfSubscription
		}
		if meetup.IsPast(s.now()) {
			return ErrPastMeetup
		}

		exists, err := sp.Subscriptions().Exists(ctx, callerID, meetupID)
		if err != nil {
			return fmt.Errorf("checking subscription: %w", err)
		}
		if exists {
			return ErrDuplicateSubscription
		}

		conflict, err := sp.Subscriptions().HasConflict(ctx, callerID, meetup.Date, meetupID)
		if err != nil {
			return fmt.Errorf("checking time conflict: %w", err)
		}
		if conflict {
			return ErrTimeConflict
		}

		subscriber, err = sp.Users().GetByID(ctx, callerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotRegistered
			}
			return fmt.Errorf("fetching subscriber: %w", err)
		}

		subscription = &model.Subscription{
			ID:           id.New(),
			SubscriberID: callerID,
			MeetupID:     meetupID,
		}
		if err := sp.Subscriptions().Create(ctx, subscription); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrDuplicateSubscription
			}
			return fmt.Errorf("creating subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{SubscriptionID: &subscription.ID})
	slog.InfoContext(ctx, "subscription created")

	s.notifyOrganizer(ctx, meetup, subscriber, subscription)

	return &SubscribeResult{Subscription: subscription, Meetup: meetup}, nil
}

// notifyOrganizer enqueues the new-subscriber mail. The subscription is
// already committed, so failures are only logged.
func (s *subscriptionService) notifyOrganizer(ctx context.Context, meetup *model.Meetup, subscriber *model.User, subscription *model.Subscription) {
	payload := queue.NewSubscriptionMail{
		SubscriptionID:  subscription.ID,
		MeetupID:        meetup.ID,
		MeetupTitle:     meetup.Title,
		MeetupDate:      meetup.Date,
		SubscriberCount: meetup.SubscriberCount,
		SubscriberName:  subscriber.Name,
		SubscriberEmail: subscriber.Email,
	}
	if meetup.Organizer != nil {
		payload.OrganizerName = meetup.Organizer.Name
		payload.OrganizerEmail = meetup.Organizer.Email
	}

	task, err := queue.NewTask(queue.TaskTypeNewSubscriptionMail, payload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build notification task", "error", err)
		return
	}
	if traceParent := logger.TraceParentFromContext(ctx); traceParent != "" {
		task.TraceParent = &traceParent
	}

	if err := s.queue.Enqueue(ctx, task); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue notification", "error", err)
	}
}

func (s *subscriptionService) ListMine(ctx context.Context, callerID int64) ([]model.Meetup, error) {
	meetups, err := s.subscriptionStore.ListMeetups(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	now := s.now()
	upcoming := make([]model.Meetup, 0, len(meetups))
	for _, m := range meetups {
		if !m.IsPast(now) {
			upcoming = append(upcoming, m)
		}
	}
	return upcoming, nil
}
