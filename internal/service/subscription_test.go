package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/queue"
	"meetapp.app/api/internal/service"
	"meetapp.app/api/internal/store"
)

var _ = Describe("SubscriptionService", func() {
	const (
		organizerID  int64 = 1
		subscriberID int64 = 2
	)

	var (
		ctx           context.Context
		now           time.Time
		meetups       map[int64]*model.Meetup
		rows          []model.Subscription
		meetupStore   *mockMeetupStore
		subStore      *mockSubscriptionStore
		userStore     *mockUserStore
		txRunner      *mockTxRunner
		producer      *mockProducer
		svc           service.SubscriptionService
		addMeetup     func(id int64, date time.Time)
		subscribeOnce func(meetupID int64) error
	)

	BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		meetups = map[int64]*model.Meetup{}
		rows = nil

		addMeetup = func(id int64, date time.Time) {
			meetups[id] = &model.Meetup{
				ID:        id,
				Title:     "Meetup",
				Date:      date,
				UserID:    organizerID,
				Organizer: &model.Organizer{ID: organizerID, Name: "Olga", Email: "olga@example.com"},
			}
		}

		meetupStore = &mockMeetupStore{
			getDetailFn: func(_ context.Context, id int64) (*model.Meetup, error) {
				m, ok := meetups[id]
				if !ok {
					return nil, store.ErrNotFound
				}
				cp := *m
				for _, r := range rows {
					if r.MeetupID == id {
						cp.SubscriberCount++
					}
				}
				return &cp, nil
			},
		}
		subStore = &mockSubscriptionStore{
			existsFn: func(_ context.Context, sid, mid int64) (bool, error) {
				for _, r := range rows {
					if r.SubscriberID == sid && r.MeetupID == mid {
						return true, nil
					}
				}
				return false, nil
			},
			hasConflictFn: func(_ context.Context, sid int64, date time.Time, exclude int64) (bool, error) {
				for _, r := range rows {
					if r.SubscriberID == sid && r.MeetupID != exclude && meetups[r.MeetupID].Date.Equal(date) {
						return true, nil
					}
				}
				return false, nil
			},
			createFn: func(_ context.Context, sub *model.Subscription) error {
				for _, r := range rows {
					if r.SubscriberID == sub.SubscriberID && r.MeetupID == sub.MeetupID {
						return errors.Join(store.ErrConflict, errors.New("23505"))
					}
				}
				rows = append(rows, *sub)
				return nil
			},
			listMeetupsFn: func(_ context.Context, sid int64) ([]model.Meetup, error) {
				var out []model.Meetup
				for _, r := range rows {
					if r.SubscriberID == sid {
						out = append(out, *meetups[r.MeetupID])
					}
				}
				return out, nil
			},
		}
		userStore = &mockUserStore{
			getByIDFn: func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, Name: "Ulisses", Email: "ulisses@example.com"}, nil
			},
		}
		txRunner = &mockTxRunner{stores: &mockStoreProvider{
			users:         userStore,
			meetups:       meetupStore,
			subscriptions: subStore,
		}}
		producer = &mockProducer{}
		svc = service.NewSubscriptionService(subStore, txRunner, producer, fixedClock(now))

		subscribeOnce = func(meetupID int64) error {
			_, err := svc.Subscribe(ctx, meetupID, subscriberID)
			return err
		}
	})

	Describe("Subscribe", func() {
		It("creates the subscription and enqueues the organizer mail", func() {
			addMeetup(10, now.Add(24*time.Hour))
			rows = append(rows, model.Subscription{ID: 99, SubscriberID: 3, MeetupID: 10})

			result, err := svc.Subscribe(ctx, 10, subscriberID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Subscription.ID).NotTo(BeZero())
			Expect(result.Subscription.SubscriberID).To(Equal(subscriberID))
			Expect(result.Meetup.ID).To(Equal(int64(10)))
			Expect(subStore.lockCalls).To(Equal(1))

			Expect(producer.tasks).To(HaveLen(1))
			task := producer.tasks[0]
			Expect(task.TaskType).To(Equal(queue.TaskTypeNewSubscriptionMail))

			var payload queue.NewSubscriptionMail
			Expect(json.Unmarshal(task.Payload, &payload)).To(Succeed())
			Expect(payload.SubscriberCount).To(Equal(int64(1)))
			Expect(payload.OrganizerEmail).To(Equal("olga@example.com"))
			Expect(payload.SubscriberName).To(Equal("Ulisses"))
		})

		It("fails with not found for an unknown meetup", func() {
			Expect(subscribeOnce(404)).To(MatchError(service.ErrMeetupNotFound))
		})

		It("rejects the organizer", func() {
			addMeetup(10, now.Add(time.Hour))
			_, err := svc.Subscribe(ctx, 10, organizerID)
			Expect(err).To(MatchError(service.ErrSelfSubscription))
		})

		It("rejects past meetups, including one dated exactly now", func() {
			addMeetup(10, now)
			Expect(subscribeOnce(10)).To(MatchError(service.ErrPastMeetup))
		})

		It("checks self subscription before the past check", func() {
			addMeetup(10, now.Add(-time.Hour))
			_, err := svc.Subscribe(ctx, 10, organizerID)
			Expect(err).To(MatchError(service.ErrSelfSubscription))
		})

		It("never creates two rows for the same pair", func() {
			addMeetup(10, now.Add(time.Hour))
			Expect(subscribeOnce(10)).To(Succeed())
			Expect(subscribeOnce(10)).To(MatchError(service.ErrDuplicateSubscription))
			Expect(rows).To(HaveLen(1))
			Expect(producer.tasks).To(HaveLen(1))
		})

		It("maps a unique violation at insert to a duplicate", func() {
			addMeetup(10, now.Add(time.Hour))
			subStore.existsFn = func(context.Context, int64, int64) (bool, error) { return false, nil }
			rows = append(rows, model.Subscription{ID: 1, SubscriberID: subscriberID, MeetupID: 10})

			Expect(subscribeOnce(10)).To(MatchError(service.ErrDuplicateSubscription))
			Expect(producer.tasks).To(BeEmpty())
		})

		It("rejects a second meetup at the exact same time but allows an hour later", func() {
			t := now.Add(48 * time.Hour)
			addMeetup(10, t)
			addMeetup(11, t)
			addMeetup(12, t.Add(time.Hour))

			Expect(subscribeOnce(10)).To(Succeed())
			Expect(subscribeOnce(11)).To(MatchError(service.ErrTimeConflict))
			Expect(subscribeOnce(12)).To(Succeed())
		})

		It("does not insert or enqueue when the transaction fails", func() {
			addMeetup(10, now.Add(time.Hour))
			txRunner.withTxFn = func(context.Context, func(service.StoreProvider) error) error {
				return errors.New("connection reset")
			}

			Expect(subscribeOnce(10)).To(MatchError(ContainSubstring("connection reset")))
			Expect(rows).To(BeEmpty())
			Expect(producer.tasks).To(BeEmpty())
		})

		It("succeeds even when enqueueing fails", func() {
			addMeetup(10, now.Add(time.Hour))
			producer.enqueueFn = func(context.Context, queue.Task) error {
				return errors.New("redis down")
			}

			Expect(subscribeOnce(10)).To(Succeed())
			Expect(rows).To(HaveLen(1))
		})
	})

	Describe("ListMine", func() {
		It("omits past meetups without deleting the rows", func() {
			addMeetup(10, now.Add(-time.Hour))
			addMeetup(11, now)
			addMeetup(12, now.Add(time.Hour))
			for _, mid := range []int64{10, 11, 12} {
				rows = append(rows, model.Subscription{ID: mid, SubscriberID: subscriberID, MeetupID: mid})
			}

			meetups, err := svc.ListMine(ctx, subscriberID)
			Expect(err).NotTo(HaveOccurred())
			Expect(meetups).To(HaveLen(1))
			Expect(meetups[0].ID).To(Equal(int64(12)))
			Expect(rows).To(HaveLen(3))
		})
	})
})
