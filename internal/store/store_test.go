package store_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"meetapp.app/api/core/db/sqlc"
	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/store"
)

func ts(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

var _ = Describe("Stores", func() {
	var (
		ctx    context.Context
		db     *fakeDB
		stores *store.Stores
		date   time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = &fakeDB{}
		stores = store.NewStores(sqlc.New(db))
		date = time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC)
	})

	Describe("SubscriptionStore.HasConflict", func() {
		It("looks for another meetup at the same instant, excluding the target", func() {
			db.row = []any{true}

			conflict, err := stores.Subscriptions().HasConflict(ctx, 7, date, 300)
			Expect(err).NotTo(HaveOccurred())
			Expect(conflict).To(BeTrue())

			Expect(db.sql).To(ContainSubstring("m.date = $2"))
			Expect(db.sql).To(ContainSubstring("m.id <> $3"))
			Expect(db.args).To(Equal([]any{int64(7), ts(date), int64(300)}))
		})
	})

	Describe("SubscriptionStore.Create", func() {
		It("reports a unique violation as a conflict", func() {
			db.rowErr = &pgconn.PgError{Code: "23505", ConstraintName: "subscriptions_subscriber_id_meetup_id_key"}

			err := stores.Subscriptions().Create(ctx, &model.Subscription{ID: 1, SubscriberID: 7, MeetupID: 300})
			Expect(err).To(MatchError(store.ErrConflict))
		})

		It("passes other driver errors through", func() {
			db.rowErr = &pgconn.PgError{Code: "23503"}

			err := stores.Subscriptions().Create(ctx, &model.Subscription{ID: 1, SubscriberID: 7, MeetupID: 300})
			Expect(err).To(HaveOccurred())
			Expect(err).NotTo(MatchError(store.ErrConflict))
		})
	})

	Describe("UserStore.GetByEmail", func() {
		It("maps a missing row to ErrNotFound", func() {
			db.rowErr = pgx.ErrNoRows

			_, err := stores.Users().GetByEmail(ctx, "nobody@example.com")
			Expect(err).To(MatchError(store.ErrNotFound))
			Expect(db.args).To(Equal([]any{"nobody@example.com"}))
		})
	})

	Describe("MeetupStore.ListBetween", func() {
		from := time.Date(2026, 3, 12, 3, 0, 0, 0, time.UTC)
		to := from.Add(24*time.Hour - time.Nanosecond)

		It("binds an inclusive range with the page window", func() {
			meetups, err := stores.Meetups().ListBetween(ctx, from, to, 20, 40)
			Expect(err).NotTo(HaveOccurred())
			Expect(meetups).To(BeEmpty())

			Expect(db.sql).To(ContainSubstring("BETWEEN $1 AND $2"))
			Expect(db.args).To(Equal([]any{ts(from), ts(to), int32(20), int32(40)}))
		})

		It("attaches the organizer to each meetup", func() {
			db.rows = [][]any{{
				int64(300), "Go Meetup", "Talks", "Rua A", ts(date), "cover.png", int64(100),
				ts(date), ts(date), "Olga", "olga@example.com",
			}}

			meetups, err := stores.Meetups().ListBetween(ctx, from, to, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(meetups).To(HaveLen(1))
			Expect(meetups[0].ID).To(Equal(int64(300)))
			Expect(meetups[0].Date.Equal(date)).To(BeTrue())
			Expect(meetups[0].Organizer).To(Equal(&model.Organizer{ID: 100, Name: "Olga", Email: "olga@example.com"}))
		})
	})
})
