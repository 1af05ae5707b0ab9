package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/service"
	"meetapp.app/api/internal/store"
)

var _ = Describe("MeetupService", func() {
	const (
		organizerID int64 = 100
		strangerID  int64 = 200
		meetupID    int64 = 300
	)

	var (
		ctx         context.Context
		loc         *time.Location
		now         time.Time
		meetupStore *mockMeetupStore
		fileStore   *mockFileStore
		svc         service.MeetupService
	)

	BeforeEach(func() {
		ctx = context.Background()
		loc = time.FixedZone("BRT", -3*60*60)
		now = time.Date(2026, 3, 10, 15, 30, 0, 0, loc)
		meetupStore = &mockMeetupStore{}
		fileStore = &mockFileStore{
			getByPathFn: func(_ context.Context, path string) (*model.File, error) {
				if path == "cover.png" {
					return &model.File{ID: 1, Path: path}, nil
				}
				return nil, store.ErrNotFound
			},
		}
		svc = service.NewMeetupService(meetupStore, fileStore, loc, fixedClock(now))
	})

	validParams := func(date string) service.CreateMeetupParams {
		return service.CreateMeetupParams{
			Title:       "Go Meetup",
			Description: "Talks about Go",
			Location:    "Rua Guilherme Gembala, 260",
			Date:        date,
			Image:       "http://localhost:3333/files/cover.png",
		}
	}

	Describe("Create", func() {
		It("truncates the date to the start of its hour", func() {
			meetup, err := svc.Create(ctx, organizerID, validParams("2026-03-11T18:45:12-03:00"))
			Expect(err).NotTo(HaveOccurred())
			Expect(meetup.Date.Equal(time.Date(2026, 3, 11, 18, 0, 0, 0, loc))).To(BeTrue())
			Expect(meetup.UserID).To(Equal(organizerID))
			Expect(meetupStore.createCalls).To(Equal(1))
		})

		It("reads zoneless dates in the application time zone", func() {
			meetup, err := svc.Create(ctx, organizerID, validParams("2026-03-11T18:00:00"))
			Expect(err).NotTo(HaveOccurred())
			Expect(meetup.Date.Equal(time.Date(2026, 3, 11, 18, 0, 0, 0, loc))).To(BeTrue())
		})

		It("reads a bare date as local midnight", func() {
			meetup, err := svc.Create(ctx, organizerID, validParams("2026-03-12"))
			Expect(err).NotTo(HaveOccurred())
			Expect(meetup.Date.Equal(time.Date(2026, 3, 12, 0, 0, 0, 0, loc))).To(BeTrue())
		})

		It("truncates to the local hour in a half-hour offset zone", func() {
			ist := time.FixedZone("IST", 5*60*60+30*60)
			svc = service.NewMeetupService(meetupStore, fileStore, ist, fixedClock(time.Date(2026, 3, 10, 9, 0, 0, 0, ist)))

			meetup, err := svc.Create(ctx, organizerID, validParams("2026-03-12T18:45:00"))
			Expect(err).NotTo(HaveOccurred())
			Expect(meetup.Date.Equal(time.Date(2026, 3, 12, 18, 0, 0, 0, ist))).To(BeTrue())
		})

		DescribeTable("rejects dates that are not strictly in the future",
			func(date string) {
				_, err := svc.Create(ctx, organizerID, validParams(date))
				Expect(err).To(MatchError(service.ErrPastDate))
				Expect(meetupStore.createCalls).To(BeZero())
			},
			Entry("yesterday", "2026-03-09T18:00:00-03:00"),
			Entry("same hour as now", "2026-03-10T15:59:00-03:00"),
			Entry("exactly now after truncation", "2026-03-10T15:30:00-03:00"),
		)

		It("accepts the next hour", func() {
			_, err := svc.Create(ctx, organizerID, validParams("2026-03-10T16:00:00-03:00"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects an unknown image", func() {
			params := validParams("2026-03-11T18:00:00-03:00")
			params.Image = "http://localhost:3333/files/missing.png"
			_, err := svc.Create(ctx, organizerID, params)
			Expect(err).To(MatchError(service.ErrImageNotFound))
		})

		It("matches the image by its final path segment", func() {
			params := validParams("2026-03-11T18:00:00-03:00")
			params.Image = "https://cdn.example.com/some/prefix/cover.png?v=2"
			_, err := svc.Create(ctx, organizerID, params)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects missing fields", func() {
			params := validParams("2026-03-11T18:00:00-03:00")
			params.Title = ""
			_, err := svc.Create(ctx, organizerID, params)
			Expect(err).To(MatchError(service.ErrValidation))
		})

		It("rejects an unparsable date", func() {
			_, err := svc.Create(ctx, organizerID, validParams("next tuesday"))
			Expect(err).To(MatchError(service.ErrValidation))
		})
	})

	Describe("Update and Delete", func() {
		var stored *model.Meetup

		BeforeEach(func() {
			stored = &model.Meetup{
				ID:     meetupID,
				Title:  "Go Meetup",
				Date:   time.Date(2026, 3, 11, 18, 0, 0, 0, loc),
				Image:  "http://localhost:3333/files/cover.png",
				UserID: organizerID,
			}
			meetupStore.getByIDFn = func(_ context.Context, id int64) (*model.Meetup, error) {
				if id != meetupID {
					return nil, store.ErrNotFound
				}
				m := *stored
				return &m, nil
			}
		})

		It("updates the given fields", func() {
			title := "Gophers Night"
			meetup, err := svc.Update(ctx, meetupID, organizerID, service.MeetupPatch{Title: &title})
			Expect(err).NotTo(HaveOccurred())
			Expect(meetup.Title).To(Equal("Gophers Night"))
			Expect(meetupStore.updateCalls).To(Equal(1))
		})

		It("re-validates a new date", func() {
			date := "2026-03-01T10:00:00-03:00"
			_, err := svc.Update(ctx, meetupID, organizerID, service.MeetupPatch{Date: &date})
			Expect(err).To(MatchError(service.ErrPastDate))
		})

		It("re-validates a new image", func() {
			image := "missing.png"
			_, err := svc.Update(ctx, meetupID, organizerID, service.MeetupPatch{Image: &image})
			Expect(err).To(MatchError(service.ErrImageNotFound))
		})

		It("rejects ownership transfer", func() {
			other := strangerID
			_, err := svc.Update(ctx, meetupID, organizerID, service.MeetupPatch{UserID: &other})
			Expect(err).To(MatchError(service.ErrOwnershipTransfer))
			Expect(meetupStore.updateCalls).To(BeZero())
		})

		It("reports a missing meetup", func() {
			title := "x"
			_, err := svc.Update(ctx, 999, organizerID, service.MeetupPatch{Title: &title})
			Expect(err).To(MatchError(service.ErrMeetupNotFound))
			Expect(err).To(MatchError(service.ErrNotFound))
		})

		for _, offset := range []time.Duration{48 * time.Hour, -48 * time.Hour, 0} {
			It("rejects non-organizers regardless of date", func() {
				stored.Date = now.Add(offset)
				title := "x"
				_, err := svc.Update(ctx, meetupID, strangerID, service.MeetupPatch{Title: &title})
				Expect(err).To(MatchError(service.ErrNotOrganizer))

				err = svc.Delete(ctx, meetupID, strangerID)
				Expect(err).To(MatchError(service.ErrNotOrganizer))
				Expect(meetupStore.deleteCalls).To(BeZero())
			})
		}

		It("treats a meetup dated exactly now as past", func() {
			stored.Date = now
			title := "x"
			_, err := svc.Update(ctx, meetupID, organizerID, service.MeetupPatch{Title: &title})
			Expect(err).To(MatchError(service.ErrPastMeetupLocked))

			err = svc.Delete(ctx, meetupID, organizerID)
			Expect(err).To(MatchError(service.ErrPastMeetupLocked))
		})

		It("deletes an upcoming meetup", func() {
			Expect(svc.Delete(ctx, meetupID, organizerID)).To(Succeed())
			Expect(meetupStore.deleteCalls).To(Equal(1))
		})
	})

	Describe("ListByDate", func() {
		It("queries the whole calendar day in the application zone", func() {
			var from, to time.Time
			var limit, offset int32
			meetupStore.listBetweenFn = func(_ context.Context, f, t time.Time, l, o int32) ([]model.Meetup, error) {
				from, to, limit, offset = f, t, l, o
				return []model.Meetup{}, nil
			}

			_, err := svc.ListByDate(ctx, "2026-03-11", 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(from.Equal(time.Date(2026, 3, 11, 0, 0, 0, 0, loc))).To(BeTrue())
			Expect(to.Equal(time.Date(2026, 3, 11, 23, 59, 59, 999999999, loc))).To(BeTrue())
			Expect(limit).To(Equal(int32(service.PageSize)))
			Expect(offset).To(Equal(int32(service.PageSize)))
		})

		It("accepts a full timestamp", func() {
			var from time.Time
			meetupStore.listBetweenFn = func(_ context.Context, f, _ time.Time, _, _ int32) ([]model.Meetup, error) {
				from = f
				return nil, nil
			}
			_, err := svc.ListByDate(ctx, "2026-03-11T02:00:00Z", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(from.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, loc))).To(BeTrue())
		})

		DescribeTable("rejects a missing or invalid date",
			func(date string) {
				_, err := svc.ListByDate(ctx, date, 1)
				Expect(err).To(MatchError(service.ErrValidation))
				Expect(err.Error()).To(Equal("Invalid or missing date"))
			},
			Entry("missing", ""),
			Entry("garbage", "tomorrow"),
		)

		It("rejects a non-positive page", func() {
			_, err := svc.ListByDate(ctx, "2026-03-11", 0)
			Expect(err).To(MatchError(service.ErrValidation))
		})
	})

	Describe("ListOwnedBy", func() {
		It("returns past and upcoming meetups alike", func() {
			meetupStore.listByUserFn = func(_ context.Context, userID int64) ([]model.Meetup, error) {
				Expect(userID).To(Equal(organizerID))
				return []model.Meetup{
					{ID: 1, Date: now.Add(-time.Hour), UserID: organizerID},
					{ID: 2, Date: now.Add(time.Hour), UserID: organizerID},
				}, nil
			}
			meetups, err := svc.ListOwnedBy(ctx, organizerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(meetups).To(HaveLen(2))
		})
	})
})
