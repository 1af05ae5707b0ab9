package dto

import (
	"time"

	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/service"
)

type SubscriptionResponse struct {
	ID           int64     `json:"id,string"`
	SubscriberID int64     `json:"subscriber_id,string"`
	MeetupID     int64     `json:"meetup_id,string"`
	CreatedAt    time.Time `json:"created_at"`
}

type SubscribeResponse struct {
	Subscription *SubscriptionResponse `json:"subscription"`
	Meetup       *MeetupResponse       `json:"meetup"`
}

func ToSubscriptionResponse(s *model.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:           s.ID,
		SubscriberID: s.SubscriberID,
		MeetupID:     s.MeetupID,
		CreatedAt:    s.CreatedAt,
	}
}

func ToSubscribeResponse(r *service.SubscribeResult, now time.Time) *SubscribeResponse {
	return &SubscribeResponse{
		Subscription: ToSubscriptionResponse(r.Subscription),
		Meetup:       ToMeetupResponse(r.Meetup, now),
	}
}
