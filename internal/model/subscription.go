package model

import "time"

type Subscription struct {
	ID           int64     `json:"id"`
	SubscriberID int64     `json:"subscriber_id"`
	MeetupID     int64     `json:"meetup_id"`
	CreatedAt    time.Time `json:"created_at"`
}
