package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

type TaskType string

const (
	TaskTypeNewSubscriptionMail TaskType = "new_subscription_mail"
)

// Task is a unit of deferred work. Payload is the JSON encoding of the
// task-specific struct and must be self-contained: handlers cannot rely on
// ordering between tasks or on rereading state that may have changed.
type Task struct {
	TaskType    TaskType
	Payload     json.RawMessage
	TraceParent *string
	Attempt     int
}

// NewTask encodes payload for taskType.
func NewTask(taskType TaskType, payload any) (Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Task{}, fmt.Errorf("encoding %s payload: %w", taskType, err)
	}
	return Task{TaskType: taskType, Payload: raw}, nil
}

// NewSubscriptionMail notifies an organizer that someone subscribed to one of
// their meetups. SubscriberCount is the count before the new subscription.
type NewSubscriptionMail struct {
	SubscriptionID  int64     `json:"subscription_id,string"`
	MeetupID        int64     `json:"meetup_id,string"`
	MeetupTitle     string    `json:"meetup_title"`
	MeetupDate      time.Time `json:"meetup_date"`
	OrganizerName   string    `json:"organizer_name"`
	OrganizerEmail  string    `json:"organizer_email"`
	SubscriberCount int64     `json:"subscriber_count"`
	SubscriberName  string    `json:"subscriber_name"`
	SubscriberEmail string    `json:"subscriber_email"`
}

func (p NewSubscriptionMail) validate() error {
	switch {
	case p.MeetupID == 0:
		return fmt.Errorf("missing meetup_id")
	case p.OrganizerEmail == "":
		return fmt.Errorf("missing organizer_email")
	case p.SubscriberEmail == "":
		return fmt.Errorf("missing subscriber_email")
	}
	return nil
}

// DecodeNewSubscriptionMail decodes and validates a message payload.
func DecodeNewSubscriptionMail(msg Message) (NewSubscriptionMail, error) {
	var p NewSubscriptionMail
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return NewSubscriptionMail{}, fmt.Errorf("decoding payload: %w", err)
	}
	if err := p.validate(); err != nil {
		return NewSubscriptionMail{}, err
	}
	return p, nil
}
