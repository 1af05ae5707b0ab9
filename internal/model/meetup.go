package model

import "time"

type Meetup struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	Image       string    `json:"image"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Loaded only by the detail and by-date queries.
	Organizer       *Organizer `json:"organizer,omitempty"`
	SubscriberCount int64      `json:"-"`
}

// Organizer is the public projection of the user owning a meetup.
type Organizer struct {
	ID    int64  `json:"-"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IsPast reports whether the meetup has already started at now. A meetup dated
// exactly now is past.
func (m *Meetup) IsPast(now time.Time) bool {
	return !m.Date.After(now)
}

// IsOwnedBy reports whether userID organizes the meetup.
func (m *Meetup) IsOwnedBy(userID int64) bool {
	return m.UserID == userID
}
