package dto

import (
	"time"

	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/service"
)

type CreateMeetupRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Image       string `json:"image"`
}

func (r CreateMeetupRequest) Params() service.CreateMeetupParams {
	return service.CreateMeetupParams{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Date:        r.Date,
		Image:       r.Image,
	}
}

type UpdateMeetupRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Date        *string `json:"date,omitempty"`
	Image       *string `json:"image,omitempty"`
	UserID      *ID     `json:"user_id,omitempty"`
}

func (r UpdateMeetupRequest) Patch() service.MeetupPatch {
	patch := service.MeetupPatch{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Date:        r.Date,
		Image:       r.Image,
	}
	if r.UserID != nil {
		userID := int64(*r.UserID)
		patch.UserID = &userID
	}
	return patch
}

type OrganizerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MeetupResponse struct {
	ID          int64              `json:"id,string"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	Date        time.Time          `json:"date"`
	Image       string             `json:"image"`
	UserID      int64              `json:"user_id,string"`
	Past        bool               `json:"past"`
	Organizer   *OrganizerResponse `json:"organizer,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ToMeetupResponse renders m as seen at now. past is derived, never stored.
func ToMeetupResponse(m *model.Meetup, now time.Time) *MeetupResponse {
	resp := &MeetupResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		Date:        m.Date,
		Image:       m.Image,
		UserID:      m.UserID,
		Past:        m.IsPast(now),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Organizer != nil {
		resp.Organizer = &OrganizerResponse{
			Name:  m.Organizer.Name,
			Email: m.Organizer.Email,
		}
	}
	return resp
}

func ToMeetupResponses(meetups []model.Meetup, now time.Time) []*MeetupResponse {
	out := make([]*MeetupResponse, 0, len(meetups))
	for i := range meetups {
		out = append(out, ToMeetupResponse(&meetups[i], now))
	}
	return out
}

type DeleteMeetupResponse struct {
	Deleted bool `json:"deleted"`
}
