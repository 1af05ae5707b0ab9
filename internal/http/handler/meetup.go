package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"meetapp.app/api/common/logger"
	"meetapp.app/api/internal/http/dto"
	"meetapp.app/api/internal/http/middleware"
	"meetapp.app/api/internal/service"
)

// MeetupAdminHandler serves the organizer's own meetups.
type MeetupAdminHandler struct {
	meetupService service.MeetupService
	now           func() time.Time
}

func NewMeetupAdminHandler(meetupService service.MeetupService, now func() time.Time) *MeetupAdminHandler {
	if now == nil {
		now = time.Now
	}
	return &MeetupAdminHandler{meetupService: meetupService, now: now}
}

func (h *MeetupAdminHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	meetups, err := h.meetupService.ListOwnedBy(ctx, middleware.UserID(ctx))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetupResponses(meetups, h.now()))
}

func (h *MeetupAdminHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateMeetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		badRequest(c, "Invalid or missing fields")
		return
	}

	meetup, err := h.meetupService.Create(ctx, middleware.UserID(ctx), req.Params())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetupResponse(meetup, h.now()))
}

func (h *MeetupAdminHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	meetupID, ok := meetupIDParam(c)
	if !ok {
		return
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{MeetupID: &meetupID})

	var req dto.UpdateMeetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		badRequest(c, "Invalid fields")
		return
	}

	meetup, err := h.meetupService.Update(ctx, meetupID, middleware.UserID(ctx), req.Patch())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetupResponse(meetup, h.now()))
}

func (h *MeetupAdminHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	meetupID, ok := meetupIDParam(c)
	if !ok {
		return
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{MeetupID: &meetupID})

	if err := h.meetupService.Delete(ctx, meetupID, middleware.UserID(ctx)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteMeetupResponse{Deleted: true})
}

// MeetupHandler serves the public meetup listing.
type MeetupHandler struct {
	meetupService service.MeetupService
	now           func() time.Time
}

func NewMeetupHandler(meetupService service.MeetupService, now func() time.Time) *MeetupHandler {
	if now == nil {
		now = time.Now
	}
	return &MeetupHandler{meetupService: meetupService, now: now}
}

// List returns the meetups of ?date, 20 per ?page.
func (h *MeetupHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page := 1
	if raw, ok := c.GetQuery("page"); ok {
		p, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "Invalid page")
			return
		}
		page = p
	}

	meetups, err := h.meetupService.ListByDate(ctx, c.Query("date"), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetupResponses(meetups, h.now()))
}

// meetupIDParam reads :meetupId. An id that cannot exist is reported the same
// way as a missing meetup.
func meetupIDParam(c *gin.Context) (int64, bool) {
	meetupID, err := strconv.ParseInt(c.Param("meetupId"), 10, 64)
	if err != nil || meetupID <= 0 {
		respondError(c, service.ErrMeetupNotFound)
		return 0, false
	}
	return meetupID, true
}
