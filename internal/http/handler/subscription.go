package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meetapp.app/api/common/logger"
	"meetapp.app/api/internal/http/dto"
	"meetapp.app/api/internal/http/middleware"
	"meetapp.app/api/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
	now                 func() time.Time
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService, now func() time.Time) *SubscriptionHandler {
	if now == nil {
		now = time.Now
	}
	return &SubscriptionHandler{subscriptionService: subscriptionService, now: now}
}

// List returns the upcoming meetups the caller is subscribed to.
func (h *SubscriptionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	meetups, err := h.subscriptionService.ListMine(ctx, middleware.UserID(ctx))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetupResponses(meetups, h.now()))
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	meetupID, ok := meetupIDParam(c)
	if !ok {
		return
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{MeetupID: &meetupID})

	result, err := h.subscriptionService.Subscribe(ctx, meetupID, middleware.UserID(ctx))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscribeResponse(result, h.now()))
}
