package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetapp.app/api/internal/http/dto"
	"meetapp.app/api/internal/service"
)

type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		badRequest(c, "Missing fields")
		return
	}

	session, err := h.sessionService.Authenticate(ctx, req.Credentials())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}
