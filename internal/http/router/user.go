package router

import (
	"github.com/gin-gonic/gin"

	"meetapp.app/api/internal/http/handler"
)

func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler, requireAuth gin.HandlerFunc) {
	rg.POST("", h.Register)
	rg.PUT("", requireAuth, h.Update)
}

func SessionRouter(rg *gin.RouterGroup, h *handler.SessionHandler) {
	rg.POST("", h.Create)
}
