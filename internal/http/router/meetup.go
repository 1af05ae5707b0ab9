package router

import (
	"github.com/gin-gonic/gin"

	"meetapp.app/api/internal/http/handler"
)

func MeetupRouter(rg *gin.RouterGroup, h *handler.MeetupHandler, admin *handler.MeetupAdminHandler) {
	rg.GET("", h.List)

	adminGroup := rg.Group("/admin")
	adminGroup.GET("", admin.List)
	adminGroup.POST("", admin.Create)
	adminGroup.PUT("/:meetupId", admin.Update)
	adminGroup.DELETE("/:meetupId", admin.Delete)
}

func SubscriptionRouter(rg *gin.RouterGroup, h *handler.SubscriptionHandler) {
	rg.GET("", h.List)
	rg.POST("/:meetupId", h.Create)
}
