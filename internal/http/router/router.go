package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"meetapp.app/api/internal/http/handler"
	"meetapp.app/api/internal/http/middleware"
	"meetapp.app/api/internal/service"
)

type RouterConfig struct {
	// Now overrides the clock used to derive "past" in responses.
	Now func() time.Time
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(services.Sessions())

	userHandler := handler.NewUserHandler(services.Users())
	UserRouter(router.Group("/users"), userHandler, requireAuth)

	sessionHandler := handler.NewSessionHandler(services.Sessions())
	SessionRouter(router.Group("/sessions"), sessionHandler)

	fileHandler := handler.NewFileHandler(services.Files())
	FileRouter(router.Group("/files"), fileHandler, requireAuth)

	adminHandler := handler.NewMeetupAdminHandler(services.Meetups(), cfg.Now)
	meetupHandler := handler.NewMeetupHandler(services.Meetups(), cfg.Now)
	MeetupRouter(router.Group("/meetups", requireAuth), meetupHandler, adminHandler)

	subscriptionHandler := handler.NewSubscriptionHandler(services.Subscriptions(), cfg.Now)
	SubscriptionRouter(router.Group("/subscriptions", requireAuth), subscriptionHandler)
}
