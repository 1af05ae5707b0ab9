package router

import (
	"github.com/gin-gonic/gin"

	"meetapp.app/api/internal/http/handler"
)

// FileRouter mounts uploads behind auth. Stored files are public.
func FileRouter(rg *gin.RouterGroup, h *handler.FileHandler, requireAuth gin.HandlerFunc) {
	rg.POST("", requireAuth, h.Upload)
	rg.GET("/:path", h.Serve)
}
