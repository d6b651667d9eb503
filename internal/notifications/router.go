package notifications

import (
	"hawabodol/internal/shared/config"
	"hawabodol/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles notification routes
type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all notification routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	notifications.Use(middleware.JWTAuthWithConfig(r.config))
	{
		notifications.GET("", r.controller.GetMyNotifications)
		notifications.PATCH("/:id/read", r.controller.MarkRead)
		notifications.POST("/read-all", r.controller.MarkAllRead)
	}
}
