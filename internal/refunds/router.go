package refunds

import (
	"hawabodol/internal/shared/config"
	"hawabodol/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles refund-related routes
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

// SetupRoutes registers all refund routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	refunds := rg.Group("/refunds")
	refunds.Use(middleware.JWTAuthWithConfig(r.config))
	{
		refunds.POST("", r.controller.CreateRefundRequest)
		refunds.GET("/my", r.controller.GetMyRefundRequests)

		admin := refunds.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", r.controller.ListRefundRequests)
			admin.POST("/:id/approve", r.controller.ApproveRefund)
			admin.POST("/:id/reject", r.controller.RejectRefund)
		}
	}
}
