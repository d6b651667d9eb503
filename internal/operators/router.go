package operators

import (
	"hawabodol/internal/shared/config"
	"hawabodol/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles operator routes
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

// SetupRoutes registers all operator routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	// Public operator profiles
	rg.GET("/operators/:id", r.controller.GetOperatorProfile)

	// Admin operator management
	admin := rg.Group("/admin/operators")
	admin.Use(middleware.JWTAuthWithConfig(r.config))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("", r.controller.ListOperators)
		admin.POST("/:id/approve", r.controller.ApproveOperator)
		admin.POST("/:id/suspend", r.controller.SuspendOperator)
		admin.POST("/:id/reactivate", r.controller.ReactivateOperator)
	}
}
