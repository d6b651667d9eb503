package discounts

import (
	"hawabodol/internal/shared/config"
	"hawabodol/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles discount routes
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

// SetupRoutes registers all discount routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	discounts := rg.Group("/discounts")
	discounts.Use(middleware.JWTAuthWithConfig(r.config))
	{
		discounts.POST("/validate", r.controller.ValidateDiscount)

		admin := discounts.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", r.controller.ListDiscounts)
			admin.POST("", r.controller.CreateDiscount)
			admin.PUT("/:id", r.controller.UpdateDiscount)
			admin.DELETE("/:id", r.controller.DeleteDiscount)
		}
	}
}
