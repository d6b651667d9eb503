package reports

import (
	"hawabodol/internal/shared/config"
	"hawabodol/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles report and dashboard routes
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

// SetupRoutes registers all report routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/operator/dashboard")
	dashboard.Use(middleware.JWTAuthWithConfig(r.config))
	dashboard.Use(middleware.RequireRoles("operator", "admin"))
	{
		dashboard.GET("", r.controller.GetOperatorDashboard)
	}

	reports := rg.Group("/reports")
	reports.Use(middleware.JWTAuthWithConfig(r.config))
	{
		reports.POST("", r.controller.CreateReport)

		admin := reports.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", r.controller.ListReports)
			admin.GET("/:id", r.controller.GetReport)
			admin.PATCH("/:id", r.controller.ResolveReport)
		}
	}
}
