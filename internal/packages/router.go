package packages

import (
	"hawabodol/internal/shared/config"
	"hawabodol/internal/shared/middleware"
	"hawabodol/internal/users"

	"github.com/gin-gonic/gin"
)

// Router handles package-related routes
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

// SetupRoutes registers all package routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	// Public browsing routes
	public := rg.Group("/packages")
	{
		public.GET("", r.controller.ListPackages)
		public.GET("/featured", r.controller.GetFeatured)
		public.GET("/:id", r.controller.GetPackage)
	}

	// Operator management routes
	operator := rg.Group("/operator/packages")
	operator.Use(middleware.JWTAuthWithConfig(r.config))
	operator.Use(middleware.RequireRoles(string(users.RoleOperator), string(users.RoleAdmin)))
	{
		operator.GET("", r.controller.GetMyPackages)
		operator.POST("", r.controller.CreatePackage)
		operator.PUT("/:id", r.controller.UpdatePackage)
		operator.DELETE("/:id", r.controller.DeletePackage)
		operator.POST("/:id/publish", r.controller.PublishPackage)
		operator.POST("/:id/close", r.controller.ClosePackage)
		operator.POST("/:id/cancel", r.controller.CancelPackage)
		operator.POST("/:id/categories", r.controller.AddCategory)
		operator.DELETE("/:id/categories/:categoryId", r.controller.RemoveCategory)
	}
}
