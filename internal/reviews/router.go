package reviews

import (
	"hawabodol/internal/shared/config"
	"hawabodol/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles review-related routes
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

// SetupRoutes registers all review routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	// Anyone can read a package's reviews.
	rg.GET("/packages/:id/reviews", r.controller.GetPackageReviews)

	reviews := rg.Group("/reviews")
	reviews.Use(middleware.JWTAuthWithConfig(r.config))
	{
		reviews.POST("", r.controller.CreateReview)
		reviews.DELETE("/:id", r.controller.DeleteReview)
	}
}
