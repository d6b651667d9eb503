package favorites

import (
	"hawabodol/internal/shared/config"
	"hawabodol/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles favorite routes
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

// SetupRoutes registers all favorite routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	favorites.Use(middleware.JWTAuthWithConfig(r.config))
	{
		favorites.GET("", r.controller.GetMyFavorites)
		favorites.POST("", r.controller.AddFavorite)
		favorites.DELETE("/:id", r.controller.RemoveFavorite)
	}
}
