package bookings

import (
	"hawabodol/internal/shared/config"
	"hawabodol/internal/shared/middleware"
	"hawabodol/internal/users"

	"github.com/gin-gonic/gin"
)

// Router handles booking-related routes
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

// SetupRoutes registers all booking routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(r.config))
	{
		bookings.POST("", r.controller.CreateBooking)
		bookings.GET("", r.controller.GetMyBookings)
		bookings.GET("/:id", r.controller.GetBooking)
		bookings.PATCH("/:id/status", r.controller.UpdateBookingStatus)
		bookings.POST("/:id/cancel", r.controller.CancelBooking)
	}

	// Operator view of bookings on their packages
	operator := rg.Group("/operator/packages/:id/bookings")
	operator.Use(middleware.JWTAuthWithConfig(r.config))
	operator.Use(middleware.RequireRoles(string(users.RoleOperator), string(users.RoleAdmin)))
	{
		operator.GET("", r.controller.GetPackageBookings)
	}
}
