// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"hawabodol/internal/auth"
	"hawabodol/internal/bookings"
	"hawabodol/internal/discounts"
	"hawabodol/internal/favorites"
	"hawabodol/internal/notifications"
	"hawabodol/internal/operators"
	"hawabodol/internal/packages"
	"hawabodol/internal/refunds"
	"hawabodol/internal/reports"
	"hawabodol/internal/reviews"
	"hawabodol/internal/shared/config"
	"hawabodol/internal/shared/database"
	"hawabodol/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.EventProducer

	// Services shared across modules for dependency injection
	cacheService   cache.Service
	packageService packages.Service
	bookingService bookings.Service
	notifyService  notifications.Service
}

// NewRouter creates a new router instance. The producer may be nil, in
// which case booking events are only stored as notification rows.
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.EventProducer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.Redis)
	}

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Packages before the modules that depend on its service
		r.setupPackageRoutes(api)
		r.setupNotificationRoutes(api)
		r.setupBookingRoutes(api)
		r.setupRefundRoutes(api)
		r.setupOperatorRoutes(api)
		r.setupFavoriteRoutes(api)
		r.setupDiscountRoutes(api)
		r.setupReviewRoutes(api)
		r.setupReportRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "hawabodol-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "hawabodol-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupPackageRoutes configures tour package routes
func (r *Router) setupPackageRoutes(rg *gin.RouterGroup) {
	packageRepo := packages.NewRepository(r.db.GetPostgreSQL())
	packageService := packages.NewService(packageRepo)
	if r.cacheService != nil {
		packageService.SetCacheService(r.cacheService)
	}
	r.packageService = packageService

	packageController := packages.NewController(packageService)
	packageRouter := packages.NewRouter(packageController, r.config)
	packageRouter.SetupRoutes(rg)
}

// setupNotificationRoutes configures notification routes
func (r *Router) setupNotificationRoutes(rg *gin.RouterGroup) {
	notifyRepo := notifications.NewRepository(r.db.GetPostgreSQL())
	r.notifyService = notifications.NewService(notifyRepo)

	notifyController := notifications.NewController(r.notifyService)
	notifyRouter := notifications.NewRouter(notifyController, r.config)
	notifyRouter.SetupRoutes(rg)
}

// setupBookingRoutes configures booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo)

	notifyRepo := notifications.NewRepository(r.db.GetPostgreSQL())
	bookingService.SetNotifier(notifications.NewBookingNotifier(notifyRepo, r.producer))
	r.bookingService = bookingService

	bookingController := bookings.NewController(bookingService)
	bookingRouter := bookings.NewRouter(bookingController, r.config)
	bookingRouter.SetupRoutes(rg)
}

// setupRefundRoutes configures refund request routes
func (r *Router) setupRefundRoutes(rg *gin.RouterGroup) {
	refundRepo := refunds.NewRepository(r.db.GetPostgreSQL())
	refundService := refunds.NewService(refundRepo, r.bookingService, r.packageService)
	refundController := refunds.NewController(refundService)
	refundRouter := refunds.NewRouter(refundController, r.config)
	refundRouter.SetupRoutes(rg)
}

// setupOperatorRoutes configures operator management routes
func (r *Router) setupOperatorRoutes(rg *gin.RouterGroup) {
	operatorRepo := operators.NewRepository(r.db.GetPostgreSQL())
	operatorService := operators.NewService(operatorRepo, r.packageService)
	if r.cacheService != nil {
		operatorService.SetCacheService(r.cacheService)
	}
	operatorService.SetApprovalNotifier(r.notifyService)

	operatorController := operators.NewController(operatorService)
	operatorRouter := operators.NewRouter(operatorController, r.config)
	operatorRouter.SetupRoutes(rg)
}

// setupFavoriteRoutes configures favorite routes
func (r *Router) setupFavoriteRoutes(rg *gin.RouterGroup) {
	favoriteRepo := favorites.NewRepository(r.db.GetPostgreSQL())
	favoriteService := favorites.NewService(favoriteRepo, r.packageService)
	favoriteController := favorites.NewController(favoriteService)
	favoriteRouter := favorites.NewRouter(favoriteController, r.config)
	favoriteRouter.SetupRoutes(rg)
}

// setupDiscountRoutes configures discount code routes
func (r *Router) setupDiscountRoutes(rg *gin.RouterGroup) {
	discountRepo := discounts.NewRepository(r.db.GetPostgreSQL())
	discountService := discounts.NewService(discountRepo)
	discountController := discounts.NewController(discountService)
	discountRouter := discounts.NewRouter(discountController, r.config)
	discountRouter.SetupRoutes(rg)
}

// setupReviewRoutes configures package review routes
func (r *Router) setupReviewRoutes(rg *gin.RouterGroup) {
	reviewRepo := reviews.NewRepository(r.db.GetPostgreSQL())
	reviewService := reviews.NewService(reviewRepo, r.packageService)
	if r.cacheService != nil {
		reviewService.SetCacheService(r.cacheService)
	}

	reviewController := reviews.NewController(reviewService)
	reviewRouter := reviews.NewRouter(reviewController, r.config)
	reviewRouter.SetupRoutes(rg)
}

// setupReportRoutes configures report and dashboard routes
func (r *Router) setupReportRoutes(rg *gin.RouterGroup) {
	reportRepo := reports.NewRepository(r.db.GetPostgreSQL())
	reportService := reports.NewService(reportRepo, r.packageService)
	reportController := reports.NewController(reportService)
	reportRouter := reports.NewRouter(reportController, r.config)
	reportRouter.SetupRoutes(rg)
}
