package bookings

import (
	"errors"
	"net/http"

	"hawabodol/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateBooking(ctx *gin.Context) {
	touristID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := c.service.CreateBooking(ctx.Request.Context(), touristID, req)
	if err != nil {
		c.respondBookingError(ctx, err, "Failed to create booking")
		return
	}

	response.Success(ctx, http.StatusCreated, "Booking created successfully", resp)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	requesterID, role, ok := currentUser(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid booking ID")
		return
	}

	resp, err := c.service.GetBooking(ctx.Request.Context(), bookingID, requesterID, role)
	if err != nil {
		c.respondBookingError(ctx, err, "Failed to get booking")
		return
	}

	response.Success(ctx, http.StatusOK, "Booking retrieved successfully", resp)
}

func (c *Controller) GetMyBookings(ctx *gin.Context) {
	touristID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid query parameters", err.Error())
		return
	}

	resp, err := c.service.GetTouristBookings(ctx.Request.Context(), touristID, query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get bookings")
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", resp)
}

func (c *Controller) GetPackageBookings(ctx *gin.Context) {
	requesterID, role, ok := currentUser(ctx)
	if !ok {
		return
	}

	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid query parameters", err.Error())
		return
	}

	resp, err := c.service.GetPackageBookings(ctx.Request.Context(), packageID, requesterID, role, query)
	if err != nil {
		c.respondBookingError(ctx, err, "Failed to get package bookings")
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", resp)
}

func (c *Controller) UpdateBookingStatus(ctx *gin.Context) {
	requesterID, role, ok := currentUser(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := c.service.UpdateBookingStatus(ctx.Request.Context(), bookingID, requesterID, role, Status(req.Status))
	if err != nil {
		c.respondBookingError(ctx, err, "Failed to update booking status")
		return
	}

	response.Success(ctx, http.StatusOK, "Booking status updated successfully", resp)
}

func (c *Controller) CancelBooking(ctx *gin.Context) {
	requesterID, role, ok := currentUser(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid booking ID")
		return
	}

	resp, err := c.service.UpdateBookingStatus(ctx.Request.Context(), bookingID, requesterID, role, StatusCancelled)
	if err != nil {
		c.respondBookingError(ctx, err, "Failed to cancel booking")
		return
	}

	response.Success(ctx, http.StatusOK, "Booking cancelled successfully", resp)
}

func (c *Controller) respondBookingError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPackageNotFound):
		response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Package not found")
	case errors.Is(err, ErrCategoryNotFound):
		response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Category not found")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Booking not found")
	case errors.Is(err, ErrPackageNotOpen):
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Package is not open for booking")
	case errors.Is(err, ErrInsufficientSeats):
		response.Error(ctx, http.StatusConflict, response.KindInsufficientCapacity, "Not enough seats available")
	case errors.Is(err, ErrForbidden):
		response.Error(ctx, http.StatusForbidden, response.KindForbidden, "Not allowed to perform this action")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(ctx, http.StatusBadRequest, response.KindInvalidTransition, "Invalid booking status transition")
	default:
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, fallback)
	}
}

func currentUser(ctx *gin.Context) (uuid.UUID, string, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "User not authenticated")
		return uuid.Nil, "", false
	}

	id, err := uuid.Parse(raw.(string))
	if err != nil {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "Invalid user identity")
		return uuid.Nil, "", false
	}

	role, _ := ctx.Get("user_role")
	roleStr, _ := role.(string)

	return id, roleStr, true
}
