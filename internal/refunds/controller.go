package refunds

import (
	"context"
	"errors"
	"net/http"

	"hawabodol/internal/bookings"
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

func (c *Controller) CreateRefundRequest(ctx *gin.Context) {
	touristID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req CreateRefundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := c.service.CreateRefundRequest(ctx.Request.Context(), touristID, req)
	if err != nil {
		c.respondRefundError(ctx, err, "Failed to create refund request")
		return
	}

	response.Success(ctx, http.StatusCreated, "Refund request submitted successfully", resp)
}

func (c *Controller) GetMyRefundRequests(ctx *gin.Context) {
	touristID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var query RefundListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid query parameters", err.Error())
		return
	}

	resp, err := c.service.GetMyRefundRequests(ctx.Request.Context(), touristID, query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get refund requests")
		return
	}

	response.Success(ctx, http.StatusOK, "Refund requests retrieved successfully", resp)
}

func (c *Controller) ListRefundRequests(ctx *gin.Context) {
	var query RefundListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid query parameters", err.Error())
		return
	}

	resp, err := c.service.GetAllRefundRequests(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get refund requests")
		return
	}

	response.Success(ctx, http.StatusOK, "Refund requests retrieved successfully", resp)
}

func (c *Controller) ApproveRefund(ctx *gin.Context) {
	c.decide(ctx, c.service.ApproveRefund, "Refund approved successfully")
}

func (c *Controller) RejectRefund(ctx *gin.Context) {
	c.decide(ctx, c.service.RejectRefund, "Refund rejected")
}

func (c *Controller) decide(ctx *gin.Context, fn func(ctx context.Context, adminID, refundID uuid.UUID, note string) (*RefundResponse, error), message string) {
	adminID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	refundID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid refund request ID")
		return
	}

	var req DecideRefundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := fn(ctx.Request.Context(), adminID, refundID, req.Note)
	if err != nil {
		c.respondRefundError(ctx, err, "Failed to process refund decision")
		return
	}

	response.Success(ctx, http.StatusOK, message, resp)
}

func (c *Controller) respondRefundError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrRefundNotFound):
		response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Refund request not found")
	case errors.Is(err, bookings.ErrBookingNotFound):
		response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Booking not found")
	case errors.Is(err, ErrNotYourBooking):
		response.Error(ctx, http.StatusForbidden, response.KindForbidden, "You can only request refunds for your own bookings")
	case errors.Is(err, ErrBookingNotRefundable):
		response.Error(ctx, http.StatusConflict, response.KindConflict, "Booking is not eligible for a refund")
	case errors.Is(err, ErrOpenRequestExists):
		response.Error(ctx, http.StatusConflict, response.KindConflict, "An open refund request already exists for this booking")
	case errors.Is(err, ErrAlreadyDecided):
		response.Error(ctx, http.StatusConflict, response.KindInvalidTransition, "Refund request has already been decided")
	case errors.Is(err, bookings.ErrInvalidTransition):
		response.Error(ctx, http.StatusBadRequest, response.KindInvalidTransition, "Booking cannot be refunded in its current status")
	default:
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, fallback)
	}
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "User not authenticated")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw.(string))
	if err != nil {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "Invalid user identity")
		return uuid.Nil, false
	}

	return id, true
}
