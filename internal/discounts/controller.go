package discounts

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

func (c *Controller) CreateDiscount(ctx *gin.Context) {
	var req CreateDiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := c.service.CreateDiscount(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCodeExists):
			response.Error(ctx, http.StatusConflict, response.KindConflict, "Discount code already exists")
		case errors.Is(err, ErrInvalidPeriod):
			response.Error(ctx, http.StatusBadRequest, response.KindValidation, "valid_until must be after valid_from")
		default:
			response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to create discount code")
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Discount code created successfully", resp)
}

func (c *Controller) UpdateDiscount(ctx *gin.Context) {
	discountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid discount ID")
		return
	}

	var req UpdateDiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := c.service.UpdateDiscount(ctx.Request.Context(), discountID, req)
	if err != nil {
		if errors.Is(err, ErrDiscountNotFound) {
			response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Discount code not found")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to update discount code")
		return
	}

	response.Success(ctx, http.StatusOK, "Discount code updated successfully", resp)
}

func (c *Controller) DeleteDiscount(ctx *gin.Context) {
	discountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid discount ID")
		return
	}

	if err := c.service.DeleteDiscount(ctx.Request.Context(), discountID); err != nil {
		if errors.Is(err, ErrDiscountNotFound) {
			response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Discount code not found")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to delete discount code")
		return
	}

	response.Success(ctx, http.StatusOK, "Discount code deleted successfully", nil)
}

func (c *Controller) ListDiscounts(ctx *gin.Context) {
	resp, err := c.service.GetAllDiscounts(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get discount codes")
		return
	}

	response.Success(ctx, http.StatusOK, "Discount codes retrieved successfully", resp)
}

func (c *Controller) ValidateDiscount(ctx *gin.Context) {
	var req ValidateDiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := c.service.ValidateCode(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to validate discount code")
		return
	}

	response.Success(ctx, http.StatusOK, "Discount code validated", resp)
}
