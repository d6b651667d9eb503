package reviews

import (
	"errors"
	"net/http"

	"hawabodol/internal/packages"
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

func (c *Controller) CreateReview(ctx *gin.Context) {
	touristID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	review, err := c.service.CreateReview(ctx.Request.Context(), touristID, req)
	if err != nil {
		switch {
		case errors.Is(err, packages.ErrPackageNotFound):
			response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Package not found")
		case errors.Is(err, ErrReviewNotAllowed):
			response.Error(ctx, http.StatusForbidden, response.KindForbidden, "Only tourists with a completed booking can review a package")
		case errors.Is(err, ErrAlreadyReviewed):
			response.Error(ctx, http.StatusConflict, response.KindConflict, "You have already reviewed this package")
		default:
			response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to create review")
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Review posted successfully", review)
}

func (c *Controller) GetPackageReviews(ctx *gin.Context) {
	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	var query ReviewListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid query parameters", err.Error())
		return
	}

	resp, err := c.service.GetPackageReviews(ctx.Request.Context(), packageID, query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get reviews")
		return
	}

	response.Success(ctx, http.StatusOK, "Reviews retrieved successfully", resp)
}

func (c *Controller) DeleteReview(ctx *gin.Context) {
	requesterID, role, ok := currentUser(ctx)
	if !ok {
		return
	}

	reviewID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid review ID")
		return
	}

	if err := c.service.DeleteReview(ctx.Request.Context(), reviewID, requesterID, role); err != nil {
		switch {
		case errors.Is(err, ErrReviewNotFound):
			response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Review not found")
		case errors.Is(err, ErrNotReviewOwner):
			response.Error(ctx, http.StatusForbidden, response.KindForbidden, "Not allowed to delete this review")
		default:
			response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to delete review")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Review deleted successfully", nil)
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
