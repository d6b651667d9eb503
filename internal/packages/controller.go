package packages

import (
	"errors"
	"net/http"
	"strconv"

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

func (c *Controller) CreatePackage(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req CreatePackageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := c.service.CreatePackage(ctx.Request.Context(), operatorID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidDates) {
			response.Error(ctx, http.StatusBadRequest, response.KindValidation, "End date must be after start date")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to create package")
		return
	}

	response.Success(ctx, http.StatusCreated, "Package created successfully", resp)
}

func (c *Controller) UpdatePackage(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	var req UpdatePackageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := c.service.UpdatePackage(ctx.Request.Context(), packageID, operatorID, req)
	if err != nil {
		c.respondPackageError(ctx, err, "Failed to update package")
		return
	}

	response.Success(ctx, http.StatusOK, "Package updated successfully", resp)
}

func (c *Controller) DeletePackage(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	if err := c.service.DeletePackage(ctx.Request.Context(), packageID, operatorID); err != nil {
		c.respondPackageError(ctx, err, "Failed to delete package")
		return
	}

	response.Success(ctx, http.StatusOK, "Package deleted successfully", nil)
}

func (c *Controller) PublishPackage(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	resp, err := c.service.PublishPackage(ctx.Request.Context(), packageID, operatorID)
	if err != nil {
		c.respondPackageError(ctx, err, "Failed to publish package")
		return
	}

	response.Success(ctx, http.StatusOK, "Package published successfully", resp)
}

func (c *Controller) ClosePackage(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	resp, err := c.service.ClosePackage(ctx.Request.Context(), packageID, operatorID)
	if err != nil {
		c.respondPackageError(ctx, err, "Failed to close package")
		return
	}

	response.Success(ctx, http.StatusOK, "Package closed successfully", resp)
}

func (c *Controller) CancelPackage(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	resp, err := c.service.CancelPackage(ctx.Request.Context(), packageID, operatorID)
	if err != nil {
		c.respondPackageError(ctx, err, "Failed to cancel package")
		return
	}

	response.Success(ctx, http.StatusOK, "Package cancelled successfully", resp)
}

func (c *Controller) AddCategory(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	var req CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := c.service.AddCategory(ctx.Request.Context(), packageID, operatorID, req)
	if err != nil {
		c.respondPackageError(ctx, err, "Failed to add category")
		return
	}

	response.Success(ctx, http.StatusCreated, "Category added successfully", resp)
}

func (c *Controller) RemoveCategory(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("categoryId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid category ID")
		return
	}

	if err := c.service.RemoveCategory(ctx.Request.Context(), packageID, categoryID, operatorID); err != nil {
		c.respondPackageError(ctx, err, "Failed to remove category")
		return
	}

	response.Success(ctx, http.StatusOK, "Category removed successfully", nil)
}

func (c *Controller) GetMyPackages(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.service.GetOperatorPackages(ctx.Request.Context(), operatorID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get packages")
		return
	}

	response.Success(ctx, http.StatusOK, "Packages retrieved successfully", resp)
}

func (c *Controller) GetPackage(ctx *gin.Context) {
	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	resp, err := c.service.GetPackageByID(ctx.Request.Context(), packageID)
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Package not found")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get package")
		return
	}

	response.Success(ctx, http.StatusOK, "Package retrieved successfully", resp)
}

func (c *Controller) ListPackages(ctx *gin.Context) {
	var query PackageListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid query parameters", err.Error())
		return
	}

	// Public listing only exposes published packages.
	if query.Status == "" {
		query.Status = string(StatusPublished)
	}

	resp, err := c.service.GetAllPackages(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get packages")
		return
	}

	response.Success(ctx, http.StatusOK, "Packages retrieved successfully", resp)
}

func (c *Controller) GetFeatured(ctx *gin.Context) {
	limit := 6
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	resp, err := c.service.GetFeaturedPackages(ctx.Request.Context(), limit)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get featured packages")
		return
	}

	response.Success(ctx, http.StatusOK, "Featured packages retrieved successfully", resp)
}

func (c *Controller) respondPackageError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPackageNotFound):
		response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Package not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(ctx, http.StatusForbidden, response.KindForbidden, "You can only manage your own packages")
	case errors.Is(err, ErrPackageNotEditable):
		response.Error(ctx, http.StatusConflict, response.KindConflict, "Package can no longer be modified")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(ctx, http.StatusBadRequest, response.KindInvalidTransition, "Invalid package status transition")
	case errors.Is(err, ErrInvalidDates):
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "End date must be after start date")
	default:
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, fallback)
	}
}

// currentUserID pulls the authenticated user from the gin context.
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
