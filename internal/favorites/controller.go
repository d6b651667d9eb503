package favorites

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

func (c *Controller) AddFavorite(ctx *gin.Context) {
	touristID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req AddFavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	if err := c.service.AddFavorite(ctx.Request.Context(), touristID, packageID); err != nil {
		if errors.Is(err, packages.ErrPackageNotFound) {
			response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Package not found")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to add favorite")
		return
	}

	response.Success(ctx, http.StatusCreated, "Package added to favorites", nil)
}

func (c *Controller) RemoveFavorite(ctx *gin.Context) {
	touristID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid package ID")
		return
	}

	if err := c.service.RemoveFavorite(ctx.Request.Context(), touristID, packageID); err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to remove favorite")
		return
	}

	response.Success(ctx, http.StatusOK, "Package removed from favorites", nil)
}

func (c *Controller) GetMyFavorites(ctx *gin.Context) {
	touristID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.service.GetMyFavorites(ctx.Request.Context(), touristID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get favorites")
		return
	}

	response.Success(ctx, http.StatusOK, "Favorites retrieved successfully", resp)
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
