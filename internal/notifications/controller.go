package notifications

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

func (c *Controller) GetMyNotifications(ctx *gin.Context) {
	recipientID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var query NotificationListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid query parameters", err.Error())
		return
	}

	resp, err := c.service.GetMyNotifications(ctx.Request.Context(), recipientID, query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get notifications")
		return
	}

	response.Success(ctx, http.StatusOK, "Notifications retrieved successfully", resp)
}

func (c *Controller) MarkRead(ctx *gin.Context) {
	recipientID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid notification ID")
		return
	}

	if err := c.service.MarkRead(ctx.Request.Context(), recipientID, notificationID); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Notification not found")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to mark notification read")
		return
	}

	response.Success(ctx, http.StatusOK, "Notification marked as read", nil)
}

func (c *Controller) MarkAllRead(ctx *gin.Context) {
	recipientID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	count, err := c.service.MarkAllRead(ctx.Request.Context(), recipientID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to mark notifications read")
		return
	}

	response.Success(ctx, http.StatusOK, "Notifications marked as read", gin.H{"marked": count})
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
