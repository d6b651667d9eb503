package operators

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

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *Controller) ListOperators(ctx *gin.Context) {
	var query OperatorListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid query parameters", err.Error())
		return
	}

	resp, err := c.service.GetOperators(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to list operators")
		return
	}

	response.Success(ctx, http.StatusOK, "Operators retrieved successfully", resp)
}

func (c *Controller) ApproveOperator(ctx *gin.Context) {
	adminID, ok := currentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "User not authenticated")
		return
	}

	operatorID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid operator ID")
		return
	}

	resp, err := c.service.ApproveOperator(ctx.Request.Context(), adminID, operatorID)
	if err != nil {
		c.respondOperatorError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Operator approved successfully", resp)
}

func (c *Controller) SuspendOperator(ctx *gin.Context) {
	adminID, ok := currentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "User not authenticated")
		return
	}

	operatorID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid operator ID")
		return
	}

	var req SuspendOperatorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := c.service.SuspendOperator(ctx.Request.Context(), adminID, operatorID, req.Reason)
	if err != nil {
		c.respondOperatorError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Operator suspended successfully", resp)
}

func (c *Controller) ReactivateOperator(ctx *gin.Context) {
	adminID, ok := currentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "User not authenticated")
		return
	}

	operatorID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid operator ID")
		return
	}

	resp, err := c.service.ReactivateOperator(ctx.Request.Context(), adminID, operatorID)
	if err != nil {
		c.respondOperatorError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Operator reactivated successfully", resp)
}

func (c *Controller) GetOperatorProfile(ctx *gin.Context) {
	operatorID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid operator ID")
		return
	}

	profile, err := c.service.GetOperatorProfile(ctx.Request.Context(), operatorID)
	if err != nil {
		c.respondOperatorError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Operator profile retrieved successfully", profile)
}

func (c *Controller) respondOperatorError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrOperatorNotFound):
		response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Operator not found")
	case errors.Is(err, ErrOperatorNotPending):
		response.Error(ctx, http.StatusConflict, response.KindConflict, "Operator is not pending approval")
	case errors.Is(err, ErrOperatorNotActive):
		response.Error(ctx, http.StatusConflict, response.KindConflict, "Operator is not active")
	case errors.Is(err, ErrOperatorNotSuspended):
		response.Error(ctx, http.StatusConflict, response.KindConflict, "Operator is not suspended")
	default:
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Operation failed")
	}
}
