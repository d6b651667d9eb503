package reports

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

func (c *Controller) CreateReport(ctx *gin.Context) {
	reporterID, ok := currentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "User not authenticated")
		return
	}

	var req CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	report, err := c.service.CreateReport(ctx.Request.Context(), reporterID, req)
	if err != nil {
		if errors.Is(err, packages.ErrPackageNotFound) {
			response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Package not found")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to file report")
		return
	}

	response.Success(ctx, http.StatusCreated, "Report filed successfully", report)
}

func (c *Controller) ListReports(ctx *gin.Context) {
	var query ReportListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid query parameters", err.Error())
		return
	}

	resp, err := c.service.GetReports(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to list reports")
		return
	}

	response.Success(ctx, http.StatusOK, "Reports retrieved successfully", resp)
}

func (c *Controller) GetReport(ctx *gin.Context) {
	reportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid report ID")
		return
	}

	report, err := c.service.GetReport(ctx.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Report not found")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to get report")
		return
	}

	response.Success(ctx, http.StatusOK, "Report retrieved successfully", report)
}

func (c *Controller) ResolveReport(ctx *gin.Context) {
	adminID, ok := currentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "User not authenticated")
		return
	}

	reportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Invalid report ID")
		return
	}

	var req ResolveReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	report, err := c.service.ResolveReport(ctx.Request.Context(), adminID, reportID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrReportNotFound):
			response.Error(ctx, http.StatusNotFound, response.KindNotFound, "Report not found")
		case errors.Is(err, ErrAlreadyResolved):
			response.Error(ctx, http.StatusConflict, response.KindConflict, "Report already resolved")
		default:
			response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to resolve report")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Report resolved successfully", report)
}

func (c *Controller) GetOperatorDashboard(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "User not authenticated")
		return
	}

	dashboard, err := c.service.GetOperatorDashboard(ctx.Request.Context(), operatorID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to load dashboard")
		return
	}

	response.Success(ctx, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
