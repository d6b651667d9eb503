package auth

import (
	"errors"
	"net/http"

	"hawabodol/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Validation failed", err.Error())
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserAlreadyExists):
			response.Error(ctx, http.StatusConflict, response.KindConflict, "User with this email already exists")
		case errors.Is(err, ErrCompanyRequired):
			response.Error(ctx, http.StatusBadRequest, response.KindValidation, "Company name is required for operator registration")
		default:
			response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to register user")
		}
		return
	}

	message := "User registered successfully"
	if resp.AccessToken == "" {
		message = "Operator registered, pending admin approval"
	}
	response.Success(ctx, http.StatusCreated, message, resp)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Validation failed", err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "Invalid email or password")
		case errors.Is(err, ErrAccountPending):
			response.Error(ctx, http.StatusForbidden, response.KindForbidden, "Account is pending admin approval")
		case errors.Is(err, ErrAccountSuspended):
			response.Error(ctx, http.StatusForbidden, response.KindForbidden, "Account is suspended")
		default:
			response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to login")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Login successful", resp)
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Validation failed", err.Error())
		return
	}

	tokenPair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
			response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "Invalid or expired refresh token")
		case errors.Is(err, ErrUserNotFound):
			response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "User not found")
		case errors.Is(err, ErrAccountSuspended):
			response.Error(ctx, http.StatusForbidden, response.KindForbidden, "Account is suspended")
		default:
			response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to refresh token")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Token refreshed successfully", tokenPair)
}

func (c *Controller) Logout(ctx *gin.Context) {
	var req LogoutRequest
	ctx.ShouldBindJSON(&req) // Optional body

	response.Success(ctx, http.StatusOK, "Logged out successfully", nil)
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "User not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, response.KindValidation, "Validation failed", err.Error())
		return
	}

	err := c.service.ChangePassword(ctx.Request.Context(), userID.(string), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "Current password is incorrect")
		case errors.Is(err, ErrUserNotFound):
			response.Error(ctx, http.StatusNotFound, response.KindNotFound, "User not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, response.KindInternal, "Failed to change password")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Password changed successfully", nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, http.StatusUnauthorized, response.KindUnauthorized, "User not authenticated")
		return
	}

	email, _ := ctx.Get("user_email")
	role, _ := ctx.Get("user_role")

	userData := map[string]interface{}{
		"id":    userID,
		"email": email,
		"role":  role,
	}

	response.Success(ctx, http.StatusOK, "User data retrieved successfully", userData)
}
