package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"gradely/internal/shared/utils/response"
)

type Controller struct {
	service   Service
	guard     *Guard
	cookies   *CookieStore
	validator *validator.Validate
}

func NewController(service Service, guard *Guard, cookies *CookieStore) *Controller {
	return &Controller{
		service:   service,
		guard:     guard,
		cookies:   cookies,
		validator: validator.New(),
	}
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	result, err := c.service.Login(ctx.Request.Context(), &req, ctx.ClientIP())
	if err != nil {
		var authErr *AuthError
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid email or password", nil, nil)
		case errors.As(err, &authErr):
			RespondError(ctx, authErr)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to login", nil, nil)
		}
		return
	}

	c.cookies.Issue(ctx, result.Tokens.AccessToken, result.Tokens.RefreshToken)
	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", gin.H{"user": result.User}, nil)
}

// Refresh consumes the refresh cookie and re-issues both cookies. The access
// cookie is not consulted at all; an expired access token with a live
// refresh token is the normal case here.
func (c *Controller) Refresh(ctx *gin.Context) {
	refreshToken := c.cookies.ReadRefresh(ctx)

	result, err := c.service.Refresh(ctx.Request.Context(), refreshToken)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			RespondError(ctx, authErr)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to refresh token", nil, nil)
		return
	}

	c.cookies.Issue(ctx, result.Tokens.AccessToken, result.Tokens.RefreshToken)
	response.RespondJSON(ctx, "success", http.StatusOK, "Token refreshed successfully", gin.H{"user": result.User}, nil)
}

// Logout clears both cookies. Idempotent: logging out with no session is
// still a success.
func (c *Controller) Logout(ctx *gin.Context) {
	identity := c.guard.CurrentUser(ctx)
	c.service.Logout(ctx.Request.Context(), identity)
	c.cookies.Clear(ctx)
	response.RespondJSON(ctx, "success", http.StatusOK, "Logged out successfully", nil, nil)
}

func (c *Controller) RegisterAdmin(ctx *gin.Context) {
	var req RegisterAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	user, err := c.service.RegisterAdmin(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserAlreadyExists):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "User with this email already exists", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create admin user", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Admin user created successfully", gin.H{"user": user}, nil)
}

func (c *Controller) Me(ctx *gin.Context) {
	identity, authErr := c.guard.RequireAuth(ctx)
	if authErr != nil {
		RespondError(ctx, authErr)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "User data retrieved successfully", gin.H{
		"user": gin.H{
			"id":    identity.UserID,
			"email": identity.Email,
			"role":  identity.Role,
		},
	}, nil)
}
