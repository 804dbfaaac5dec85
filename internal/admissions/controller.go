package admissions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"gradely/internal/auth"
	"gradely/internal/shared/utils/response"
	"gradely/internal/users"
)

type Controller struct {
	service   Service
	guard     *auth.Guard
	validator *validator.Validate
}

func NewController(service Service, guard *auth.Guard) *Controller {
	return &Controller{
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

// AdmitStudent is admin-only.
func (c *Controller) AdmitStudent(ctx *gin.Context) {
	identity, authErr := c.guard.RequireRole(ctx, users.RoleAdmin)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	var req AdmitStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	admission, err := c.service.AdmitStudent(ctx.Request.Context(), identity, &req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to admit student")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Student admitted successfully", admission, nil)
}

// AdmitTeacher is admin-only.
func (c *Controller) AdmitTeacher(ctx *gin.Context) {
	identity, authErr := c.guard.RequireRole(ctx, users.RoleAdmin)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	var req AdmitTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	admission, err := c.service.AdmitTeacher(ctx.Request.Context(), identity, &req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to admit teacher")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Teacher admitted successfully", admission, nil)
}

func respondServiceError(ctx *gin.Context, err error, fallback string) {
	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		auth.RespondError(ctx, authErr)
		return
	}
	response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
}
