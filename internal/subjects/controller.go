package subjects

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

func (c *Controller) List(ctx *gin.Context) {
	_, authErr := c.guard.RequireAuth(ctx)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	subjects, err := c.service.List(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err, "Failed to fetch subjects")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Subjects retrieved", gin.H{"subjects": subjects}, nil)
}

// AssignTeacher is admin-only.
func (c *Controller) AssignTeacher(ctx *gin.Context) {
	_, authErr := c.guard.RequireRole(ctx, users.RoleAdmin)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	var req AssignTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	if err := c.service.AssignTeacher(ctx.Request.Context(), ctx.Param("subjectId"), &req); err != nil {
		respondServiceError(ctx, err, "Failed to assign teacher")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Teacher assigned successfully", nil, nil)
}

// AssignGrade is admin-only.
func (c *Controller) AssignGrade(ctx *gin.Context) {
	_, authErr := c.guard.RequireRole(ctx, users.RoleAdmin)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	var req AssignGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	if err := c.service.AssignGrade(ctx.Request.Context(), ctx.Param("subjectId"), &req); err != nil {
		respondServiceError(ctx, err, "Failed to attach subject to class")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Subject attached to class successfully", nil, nil)
}

func respondServiceError(ctx *gin.Context, err error, fallback string) {
	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		auth.RespondError(ctx, authErr)
		return
	}
	response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
}
