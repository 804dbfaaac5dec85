package exams

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

// Create is admin-only.
func (c *Controller) Create(ctx *gin.Context) {
	_, authErr := c.guard.RequireRole(ctx, users.RoleAdmin)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	var req CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	exam, err := c.service.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to create exam")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Exam created successfully", gin.H{"exam": exam}, nil)
}

// List is open to any authenticated caller.
func (c *Controller) List(ctx *gin.Context) {
	_, authErr := c.guard.RequireAuth(ctx)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	exams, err := c.service.List(ctx.Request.Context(), ctx.Query("classId"))
	if err != nil {
		respondServiceError(ctx, err, "Failed to fetch exams")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Exams retrieved", gin.H{"exams": exams}, nil)
}

// AttachSubjects is admin-only.
func (c *Controller) AttachSubjects(ctx *gin.Context) {
	_, authErr := c.guard.RequireRole(ctx, users.RoleAdmin)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	var req AttachSubjectsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	count, err := c.service.AttachSubjects(ctx.Request.Context(), ctx.Param("examId"), &req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to attach subjects")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Subjects attached successfully", gin.H{"subjects": count}, nil)
}

// EnterResults is teacher-only.
func (c *Controller) EnterResults(ctx *gin.Context) {
	identity, authErr := c.guard.RequireRole(ctx, users.RoleTeacher)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	var req EnterResultsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	count, err := c.service.EnterResults(ctx.Request.Context(), identity, ctx.Param("examId"), &req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to enter results")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Results recorded successfully", gin.H{"results": count}, nil)
}

// StudentResults allows any authenticated role; the service applies the
// self-or-privileged rule.
func (c *Controller) StudentResults(ctx *gin.Context) {
	identity, authErr := c.guard.RequireAuth(ctx)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	results, err := c.service.StudentResults(ctx.Request.Context(), identity, ctx.Query("studentId"))
	if err != nil {
		respondServiceError(ctx, err, "Failed to fetch results")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Results retrieved", results, nil)
}

func respondServiceError(ctx *gin.Context, err error, fallback string) {
	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		auth.RespondError(ctx, authErr)
		return
	}
	response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
}
