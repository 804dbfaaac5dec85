package attendance

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

// Mark is teacher-only.
func (c *Controller) Mark(ctx *gin.Context) {
	identity, authErr := c.guard.RequireRole(ctx, users.RoleTeacher)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	var req MarkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	count, err := c.service.Mark(ctx.Request.Context(), identity, &req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to mark attendance")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Attendance marked successfully", gin.H{"records": count}, nil)
}

// StudentSummary allows any authenticated role; the service applies the
// self-or-privileged rule to decide whose record comes back.
func (c *Controller) StudentSummary(ctx *gin.Context) {
	identity, authErr := c.guard.RequireAuth(ctx)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	summary, err := c.service.StudentSummary(ctx.Request.Context(), identity, ctx.Query("studentId"))
	if err != nil {
		respondServiceError(ctx, err, "Failed to fetch attendance summary")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Attendance summary retrieved", summary, nil)
}

// ClassDay is admin-or-teacher.
func (c *Controller) ClassDay(ctx *gin.Context) {
	_, authErr := c.guard.RequireRole(ctx, users.RoleAdmin, users.RoleTeacher)
	if authErr != nil {
		auth.RespondError(ctx, authErr)
		return
	}

	classID := ctx.Query("classId")
	sectionID := ctx.Query("sectionId")
	date := ctx.Query("date")
	if classID == "" || sectionID == "" || date == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "classId, sectionId and date query parameters are required", nil, nil)
		return
	}

	entries, err := c.service.ClassDay(ctx.Request.Context(), classID, sectionID, date)
	if err != nil {
		respondServiceError(ctx, err, "Failed to fetch class attendance")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Class attendance retrieved", gin.H{"records": entries}, nil)
}

func respondServiceError(ctx *gin.Context, err error, fallback string) {
	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		auth.RespondError(ctx, authErr)
		return
	}
	response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
}
