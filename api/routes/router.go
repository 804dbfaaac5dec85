package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gradely/internal/admissions"
	"gradely/internal/attendance"
	"gradely/internal/audit"
	"gradely/internal/auth"
	"gradely/internal/exams"
	"gradely/internal/shared/config"
	"gradely/internal/shared/database"
	"gradely/internal/students"
	"gradely/internal/subjects"
	"gradely/internal/teachers"
	"gradely/internal/users"
	"gradely/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	audit  audit.Producer

	// shared auth plumbing, built once in SetupRoutes
	codec   *auth.TokenCodec
	cookies *auth.CookieStore
	guard   *auth.Guard

	studentRepo students.Repository
	teacherRepo teachers.Repository
	cacheSvc    cache.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, auditProducer audit.Producer) *Router {
	return &Router{
		config: cfg,
		db:     db,
		audit:  auditProducer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.codec = auth.NewTokenCodec(r.config.JWT)
	r.cookies = auth.NewCookieStore(r.codec, r.config.IsProduction())
	r.guard = auth.NewGuard(r.codec, r.cookies)

	r.studentRepo = students.NewRepository(r.db.GetPostgreSQL())
	r.teacherRepo = teachers.NewRepository(r.db.GetPostgreSQL())
	r.cacheSvc = cache.NewService(r.db.GetRedisClient())

	r.setupHealthRoutes(engine)
	r.setupPageRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupAttendanceRoutes(api)
		r.setupExamRoutes(api)
		r.setupSubjectRoutes(api)
		r.setupAdmissionRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "gradely-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "gradely-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupPageRoutes registers the landing pages the route middleware redirects
// between. They return minimal JSON; the real UI is a separate frontend.
func (r *Router) setupPageRoutes(engine *gin.Engine) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "home"})
	})
	engine.GET("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "login"})
	})

	dashboards := map[string]users.Role{
		"/admin":   users.RoleAdmin,
		"/teacher": users.RoleTeacher,
		"/student": users.RoleStudent,
	}
	for prefix, role := range dashboards {
		page := gin.H{"page": string(role)}
		handler := func(c *gin.Context) {
			c.JSON(http.StatusOK, page)
		}
		engine.GET(prefix, handler)
		engine.GET(prefix+"/*page", handler)
	}
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.codec, r.audit)
	authController := auth.NewController(authService, r.guard, r.cookies)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupAttendanceRoutes configures attendance marking and summary routes
func (r *Router) setupAttendanceRoutes(rg *gin.RouterGroup) {
	attendanceRepo := attendance.NewRepository(r.db.GetPostgreSQL())
	attendanceService := attendance.NewService(attendanceRepo, r.studentRepo, r.teacherRepo, r.cacheSvc, r.config.Redis.SummaryTTL)
	attendanceController := attendance.NewController(attendanceService, r.guard)

	attendance.SetupRoutes(rg, attendanceController)
}

// setupExamRoutes configures exam and result routes
func (r *Router) setupExamRoutes(rg *gin.RouterGroup) {
	examRepo := exams.NewRepository(r.db.GetPostgreSQL())
	examService := exams.NewService(examRepo, r.studentRepo, r.teacherRepo, r.cacheSvc, r.config.Redis.ResultsTTL)
	examController := exams.NewController(examService, r.guard)

	exams.SetupRoutes(rg, examController)
}

// setupSubjectRoutes configures subject assignment routes
func (r *Router) setupSubjectRoutes(rg *gin.RouterGroup) {
	subjectRepo := subjects.NewRepository(r.db.GetPostgreSQL())
	subjectService := subjects.NewService(subjectRepo, r.teacherRepo)
	subjectController := subjects.NewController(subjectService, r.guard)

	subjects.SetupRoutes(rg, subjectController)
}

// setupAdmissionRoutes configures admin admission routes
func (r *Router) setupAdmissionRoutes(rg *gin.RouterGroup) {
	admissionRepo := admissions.NewRepository(r.db.GetPostgreSQL())
	admissionService := admissions.NewService(admissionRepo, r.audit)
	admissionController := admissions.NewController(admissionService, r.guard)

	admissions.SetupRoutes(rg, admissionController)
}
