package auth

import (
	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller) *Router {
	return &Router{
		controller: controller,
	}
}

// SetupRoutes registers all auth routes. Everything here is public at the
// routing level: login and register-admin need no session, and refresh,
// logout and me derive the caller from cookies themselves.
//
// register-admin exists to bootstrap the first admin of a fresh install.
// TODO: gate it behind a one-time setup token before multi-school hosting.
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", authRouter.controller.Login)
		auth.POST("/logout", authRouter.controller.Logout)
		auth.POST("/refresh", authRouter.controller.Refresh)
		auth.POST("/register-admin", authRouter.controller.RegisterAdmin)
		auth.GET("/me", authRouter.controller.Me)
	}
}
