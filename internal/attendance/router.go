package attendance

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers attendance routes. Role checks live in the
// controller; the route middleware deliberately lets /api/ through.
func SetupRoutes(rg *gin.RouterGroup, controller *Controller) {
	attendance := rg.Group("/attendance")
	{
		attendance.POST("/mark", controller.Mark)
		attendance.GET("/student-summary", controller.StudentSummary)
		attendance.GET("/class", controller.ClassDay)
	}
}
