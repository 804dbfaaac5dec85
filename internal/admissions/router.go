package admissions

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the admin admission routes.
func SetupRoutes(rg *gin.RouterGroup, controller *Controller) {
	admissions := rg.Group("/admin/admissions")
	{
		admissions.POST("/student", controller.AdmitStudent)
		admissions.POST("/teacher", controller.AdmitTeacher)
	}
}
