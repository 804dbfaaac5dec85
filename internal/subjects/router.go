package subjects

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers subject routes.
func SetupRoutes(rg *gin.RouterGroup, controller *Controller) {
	subjects := rg.Group("/subjects")
	{
		subjects.GET("", controller.List)
		subjects.POST("/:subjectId/teachers", controller.AssignTeacher)
		subjects.POST("/:subjectId/grades", controller.AssignGrade)
	}
}
