package exams

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers exam and result routes.
func SetupRoutes(rg *gin.RouterGroup, controller *Controller) {
	exams := rg.Group("/exams")
	{
		exams.POST("", controller.Create)
		exams.GET("", controller.List)
		exams.POST("/:examId/subjects", controller.AttachSubjects)
		exams.POST("/:examId/results", controller.EnterResults)
	}

	// Result summaries hang off the students resource.
	rg.GET("/students/results", controller.StudentResults)
}
