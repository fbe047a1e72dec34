package routes

import (
	"activitytracker/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterActivityRoutes(router *gin.Engine, activityController *controllers.ActivityController, protected ...gin.HandlerFunc) {
	activityRoutes := router.Group("/activity")
	activityRoutes.Use(protected...)
	{
		activityRoutes.POST("", activityController.CreateActivity)
		activityRoutes.GET("", activityController.ListActivities)
		activityRoutes.GET("/:id", activityController.GetActivityByID)
		activityRoutes.PUT("/:id", activityController.UpdateActivity)
	}
}
