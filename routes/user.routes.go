package routes

import (
	"activitytracker/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes wires account and user management endpoints. /register
// and /login stay public; protected middleware guards the rest.
func RegisterUserRoutes(router *gin.Engine, userController *controllers.UserController, activityController *controllers.ActivityController, protected ...gin.HandlerFunc) {
	router.POST("/register", userController.Register)
	router.POST("/login", userController.Login)

	userRoutes := router.Group("/user")
	userRoutes.Use(protected...)
	{
		userRoutes.GET("", userController.ListUsers)
		userRoutes.DELETE("/:id", userController.DeleteUser)
		userRoutes.GET("/:id/activities", activityController.GetUserActivities)
		userRoutes.GET("/:id/activities/:activity_id", activityController.GetUserActivity)
		userRoutes.DELETE("/:id/activities/:activity_id", activityController.DeleteUserActivity)
	}
}
