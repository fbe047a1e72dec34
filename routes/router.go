package routes

import (
	"activitytracker/internal/controllers"
	"activitytracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the collaborators NewRouter wires into handlers.
type Dependencies struct {
	DB                 *gorm.DB
	Driver             string
	UserController     *controllers.UserController
	ActivityController *controllers.ActivityController
	Tokens             middleware.TokenParser
	AuthRequired       bool
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID(), middleware.Metrics())

	var protected []gin.HandlerFunc
	if deps.AuthRequired {
		protected = append(protected, middleware.AuthMiddleware(deps.Tokens))
	}

	RegisterSystemRoutes(router, deps.DB, deps.Driver)
	RegisterSwaggerRoutes(router)
	RegisterUserRoutes(router, deps.UserController, deps.ActivityController, protected...)
	RegisterActivityRoutes(router, deps.ActivityController, protected...)

	return router
}
