package routes

import (
	"activitytracker/database"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// RegisterSystemRoutes exposes the service banner, database health and metrics.
func RegisterSystemRoutes(router *gin.Engine, db *gorm.DB, driver string) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Activity Tracker API is running",
			"version":  "1.0.0",
			"status":   "healthy",
			"database": driver,
		})
	})

	router.GET("/health/database", func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"database_health": false,
				"error":           err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"database_health": true})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
