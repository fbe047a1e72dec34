package controllers

import (
	"activitytracker/internal/services"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, message, detail string) {
	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
		"error":   detail,
	})
}

// respondServiceError maps a service error kind onto its HTTP status.
func respondServiceError(c *gin.Context, err error) {
	var se *services.Error
	if !errors.As(err, &se) {
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "Internal server error", "Unexpected error while processing the request")
		return
	}

	status := http.StatusInternalServerError
	switch se.Kind {
	case services.KindValidation, services.KindConflict:
		status = http.StatusBadRequest
	case services.KindAuth:
		status = http.StatusUnauthorized
	case services.KindNotFound:
		status = http.StatusNotFound
	}

	detail := se.Message
	if se.Err != nil {
		detail = se.Err.Error()
	}
	respondError(c, status, se.Message, detail)
}

func respondBindError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "Invalid request data", err.Error())
}

// parseIDParam reads a positive integer path parameter. It writes the 400
// response itself and reports false when the value is malformed.
func parseIDParam(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "Invalid "+label+" ID", "ID must be a valid positive integer")
		return 0, false
	}
	return uint(id), true
}
