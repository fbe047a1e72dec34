package controllers

import (
	"activitytracker/internal/models"
	"activitytracker/internal/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ActivityController struct {
	service services.ActivityService
}

func NewActivityController(service services.ActivityService) *ActivityController {
	return &ActivityController{service: service}
}

type createActivityRequest struct {
	Name      string  `form:"name" binding:"required"`
	Place     string  `form:"place"`
	Latitude  float64 `form:"latitude"`
	Longitude float64 `form:"longitude"`
	Duration  int     `form:"duration"`
	UserID    uint    `form:"user_id" binding:"required"`
	Date      string  `form:"date"`
}

type updateActivityRequest struct {
	Name      string  `form:"name" binding:"required"`
	Place     string  `form:"place"`
	Latitude  float64 `form:"latitude"`
	Longitude float64 `form:"longitude"`
	Duration  int     `form:"duration"`
	Date      string  `form:"date" binding:"required"`
}

// CreateActivity godoc
// @Summary Create a new activity
// @Description Create an activity for an existing user. The name must be unique per user.
// @Tags activity
// @Accept x-www-form-urlencoded
// @Produce json
// @Param name formData string true "Activity name"
// @Param place formData string false "Place"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param duration formData int false "Duration"
// @Param user_id formData int true "Owner user ID"
// @Param date formData string false "Date (YYYY-MM-DD HH:MM:SS), defaults to now"
// @Success 201 {object} map[string]interface{} "Activity created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data or duplicate activity"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /activity [post]
func (ac *ActivityController) CreateActivity(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		respondBindError(c, err)
		return
	}

	activity, err := ac.service.CreateActivity(c.Request.Context(), services.CreateActivityInput{
		Name:      req.Name,
		Place:     req.Place,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Duration:  req.Duration,
		UserID:    req.UserID,
		Date:      req.Date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Activity created successfully", activity.ToResponse())
}

// ListActivities godoc
// @Summary List all activities
// @Tags activity
// @Produce json
// @Success 200 {object} map[string]interface{} "Activities retrieved successfully"
// @Router /activity [get]
func (ac *ActivityController) ListActivities(c *gin.Context) {
	activities, err := ac.service.ListActivities(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Activities retrieved successfully", models.ToActivityResponses(activities))
}

// GetActivityByID godoc
// @Summary Get an activity by ID
// @Tags activity
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} map[string]interface{} "Activity retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid activity ID"
// @Failure 404 {object} map[string]interface{} "Activity not found"
// @Router /activity/{id} [get]
func (ac *ActivityController) GetActivityByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "activity")
	if !ok {
		return
	}

	activity, err := ac.service.GetActivity(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Activity retrieved successfully", activity.ToResponse())
}

// UpdateActivity godoc
// @Summary Update an activity
// @Description Overwrite every mutable field of an activity
// @Tags activity
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path int true "Activity ID"
// @Param name formData string true "Activity name"
// @Param place formData string false "Place"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param duration formData int false "Duration"
// @Param date formData string true "Date (YYYY-MM-DD HH:MM:SS)"
// @Success 200 {object} map[string]interface{} "Activity updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Activity not found"
// @Router /activity/{id} [put]
func (ac *ActivityController) UpdateActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "activity")
	if !ok {
		return
	}

	var req updateActivityRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		respondBindError(c, err)
		return
	}

	activity, err := ac.service.UpdateActivity(c.Request.Context(), id, services.UpdateActivityInput{
		Name:      req.Name,
		Place:     req.Place,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Duration:  req.Duration,
		Date:      req.Date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Activity updated successfully", activity.ToResponse())
}

// GetUserActivities godoc
// @Summary List a user's activities
// @Tags activity
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{} "Activities retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid user ID"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /user/{id}/activities [get]
func (ac *ActivityController) GetUserActivities(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	activities, err := ac.service.ListUserActivities(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Activities retrieved successfully", models.ToActivityResponses(activities))
}

// GetUserActivity godoc
// @Summary Get one of a user's activities
// @Tags activity
// @Produce json
// @Param id path int true "User ID"
// @Param activity_id path int true "Activity ID"
// @Success 200 {object} map[string]interface{} "Activity retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]interface{} "User or activity not found"
// @Router /user/{id}/activities/{activity_id} [get]
func (ac *ActivityController) GetUserActivity(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}
	activityID, ok := parseIDParam(c, "activity_id", "activity")
	if !ok {
		return
	}

	activity, err := ac.service.GetUserActivity(c.Request.Context(), userID, activityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Activity retrieved successfully", activity.ToResponse())
}

// DeleteUserActivity godoc
// @Summary Delete one of a user's activities
// @Tags activity
// @Produce json
// @Param id path int true "User ID"
// @Param activity_id path int true "Activity ID"
// @Success 200 {object} map[string]interface{} "Activity deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]interface{} "User or activity not found"
// @Router /user/{id}/activities/{activity_id} [delete]
func (ac *ActivityController) DeleteUserActivity(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}
	activityID, ok := parseIDParam(c, "activity_id", "activity")
	if !ok {
		return
	}

	activity, err := ac.service.DeleteUserActivity(c.Request.Context(), userID, activityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Activity deleted successfully", activity.ToResponse())
}
