package controllers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"activitytracker/internal/controllers"
	"activitytracker/internal/mocks"
	"activitytracker/internal/models"
	"activitytracker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleActivity() *models.Activity {
	return &models.Activity{
		ID:        3,
		Name:      "Morning run",
		Place:     "Central Park",
		Latitude:  40.785091,
		Longitude: -73.968285,
		Duration:  45,
		Date:      time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC),
		UserID:    1,
	}
}

func activityRouter(service *mocks.MockActivityService) *gin.Engine {
	controller := controllers.NewActivityController(service)
	router := setupTestRouter()
	router.POST("/activity", controller.CreateActivity)
	router.GET("/activity", controller.ListActivities)
	router.GET("/activity/:id", controller.GetActivityByID)
	router.PUT("/activity/:id", controller.UpdateActivity)
	router.GET("/user/:id/activities", controller.GetUserActivities)
	router.GET("/user/:id/activities/:activity_id", controller.GetUserActivity)
	router.DELETE("/user/:id/activities/:activity_id", controller.DeleteUserActivity)
	return router
}

func TestNewActivityController(t *testing.T) {
	assert.NotNil(t, controllers.NewActivityController(new(mocks.MockActivityService)))
}

func TestCreateActivity(t *testing.T) {
	validForm := url.Values{
		"name":      {"Morning run"},
		"place":     {"Central Park"},
		"latitude":  {"40.785091"},
		"longitude": {"-73.968285"},
		"duration":  {"45"},
		"user_id":   {"1"},
	}

	tests := []struct {
		name           string
		form           url.Values
		setupMock      func(*mocks.MockActivityService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful creation",
			form: validForm,
			setupMock: func(m *mocks.MockActivityService) {
				m.On("CreateActivity", mock.Anything, services.CreateActivityInput{
					Name:      "Morning run",
					Place:     "Central Park",
					Latitude:  40.785091,
					Longitude: -73.968285,
					Duration:  45,
					UserID:    1,
				}).Return(sampleActivity(), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Activity created successfully",
		},
		{
			name: "duplicate name for user",
			form: validForm,
			setupMock: func(m *mocks.MockActivityService) {
				m.On("CreateActivity", mock.Anything, mock.Anything).Return(nil, services.ErrActivityExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Activity already exists for this user",
		},
		{
			name: "unknown user",
			form: validForm,
			setupMock: func(m *mocks.MockActivityService) {
				m.On("CreateActivity", mock.Anything, mock.Anything).Return(nil, services.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "User not found",
		},
		{
			name:           "non-numeric latitude",
			form:           url.Values{"name": {"run"}, "user_id": {"1"}, "latitude": {"north"}},
			setupMock:      func(m *mocks.MockActivityService) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name:           "missing user id",
			form:           url.Values{"name": {"run"}},
			setupMock:      func(m *mocks.MockActivityService) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mocks.MockActivityService)
			tt.setupMock(service)

			w := httptest.NewRecorder()
			activityRouter(service).ServeHTTP(w, formRequest(http.MethodPost, "/activity", tt.form))

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decode(t, w)
			assert.Contains(t, response["message"], tt.expectedMsg)

			if tt.expectedStatus == http.StatusCreated {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "2024-05-01 07:30:00", data["date"])
				assert.Equal(t, float64(1), data["user_id"])
				assert.Equal(t, float64(3), data["id"])
			}

			service.AssertExpectations(t)
		})
	}
}

func TestListActivities(t *testing.T) {
	service := new(mocks.MockActivityService)
	service.On("ListActivities", mock.Anything).Return([]models.Activity{*sampleActivity()}, nil)

	w := httptest.NewRecorder()
	activityRouter(service).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/activity", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Morning run", data[0].(map[string]interface{})["name"])
	service.AssertExpectations(t)
}

func TestGetActivityByID(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*mocks.MockActivityService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "found",
			path: "/activity/3",
			setupMock: func(m *mocks.MockActivityService) {
				m.On("GetActivity", mock.Anything, uint(3)).Return(sampleActivity(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Activity retrieved successfully",
		},
		{
			name: "not found",
			path: "/activity/999",
			setupMock: func(m *mocks.MockActivityService) {
				m.On("GetActivity", mock.Anything, uint(999)).Return(nil, services.ErrActivityNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Activity not found",
		},
		{
			name:           "invalid id",
			path:           "/activity/-1",
			setupMock:      func(m *mocks.MockActivityService) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid activity ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mocks.MockActivityService)
			tt.setupMock(service)

			w := httptest.NewRecorder()
			activityRouter(service).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decode(t, w)["message"], tt.expectedMsg)
			service.AssertExpectations(t)
		})
	}
}

func TestUpdateActivity(t *testing.T) {
	validForm := url.Values{
		"name":      {"Long run"},
		"place":     {"Riverside"},
		"latitude":  {"1.5"},
		"longitude": {"2.5"},
		"duration":  {"90"},
		"date":      {"2024-05-02 06:00:00"},
	}

	tests := []struct {
		name           string
		form           url.Values
		setupMock      func(*mocks.MockActivityService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful update",
			form: validForm,
			setupMock: func(m *mocks.MockActivityService) {
				m.On("UpdateActivity", mock.Anything, uint(3), services.UpdateActivityInput{
					Name:      "Long run",
					Place:     "Riverside",
					Latitude:  1.5,
					Longitude: 2.5,
					Duration:  90,
					Date:      "2024-05-02 06:00:00",
				}).Return(sampleActivity(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Activity updated successfully",
		},
		{
			name: "bad date format",
			form: validForm,
			setupMock: func(m *mocks.MockActivityService) {
				m.On("UpdateActivity", mock.Anything, uint(3), mock.Anything).
					Return(nil, services.Validation("Date must use the YYYY-MM-DD HH:MM:SS format", errors.New("parse")))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Date must use the YYYY-MM-DD HH:MM:SS format",
		},
		{
			name: "not found",
			form: validForm,
			setupMock: func(m *mocks.MockActivityService) {
				m.On("UpdateActivity", mock.Anything, uint(3), mock.Anything).Return(nil, services.ErrActivityNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Activity not found",
		},
		{
			name:           "missing date",
			form:           url.Values{"name": {"Long run"}},
			setupMock:      func(m *mocks.MockActivityService) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mocks.MockActivityService)
			tt.setupMock(service)

			w := httptest.NewRecorder()
			activityRouter(service).ServeHTTP(w, formRequest(http.MethodPut, "/activity/3", tt.form))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decode(t, w)["message"], tt.expectedMsg)
			service.AssertExpectations(t)
		})
	}
}

func TestUserScopedActivityRoutes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		setupMock      func(*mocks.MockActivityService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "list user activities",
			method: http.MethodGet,
			path:   "/user/1/activities",
			setupMock: func(m *mocks.MockActivityService) {
				m.On("ListUserActivities", mock.Anything, uint(1)).Return([]models.Activity{*sampleActivity()}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Activities retrieved successfully",
		},
		{
			name:   "list for unknown user",
			method: http.MethodGet,
			path:   "/user/9/activities",
			setupMock: func(m *mocks.MockActivityService) {
				m.On("ListUserActivities", mock.Anything, uint(9)).Return(nil, services.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "User not found",
		},
		{
			name:   "get scoped activity",
			method: http.MethodGet,
			path:   "/user/1/activities/3",
			setupMock: func(m *mocks.MockActivityService) {
				m.On("GetUserActivity", mock.Anything, uint(1), uint(3)).Return(sampleActivity(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Activity retrieved successfully",
		},
		{
			name:   "activity owned by another user",
			method: http.MethodGet,
			path:   "/user/2/activities/3",
			setupMock: func(m *mocks.MockActivityService) {
				m.On("GetUserActivity", mock.Anything, uint(2), uint(3)).Return(nil, services.ErrActivityNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Activity not found",
		},
		{
			name:   "delete scoped activity",
			method: http.MethodDelete,
			path:   "/user/1/activities/3",
			setupMock: func(m *mocks.MockActivityService) {
				m.On("DeleteUserActivity", mock.Anything, uint(1), uint(3)).Return(sampleActivity(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Activity deleted successfully",
		},
		{
			name:           "invalid activity id",
			method:         http.MethodDelete,
			path:           "/user/1/activities/x",
			setupMock:      func(m *mocks.MockActivityService) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid activity ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mocks.MockActivityService)
			tt.setupMock(service)

			w := httptest.NewRecorder()
			activityRouter(service).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decode(t, w)["message"], tt.expectedMsg)
			service.AssertExpectations(t)
		})
	}
}
