package controllers

import (
	"activitytracker/internal/models"
	"activitytracker/internal/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserController struct {
	service services.UserService
}

func NewUserController(service services.UserService) *UserController {
	return &UserController{service: service}
}

type registerRequest struct {
	FirstName string `form:"firstName" binding:"required"`
	LastName  string `form:"lastName"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required"`
	Gender    string `form:"gender" binding:"max=2"`
	Birthdate string `form:"birthdate" binding:"required"`
}

type loginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new user
// @Description Create a user account. The password is stored as a bcrypt digest.
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param firstName formData string true "First name"
// @Param lastName formData string false "Last name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param gender formData string false "Gender code"
// @Param birthdate formData string true "Birthdate (YYYY-MM-DD)"
// @Success 201 {object} map[string]interface{} "User registered successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data or email already registered"
// @Router /register [post]
func (uc *UserController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := uc.service.Register(c.Request.Context(), services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Gender:    req.Gender,
		Birthdate: req.Birthdate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "User registered successfully", user.ToResponse())
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and issue a bearer token
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Invalid email or password"
// @Router /login [post]
func (uc *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := uc.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Login successful", gin.H{"token": token})
}

// ListUsers godoc
// @Summary List users
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{} "Users retrieved successfully"
// @Router /user [get]
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.service.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Users retrieved successfully", models.ToUserResponses(users))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Delete a user and all of its activities, returning the deleted user
// @Tags user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{} "User deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid user ID"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /user/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	user, err := uc.service.DeleteUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "User deleted successfully", user.ToResponse())
}
