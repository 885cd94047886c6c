package controllers

import (
	"errors"
	"time"

	"tracker/backend/middleware"
	"tracker/backend/models"
	"tracker/backend/services"
	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Auth    *services.AuthService
	Entries *services.EntryService
}

func NewAuthController(svc *services.Services) *AuthController {
	return &AuthController{Auth: svc.Auth, Entries: svc.Entries}
}

type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	CareerGoal string `json:"careerGoal"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	CareerGoal string `json:"careerGoal"`
}

// UserResponse is the public view of a user; the password hash never leaves the server.
type UserResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CareerGoal    string    `json:"career_goal"`
	JoinedDate    time.Time `json:"joined_date"`
	CurrentStreak *int      `json:"current_streak,omitempty"`
	LongestStreak *int      `json:"longest_streak,omitempty"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		CareerGoal: u.CareerGoal,
		JoinedDate: u.JoinedDate,
	}
}

// [+] Register godoc
// @Summary Register a new user
// @Description Creates a new user account and returns a token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return utils.ValidationError(c, "Name, email, and password are required", fields)
	}

	user, token, err := ac.Auth.Register(c.UserContext(), services.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		CareerGoal: req.CareerGoal,
	})
	if errors.Is(err, services.ErrEmailTaken) {
		return utils.Conflict(c, "Email already registered")
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    newUserResponse(user),
	})
}

// [+] Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return utils.ValidationError(c, "Email and password are required", fields)
	}

	user, token, err := ac.Auth.Login(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return utils.Unauthorized(c, "Invalid email or password")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    newUserResponse(user),
	})
}

// [+] GetProfile godoc
// @Summary Get user profile
// @Description Returns the current user with their entry streaks
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /auth/profile [get]
func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	user, err := ac.Auth.Profile(c.UserContext(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		return utils.NotFound(c, "User not found")
	}
	if err != nil {
		return err
	}

	stats, err := ac.Entries.Stats(c.UserContext(), userID)
	if err != nil {
		return err
	}

	resp := newUserResponse(user)
	resp.CurrentStreak = &stats.CurrentStreak
	resp.LongestStreak = &stats.LongestStreak
	return c.JSON(fiber.Map{
		"message": "Profile retrieved",
		"user":    resp,
	})
}

// [+] UpdateProfile godoc
// @Summary Update user profile
// @Description Updates name and career goal; empty fields are left unchanged
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param profile body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /auth/profile [put]
func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, err := ac.Auth.UpdateProfile(c.UserContext(), middleware.UserID(c), req.Name, req.CareerGoal)
	if errors.Is(err, services.ErrUserNotFound) {
		return utils.NotFound(c, "User not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    newUserResponse(user),
	})
}
