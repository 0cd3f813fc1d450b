package api

import (
	"github.com/gofiber/fiber/v2"

	"boothtrack.in/internal/api/middleware"
	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/model"
)

type AuthHandler struct {
	authSvc domain.AuthService
}

func NewAuthHandler(authSvc domain.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type MobileLoginRequest struct {
	MobileNumber string `json:"mobile_number"`
}

// employeeSummary is the compact employee block returned by mobile login.
type employeeSummary struct {
	EmpID        string `json:"emp_id"`
	Name         string `json:"name"`
	MobileNumber string `json:"mobile_number"`
}

// Login authenticates with username/password and returns the bearer token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Must include username and password"})
	}

	token, user, err := h.authSvc.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return SendError(c, err)
	}

	return c.JSON(fiber.Map{
		"token":   token.Key,
		"user":    user,
		"message": "Login successful",
	})
}

// MobileLogin authenticates by mobile number. With a linked account the
// response carries a token; without one, only the employee profile.
// POST /api/auth/mobile-login
func (h *AuthHandler) MobileLogin(c *fiber.Ctx) error {
	var req MobileLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	result, err := h.authSvc.MobileLogin(c.Context(), req.MobileNumber)
	if err != nil {
		return SendError(c, err)
	}

	employee := employeeSummary{
		EmpID:        result.Employee.EmpID,
		Name:         result.Employee.Name,
		MobileNumber: result.Employee.MobileNumber,
	}

	if result.Token == nil {
		return c.JSON(fiber.Map{
			"employee": employee,
			"message":  "Employee found - limited access (no user account)",
		})
	}

	return c.JSON(fiber.Map{
		"token":    result.Token.Key,
		"user":     result.User,
		"employee": employee,
		"message":  "Mobile login successful",
	})
}

// Logout invalidates the caller's token. Always succeeds.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	tokenKey, _ := c.Locals(middleware.LocalToken).(string)
	_ = h.authSvc.Logout(c.Context(), tokenKey)
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// Profile returns the authenticated user.
// GET /api/auth/profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, ok := c.Locals(middleware.LocalUser).(*model.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(user)
}
