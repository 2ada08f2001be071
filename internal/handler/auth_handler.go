package handler

import (
	"plateguard-backend/internal/service"
	"plateguard-backend/pkg/config"
	"plateguard-backend/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
	cfg         config.SessionConfig
}

func NewAuthHandler(authService service.AuthService, cfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req service.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	resp, err := h.authService.SignUp(&req)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(session.Cookie(h.cfg, resp.Token))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Account created successfully",
		"user":         resp.User,
		"sessionToken": resp.Token,
	})
}

// SignIn handles POST /api/auth/signin
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	resp, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(session.Cookie(h.cfg, resp.Token))
	return c.JSON(fiber.Map{
		"message":      "Signed in successfully",
		"user":         resp.User,
		"sessionToken": resp.Token,
	})
}

// CreateTestAccount handles POST /api/auth/test-account
func (h *AuthHandler) CreateTestAccount(c *fiber.Ctx) error {
	var req service.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	resp, err := h.authService.CreateTestAccount(&req)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(session.Cookie(h.cfg, resp.Token))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Test account created successfully",
		"user":         resp.User,
		"sessionToken": resp.Token,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(session.ClearCookie(h.cfg))
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return respondError(c, service.ErrUserNotFound)
	}

	user, err := h.authService.GetProfile(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}
