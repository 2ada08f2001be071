package handler

import (
	"encoding/json"

	"plateguard-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUsers handles GET /api/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// DeleteUser handles DELETE /api/users/:id (admin only).
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := h.userService.DeleteUser(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// SaveSettings handles POST /api/settings. The settings blob is opaque
// to the server; it is stored per user and returned as-is.
func (h *UserHandler) SaveSettings(c *fiber.Ctx) error {
	var body struct {
		UserID   string          `json:"userId"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id, err := uuid.Parse(body.UserID)
	if err != nil {
		// Default to the session user when no target is given.
		id, err = uuid.Parse(c.Locals("user_id").(string))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
		}
	}

	user, err := h.userService.SaveSettings(id, body.Settings)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Settings saved",
		"settings": user.Settings,
	})
}
