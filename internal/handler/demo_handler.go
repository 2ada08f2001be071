package handler

import (
	"plateguard-backend/internal/seed"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DemoHandler struct {
	db *gorm.DB
}

func NewDemoHandler(db *gorm.DB) *DemoHandler {
	return &DemoHandler{db: db}
}

// Setup handles POST /api/demo/setup: provisions demo accounts and
// sample data so the app is explorable without manual entry.
func (h *DemoHandler) Setup(c *fiber.Ctx) error {
	result, err := seed.Demo(h.db)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Demo data ready",
		"demo":    result,
	})
}
