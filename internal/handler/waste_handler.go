package handler

import (
	"plateguard-backend/internal/repository"
	"plateguard-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type WasteHandler struct {
	inventoryService service.InventoryService
}

func NewWasteHandler(inventoryService service.InventoryService) *WasteHandler {
	return &WasteHandler{inventoryService: inventoryService}
}

// GetWasteRecords handles GET /api/waste
func (h *WasteHandler) GetWasteRecords(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	filter := repository.WasteFilter{Page: page, Limit: limit}

	if raw := c.Query("itemId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
		}
		filter.ItemID = id
	}
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
		}
		filter.UserID = id
	}

	records, total, err := h.inventoryService.ListWaste(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"wasteRecords": records,
		"pagination":   paginate(page, limit, total),
	})
}

// CreateWasteRecord handles POST /api/waste
func (h *WasteHandler) CreateWasteRecord(c *fiber.Ctx) error {
	var body struct {
		ItemID   string  `json:"itemId"`
		UserID   string  `json:"userId"`
		Quantity float64 `json:"quantity"`
		Reason   string  `json:"reason"`
		Cost     float64 `json:"cost"`
		Notes    string  `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	itemID, _ := uuid.Parse(body.ItemID)
	userID, _ := uuid.Parse(body.UserID)

	record, err := h.inventoryService.RecordWaste(&service.RecordWasteRequest{
		ItemID:   itemID,
		UserID:   userID,
		Quantity: body.Quantity,
		Reason:   body.Reason,
		Cost:     body.Cost,
		Notes:    body.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// DeleteWasteRecord handles DELETE /api/waste/:id (admin only).
func (h *WasteHandler) DeleteWasteRecord(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid waste record ID"})
	}

	if err := h.inventoryService.DeleteWasteRecord(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Waste record deleted"})
}
