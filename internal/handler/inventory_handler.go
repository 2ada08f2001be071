package handler

import (
	"fmt"
	"strings"
	"time"

	"plateguard-backend/internal/model"
	"plateguard-backend/internal/repository"
	"plateguard-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// parseDate accepts RFC3339 timestamps and plain dates; clients send
// either depending on whether a time picker was involved.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD or RFC3339", s)
	}
	return &t, nil
}

type createItemBody struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	ExpiryDate  string  `json:"expiryDate"`
	CategoryID  string  `json:"categoryId"`
	UserID      string  `json:"userId"`
}

type updateItemBody struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`
	Unit        *string  `json:"unit"`
	Price       *float64 `json:"price"`
	ExpiryDate  *string  `json:"expiryDate"`
	CategoryID  *string  `json:"categoryId"`
}

// GetItems handles GET /api/inventory
func (h *InventoryHandler) GetItems(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	filter := repository.ItemFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   model.ItemStatus(strings.ToUpper(c.Query("status"))),
		Page:     page,
		Limit:    limit,
	}

	items, total, err := h.inventoryService.ListItems(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"items":      items,
		"pagination": paginate(page, limit, total),
	})
}

// GetItem handles GET /api/inventory/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	item, err := h.inventoryService.GetItem(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// CreateItem handles POST /api/inventory
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var body createItemBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	expiry, err := parseDate(body.ExpiryDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	categoryID, _ := uuid.Parse(body.CategoryID)
	userID, _ := uuid.Parse(body.UserID)

	item, err := h.inventoryService.CreateItem(&service.CreateItemRequest{
		Name:        body.Name,
		Description: body.Description,
		Quantity:    body.Quantity,
		Unit:        body.Unit,
		Price:       body.Price,
		ExpiryDate:  expiry,
		CategoryID:  categoryID,
		UserID:      userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem handles PUT /api/inventory/:id
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var body updateItemBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req := service.UpdateItemRequest{
		Name:        body.Name,
		Description: body.Description,
		Quantity:    body.Quantity,
		Unit:        body.Unit,
		Price:       body.Price,
	}
	if body.ExpiryDate != nil {
		expiry, err := parseDate(*body.ExpiryDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		req.ExpiryDate = expiry
	}
	if body.CategoryID != nil {
		categoryID, err := uuid.Parse(*body.CategoryID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category ID"})
		}
		req.CategoryID = &categoryID
	}

	item, err := h.inventoryService.UpdateItem(id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// DeleteItem handles DELETE /api/inventory/:id
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	if err := h.inventoryService.DeleteItem(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item and its waste records deleted"})
}

// MarkAsWaste handles POST /api/inventory/:id/waste
func (h *InventoryHandler) MarkAsWaste(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var body struct {
		Reason string `json:"reason"`
		Notes  string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := h.inventoryService.MarkItemWasted(id, body.Reason, body.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Item marked as waste",
		"wasteRecord": record,
	})
}
