package handler

import (
	"plateguard-backend/internal/model"
	"plateguard-backend/internal/repository"
	"plateguard-backend/internal/service"
	"plateguard-backend/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CategoryHandler works on the repository directly; category CRUD has
// no business rules beyond name uniqueness and delete protection.
type CategoryHandler struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryHandler(categoryRepo repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo}
}

type categoryBody struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// GetCategories handles GET /api/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryRepo.FindAllWithStats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := validator.ValidateStruct(&body); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category name is required"})
	}

	if existing, _ := h.categoryRepo.FindByName(body.Name); existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Category with this name already exists"})
	}

	category := &model.Category{Name: body.Name, Description: body.Description}
	if err := h.categoryRepo.Create(category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/categories/:id
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := validator.ValidateStruct(&body); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category name is required"})
	}

	category, err := h.categoryRepo.FindByID(id)
	if err != nil {
		return respondError(c, service.ErrCategoryNotFound)
	}

	if existing, _ := h.categoryRepo.FindByName(body.Name); existing != nil && existing.ID != id {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Category with this name already exists"})
	}

	category.Name = body.Name
	category.Description = body.Description
	if err := h.categoryRepo.Update(category); err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/categories/:id. Categories with
// items keep them referenced and cannot be removed.
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if _, err := h.categoryRepo.FindByID(id); err != nil {
		return respondError(c, service.ErrCategoryNotFound)
	}

	count, err := h.categoryRepo.CountItems(id)
	if err != nil {
		return respondError(c, err)
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot delete category with existing items"})
	}

	if err := h.categoryRepo.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
