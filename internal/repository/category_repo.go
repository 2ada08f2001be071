package repository

import (
	"plateguard-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindByID(id uuid.UUID) (*model.Category, error)
	FindByName(name string) (*model.Category, error)
	FindAllWithStats() ([]model.CategoryStats, error)
	Update(category *model.Category) error
	Delete(id uuid.UUID) error
	CountItems(id uuid.UUID) (int64, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindByName(name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindAllWithStats returns every category with the count and total
// value (quantity * price) of the items it holds, sorted by name.
func (r *categoryRepo) FindAllWithStats() ([]model.CategoryStats, error) {
	var categories []model.Category
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "category_id", "price", "quantity")
		}).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	stats := make([]model.CategoryStats, len(categories))
	for i, c := range categories {
		total := 0.0
		for _, item := range c.Items {
			total += item.Price * item.Quantity
		}
		stats[i] = model.CategoryStats{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			ItemCount:   len(c.Items),
			TotalValue:  total,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		}
	}
	return stats, nil
}

func (r *categoryRepo) Update(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Category{}, "id = ?", id).Error
}

func (r *categoryRepo) CountItems(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.InventoryItem{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}
