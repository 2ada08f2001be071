package repository

import (
	"time"

	"plateguard-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WasteFilter narrows the paginated waste listing. Nil UUIDs mean "any".
type WasteFilter struct {
	ItemID uuid.UUID
	UserID uuid.UUID
	Page   int
	Limit  int
}

type WasteRepository interface {
	Create(tx *gorm.DB, record *model.WasteRecord) error
	FindByID(id uuid.UUID) (*model.WasteRecord, error)
	FindPage(f WasteFilter) ([]model.WasteRecord, int64, error)
	FindInRange(start, end *time.Time) ([]model.WasteRecord, error)
	Delete(id uuid.UUID) error
}

type wasteRepo struct {
	db *gorm.DB
}

func NewWasteRepo(db *gorm.DB) WasteRepository {
	return &wasteRepo{db}
}

func (r *wasteRepo) withJoins(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Item").
		Preload("Item.Category").
		Preload("User", sanitizedUser)
}

// Create runs inside the caller's transaction; waste recording pairs
// the insert with the item quantity decrement.
func (r *wasteRepo) Create(tx *gorm.DB, record *model.WasteRecord) error {
	return tx.Create(record).Error
}

func (r *wasteRepo) FindByID(id uuid.UUID) (*model.WasteRecord, error) {
	var record model.WasteRecord
	if err := r.withJoins(r.db).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *wasteRepo) FindPage(f WasteFilter) ([]model.WasteRecord, int64, error) {
	query := r.db.Model(&model.WasteRecord{})
	if f.ItemID != uuid.Nil {
		query = query.Where("item_id = ?", f.ItemID)
	}
	if f.UserID != uuid.Nil {
		query = query.Where("user_id = ?", f.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.WasteRecord
	err := r.withJoins(query).
		Order("date DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// FindInRange returns all waste records in the date window, newest
// first, with item, category and user joined for aggregation. Nil
// bounds are open-ended.
func (r *wasteRepo) FindInRange(start, end *time.Time) ([]model.WasteRecord, error) {
	query := r.db.Model(&model.WasteRecord{})
	if start != nil {
		query = query.Where("date >= ?", *start)
	}
	if end != nil {
		query = query.Where("date <= ?", *end)
	}

	var records []model.WasteRecord
	err := r.withJoins(query).Order("date DESC").Find(&records).Error
	return records, err
}

func (r *wasteRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.WasteRecord{}, "id = ?", id).Error
}
