package repository

import (
	"time"

	"plateguard-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemFilter narrows the paginated item listing. Status accepts the
// derived tokens (AVAILABLE, LOW_STOCK, WASTED, EXPIRING); they are
// translated to quantity/expiry predicates, matching how the status is
// derived on read.
type ItemFilter struct {
	Search   string
	Category string
	Status   model.ItemStatus
	Page     int
	Limit    int
}

type ItemRepository interface {
	Create(item *model.InventoryItem) error
	FindByID(id uuid.UUID) (*model.InventoryItem, error)
	FindPage(f ItemFilter, t model.StockThresholds) ([]model.InventoryItem, int64, error)
	Update(item *model.InventoryItem) error
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, quantity float64) error
	DeleteCascade(id uuid.UUID) error
	SumAvailablePrice(t model.StockThresholds) (float64, error)
	SumAvailableValue(t model.StockThresholds) (float64, error)
	CountAvailable(t model.StockThresholds) (int64, error)
	CountLowStock(t model.StockThresholds) (int64, error)
	CountExpiring(t model.StockThresholds) (int64, error)
	FindLowStock(t model.StockThresholds, limit int) ([]model.InventoryItem, error)
	FindExpiring(t model.StockThresholds, limit int) ([]model.InventoryItem, error)
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

// sanitizedUser keeps waste/item payloads from exposing more of the
// owning user than the UI needs.
func sanitizedUser(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

func (r *itemRepo) withJoins(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("User", sanitizedUser)
}

func (r *itemRepo) Create(item *model.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *itemRepo) FindByID(id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := r.withJoins(r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) applyFilter(db *gorm.DB, f ItemFilter, t model.StockThresholds) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		db = db.Where("inventory_items.name ILIKE ? OR inventory_items.description ILIKE ?", pattern, pattern)
	}
	if f.Category != "" {
		db = db.Joins("JOIN categories ON categories.id = inventory_items.category_id").
			Where("categories.name ILIKE ?", "%"+f.Category+"%")
	}
	switch f.Status {
	case model.StatusAvailable:
		db = db.Where("inventory_items.quantity > ?", t.LowStock)
	case model.StatusLowStock:
		db = db.Where("inventory_items.quantity > 0 AND inventory_items.quantity <= ?", t.LowStock)
	case model.StatusWasted:
		db = db.Where("inventory_items.quantity <= 0")
	case model.StatusExpiring:
		db = db.Where("inventory_items.expiry_date IS NOT NULL AND inventory_items.expiry_date <= ?",
			time.Now().Add(t.ExpiryHorizon))
	}
	return db
}

func (r *itemRepo) FindPage(f ItemFilter, t model.StockThresholds) ([]model.InventoryItem, int64, error) {
	var total int64
	counter := r.applyFilter(r.db.Model(&model.InventoryItem{}), f, t)
	if err := counter.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.InventoryItem
	query := r.applyFilter(r.withJoins(r.db), f, t).
		Order("inventory_items.created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepo) Update(item *model.InventoryItem) error {
	return r.db.Save(item).Error
}

// UpdateQuantity runs inside the caller's transaction so the waste
// insert and the quantity decrement commit together.
func (r *itemRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, quantity float64) error {
	return tx.Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

// DeleteCascade removes the item's waste records, then the item, in a
// single transaction.
func (r *itemRepo) DeleteCascade(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.WasteRecord{}, "item_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.InventoryItem{}, "id = ?", id).Error
	})
}

func (r *itemRepo) SumAvailablePrice(t model.StockThresholds) (float64, error) {
	var sum float64
	err := r.db.Model(&model.InventoryItem{}).
		Where("quantity > ?", t.LowStock).
		Select("COALESCE(SUM(price), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *itemRepo) SumAvailableValue(t model.StockThresholds) (float64, error) {
	var sum float64
	err := r.db.Model(&model.InventoryItem{}).
		Where("quantity > ?", t.LowStock).
		Select("COALESCE(SUM(quantity * price), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *itemRepo) CountAvailable(t model.StockThresholds) (int64, error) {
	var count int64
	err := r.db.Model(&model.InventoryItem{}).Where("quantity > ?", t.LowStock).Count(&count).Error
	return count, err
}

func (r *itemRepo) CountLowStock(t model.StockThresholds) (int64, error) {
	var count int64
	err := r.db.Model(&model.InventoryItem{}).
		Where("quantity > 0 AND quantity <= ?", t.LowStock).
		Count(&count).Error
	return count, err
}

func (r *itemRepo) CountExpiring(t model.StockThresholds) (int64, error) {
	var count int64
	err := r.db.Model(&model.InventoryItem{}).
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", time.Now().Add(t.ExpiryHorizon)).
		Count(&count).Error
	return count, err
}

func (r *itemRepo) FindLowStock(t model.StockThresholds, limit int) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.withJoins(r.db).
		Where("quantity > 0 AND quantity <= ?", t.LowStock).
		Order("quantity ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *itemRepo) FindExpiring(t model.StockThresholds, limit int) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.withJoins(r.db).
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", time.Now().Add(t.ExpiryHorizon)).
		Order("expiry_date ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
