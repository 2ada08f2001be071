package service

import (
	"errors"
	"fmt"
	"time"

	"plateguard-backend/internal/model"
	"plateguard-backend/internal/repository"
	"plateguard-backend/internal/ws"
	"plateguard-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notFoundOr keeps missing rows and genuine storage failures distinct
// so the handler taxonomy maps them to 404 and 500 respectively.
func notFoundOr(sentinel, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

var (
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrWasteNotFound     = errors.New("waste record not found")
	ErrInvalidReason     = errors.New("invalid waste reason")
	ErrInvalidQuantity   = errors.New("waste quantity must be greater than zero")
	ErrInsufficientStock = errors.New("waste quantity exceeds current stock")
)

type InventoryService interface {
	CreateItem(req *CreateItemRequest) (*model.InventoryItem, error)
	GetItem(id uuid.UUID) (*model.InventoryItem, error)
	ListItems(f repository.ItemFilter) ([]model.InventoryItem, int64, error)
	UpdateItem(id uuid.UUID, req *UpdateItemRequest) (*model.InventoryItem, error)
	DeleteItem(id uuid.UUID) error
	RecordWaste(req *RecordWasteRequest) (*model.WasteRecord, error)
	MarkItemWasted(id uuid.UUID, reason, notes string) (*model.WasteRecord, error)
	GetWasteRecord(id uuid.UUID) (*model.WasteRecord, error)
	ListWaste(f repository.WasteFilter) ([]model.WasteRecord, int64, error)
	DeleteWasteRecord(id uuid.UUID) error
}

type CreateItemRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Quantity    float64    `json:"quantity" validate:"required"`
	Unit        string     `json:"unit" validate:"required"`
	Price       float64    `json:"price" validate:"required"`
	ExpiryDate  *time.Time `json:"expiryDate"`
	CategoryID  uuid.UUID  `json:"categoryId" validate:"uuid_required"`
	UserID      uuid.UUID  `json:"userId" validate:"uuid_required"`
}

// UpdateItemRequest is a partial update; nil fields keep their stored
// value.
type UpdateItemRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Quantity    *float64   `json:"quantity"`
	Unit        *string    `json:"unit"`
	Price       *float64   `json:"price"`
	ExpiryDate  *time.Time `json:"expiryDate"`
	CategoryID  *uuid.UUID `json:"categoryId"`
}

type RecordWasteRequest struct {
	ItemID   uuid.UUID `json:"itemId" validate:"uuid_required"`
	UserID   uuid.UUID `json:"userId" validate:"uuid_required"`
	Quantity float64   `json:"quantity" validate:"required"`
	Reason   string    `json:"reason" validate:"required"`
	Cost     float64   `json:"cost" validate:"required"`
	Notes    string    `json:"notes"`
}

type inventoryService struct {
	db           *gorm.DB
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	wasteRepo    repository.WasteRepository
	thresholds   model.StockThresholds
	hub          *ws.Hub
}

func NewInventoryService(
	db *gorm.DB,
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	wasteRepo repository.WasteRepository,
	thresholds model.StockThresholds,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		db:           db,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		wasteRepo:    wasteRepo,
		thresholds:   thresholds,
		hub:          hub,
	}
}

func (s *inventoryService) CreateItem(req *CreateItemRequest) (*model.InventoryItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	if req.Quantity < 0 || req.Price < 0 {
		return nil, fmt.Errorf("%w: quantity and price must not be negative", ErrValidation)
	}
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, notFoundOr(ErrCategoryNotFound, err)
	}
	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		return nil, notFoundOr(ErrUserNotFound, err)
	}

	item := &model.InventoryItem{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Price:       req.Price,
		ExpiryDate:  req.ExpiryDate,
		CategoryID:  req.CategoryID,
		UserID:      req.UserID,
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}

	created, err := s.itemRepo.FindByID(item.ID)
	if err != nil {
		return nil, err
	}
	created.Derive(s.thresholds, time.Now())

	s.hub.Publish("inventory_created", created)
	return created, nil
}

func (s *inventoryService) GetItem(id uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(ErrItemNotFound, err)
	}
	item.Derive(s.thresholds, time.Now())
	return item, nil
}

func (s *inventoryService) ListItems(f repository.ItemFilter) ([]model.InventoryItem, int64, error) {
	items, total, err := s.itemRepo.FindPage(f, s.thresholds)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	for i := range items {
		items[i].Derive(s.thresholds, now)
	}
	return items, total, nil
}

func (s *inventoryService) UpdateItem(id uuid.UUID, req *UpdateItemRequest) (*model.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(ErrItemNotFound, err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
		}
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		item.Price = *req.Price
	}
	if req.ExpiryDate != nil {
		item.ExpiryDate = req.ExpiryDate
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, notFoundOr(ErrCategoryNotFound, err)
		}
		item.CategoryID = *req.CategoryID
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}

	updated, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	updated.Derive(s.thresholds, time.Now())

	s.hub.Publish("inventory_updated", updated)
	return updated, nil
}

func (s *inventoryService) DeleteItem(id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(id); err != nil {
		return notFoundOr(ErrItemNotFound, err)
	}
	if err := s.itemRepo.DeleteCascade(id); err != nil {
		return err
	}
	s.hub.Publish("inventory_deleted", map[string]interface{}{"id": id})
	return nil
}

// applyWaste validates a disposal against the current stock and returns
// the remaining quantity. Disposing exactly the remaining stock is
// allowed; anything beyond it is not.
func applyWaste(current, quantity float64) (float64, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	if quantity > current {
		return 0, ErrInsufficientStock
	}
	return current - quantity, nil
}

// writeOffRecord builds the disposal entry for an item's full remaining
// stock, costed at quantity * price.
func writeOffRecord(item *model.InventoryItem, reason model.WasteReason, notes string, now time.Time) *model.WasteRecord {
	if notes == "" {
		notes = fmt.Sprintf("Marked %s as waste", item.Name)
	}
	return &model.WasteRecord{
		ItemID:   item.ID,
		UserID:   item.UserID,
		Quantity: item.Quantity,
		Reason:   reason,
		Cost:     item.Quantity * item.Price,
		Date:     now,
		Notes:    notes,
	}
}

// RecordWaste inserts a waste record and decrements the item's stock in
// one transaction, with the item row locked so concurrent disposals
// cannot drive the quantity negative.
func (s *inventoryService) RecordWaste(req *RecordWasteRequest) (*model.WasteRecord, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	reason, ok := model.ParseReason(req.Reason)
	if !ok {
		return nil, ErrInvalidReason
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if req.Cost < 0 {
		return nil, fmt.Errorf("%w: cost must not be negative", ErrValidation)
	}
	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		return nil, notFoundOr(ErrUserNotFound, err)
	}

	var record *model.WasteRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.InventoryItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, "id = ?", req.ItemID).Error; err != nil {
			return notFoundOr(ErrItemNotFound, err)
		}
		remaining, err := applyWaste(item.Quantity, req.Quantity)
		if err != nil {
			return err
		}

		record = &model.WasteRecord{
			ItemID:   item.ID,
			UserID:   req.UserID,
			Quantity: req.Quantity,
			Reason:   reason,
			Cost:     req.Cost,
			Date:     time.Now(),
			Notes:    req.Notes,
		}
		if err := s.wasteRepo.Create(tx, record); err != nil {
			return err
		}
		return s.itemRepo.UpdateQuantity(tx, item.ID, remaining)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.wasteRepo.FindByID(record.ID)
	if err != nil {
		return nil, err
	}
	s.deriveRecordItem(created)

	s.hub.Publish("waste_recorded", created)
	return created, nil
}

// MarkItemWasted writes off the item's full remaining stock. The
// generated waste record costs quantity * price; the reason defaults to
// EXPIRED when the caller gives none.
func (s *inventoryService) MarkItemWasted(id uuid.UUID, reason, notes string) (*model.WasteRecord, error) {
	parsed := model.ReasonExpired
	if reason != "" {
		var ok bool
		if parsed, ok = model.ParseReason(reason); !ok {
			return nil, ErrInvalidReason
		}
	}

	var record *model.WasteRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.InventoryItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, "id = ?", id).Error; err != nil {
			return notFoundOr(ErrItemNotFound, err)
		}

		record = writeOffRecord(&item, parsed, notes, time.Now())
		if err := s.wasteRepo.Create(tx, record); err != nil {
			return err
		}
		return s.itemRepo.UpdateQuantity(tx, item.ID, 0)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.wasteRepo.FindByID(record.ID)
	if err != nil {
		return nil, err
	}
	s.deriveRecordItem(created)

	s.hub.Publish("item_wasted", created)
	return created, nil
}

func (s *inventoryService) GetWasteRecord(id uuid.UUID) (*model.WasteRecord, error) {
	record, err := s.wasteRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(ErrWasteNotFound, err)
	}
	s.deriveRecordItem(record)
	return record, nil
}

func (s *inventoryService) ListWaste(f repository.WasteFilter) ([]model.WasteRecord, int64, error) {
	records, total, err := s.wasteRepo.FindPage(f)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	for i := range records {
		if records[i].Item != nil {
			records[i].Item.Derive(s.thresholds, now)
		}
	}
	return records, total, nil
}

// DeleteWasteRecord removes the record only; the disposed stock is not
// restored.
func (s *inventoryService) DeleteWasteRecord(id uuid.UUID) error {
	if _, err := s.wasteRepo.FindByID(id); err != nil {
		return notFoundOr(ErrWasteNotFound, err)
	}
	if err := s.wasteRepo.Delete(id); err != nil {
		return err
	}
	s.hub.Publish("waste_deleted", map[string]interface{}{"id": id})
	return nil
}

func (s *inventoryService) deriveRecordItem(record *model.WasteRecord) {
	if record.Item != nil {
		record.Item.Derive(s.thresholds, time.Now())
	}
}
