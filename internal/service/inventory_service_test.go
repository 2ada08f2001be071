package service

import (
	"errors"
	"testing"
	"time"

	"plateguard-backend/internal/model"
	"plateguard-backend/internal/repository"
	"plateguard-backend/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestApplyWaste(t *testing.T) {
	t.Run("partial disposal decrements stock", func(t *testing.T) {
		remaining, err := applyWaste(10, 4)
		assert.NoError(t, err)
		assert.Equal(t, 6.0, remaining)
	})

	t.Run("disposing exactly the remaining stock", func(t *testing.T) {
		remaining, err := applyWaste(5, 5)
		assert.NoError(t, err)
		assert.Zero(t, remaining)
	})

	t.Run("more than stock is rejected", func(t *testing.T) {
		_, err := applyWaste(3, 3.5)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		_, err := applyWaste(3, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		_, err := applyWaste(3, -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestWriteOffRecord(t *testing.T) {
	now := time.Now()
	item := &model.InventoryItem{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Name:      "Salmon Fillet",
		Quantity:  2.5,
		Price:     22,
		UserID:    uuid.New(),
	}

	t.Run("costs the full remaining stock", func(t *testing.T) {
		record := writeOffRecord(item, model.ReasonDamaged, "freezer failure", now)

		assert.Equal(t, item.ID, record.ItemID)
		assert.Equal(t, item.UserID, record.UserID)
		assert.Equal(t, 2.5, record.Quantity)
		assert.Equal(t, 55.0, record.Cost)
		assert.Equal(t, model.ReasonDamaged, record.Reason)
		assert.Equal(t, "freezer failure", record.Notes)
		assert.Equal(t, now, record.Date)
	})

	t.Run("default notes name the item", func(t *testing.T) {
		record := writeOffRecord(item, model.ReasonExpired, "", now)
		assert.Equal(t, "Marked Salmon Fillet as waste", record.Notes)
	})
}

type stubItemRepo struct {
	findErr error
}

func (s *stubItemRepo) Create(item *model.InventoryItem) error { return nil }
func (s *stubItemRepo) FindByID(id uuid.UUID) (*model.InventoryItem, error) {
	return nil, s.findErr
}
func (s *stubItemRepo) FindPage(f repository.ItemFilter, t model.StockThresholds) ([]model.InventoryItem, int64, error) {
	return nil, 0, nil
}
func (s *stubItemRepo) Update(item *model.InventoryItem) error                       { return nil }
func (s *stubItemRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, q float64) error    { return nil }
func (s *stubItemRepo) DeleteCascade(id uuid.UUID) error                             { return nil }
func (s *stubItemRepo) SumAvailablePrice(t model.StockThresholds) (float64, error)   { return 0, nil }
func (s *stubItemRepo) SumAvailableValue(t model.StockThresholds) (float64, error)   { return 0, nil }
func (s *stubItemRepo) CountAvailable(t model.StockThresholds) (int64, error)        { return 0, nil }
func (s *stubItemRepo) CountLowStock(t model.StockThresholds) (int64, error)         { return 0, nil }
func (s *stubItemRepo) CountExpiring(t model.StockThresholds) (int64, error)         { return 0, nil }
func (s *stubItemRepo) FindLowStock(t model.StockThresholds, limit int) ([]model.InventoryItem, error) {
	return nil, nil
}
func (s *stubItemRepo) FindExpiring(t model.StockThresholds, limit int) ([]model.InventoryItem, error) {
	return nil, nil
}

type stubWasteRepo struct {
	findErr error
}

func (s *stubWasteRepo) Create(tx *gorm.DB, record *model.WasteRecord) error { return nil }
func (s *stubWasteRepo) FindByID(id uuid.UUID) (*model.WasteRecord, error) {
	return nil, s.findErr
}
func (s *stubWasteRepo) FindPage(f repository.WasteFilter) ([]model.WasteRecord, int64, error) {
	return nil, 0, nil
}
func (s *stubWasteRepo) FindInRange(start, end *time.Time) ([]model.WasteRecord, error) {
	return nil, nil
}
func (s *stubWasteRepo) Delete(id uuid.UUID) error { return nil }

func newStubInventoryService(itemErr, wasteErr error) InventoryService {
	return NewInventoryService(
		nil,
		&stubItemRepo{findErr: itemErr},
		nil,
		nil,
		&stubWasteRepo{findErr: wasteErr},
		model.StockThresholds{LowStock: 10, ExpiryHorizon: 3 * 24 * time.Hour},
		ws.NewHub(),
	)
}

func TestGetItemErrorMapping(t *testing.T) {
	t.Run("missing row is 404 material", func(t *testing.T) {
		svc := newStubInventoryService(gorm.ErrRecordNotFound, nil)
		_, err := svc.GetItem(uuid.New())
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("storage failure passes through", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		svc := newStubInventoryService(dbErr, nil)
		_, err := svc.GetItem(uuid.New())
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrItemNotFound)
	})
}

func TestGetWasteRecordErrorMapping(t *testing.T) {
	t.Run("missing row is 404 material", func(t *testing.T) {
		svc := newStubInventoryService(nil, gorm.ErrRecordNotFound)
		_, err := svc.GetWasteRecord(uuid.New())
		assert.ErrorIs(t, err, ErrWasteNotFound)
	})

	t.Run("storage failure passes through", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		svc := newStubInventoryService(nil, dbErr)
		_, err := svc.GetWasteRecord(uuid.New())
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrWasteNotFound)
	})
}
