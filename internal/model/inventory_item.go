package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemStatus is the derived stock classification of an inventory item.
type ItemStatus string

const (
	StatusAvailable ItemStatus = "AVAILABLE"
	StatusLowStock  ItemStatus = "LOW_STOCK"
	StatusWasted    ItemStatus = "WASTED"

	// StatusExpiring is a valid list-filter token but never a stored or
	// classified status: "expiring" is an independent fact computed from
	// the expiry date, orthogonal to the quantity classification.
	StatusExpiring ItemStatus = "EXPIRING"
)

// StockThresholds configures the status classification.
type StockThresholds struct {
	LowStock      float64       // quantity at or below which an item is LOW_STOCK
	ExpiryHorizon time.Duration // window ahead of now in which an item counts as expiring
}

// Classify maps a quantity to its stock status. Quantity and expiry
// are the source of truth; status is never persisted.
func (t StockThresholds) Classify(quantity float64) ItemStatus {
	switch {
	case quantity <= 0:
		return StatusWasted
	case quantity <= t.LowStock:
		return StatusLowStock
	default:
		return StatusAvailable
	}
}

// IsExpiring reports whether an expiry date falls within the horizon.
// Items without an expiry date never expire.
func (t StockThresholds) IsExpiring(expiry *time.Time, now time.Time) bool {
	if expiry == nil {
		return false
	}
	return !expiry.After(now.Add(t.ExpiryHorizon))
}

// InventoryItem is a stocked ingredient or product. Status and
// Expiring are derived on read, never written to the database.
type InventoryItem struct {
	BaseModel
	Name        string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string     `gorm:"type:text" json:"description"`
	Quantity    float64    `gorm:"not null;default:0" json:"quantity"`
	Unit        string     `gorm:"type:varchar(20);not null" json:"unit" validate:"required"`
	Price       float64    `gorm:"not null" json:"price"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`

	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Status   ItemStatus `gorm:"-" json:"status"`
	Expiring bool       `gorm:"-" json:"expiring"`
}

// Derive fills the computed Status and Expiring facts.
func (i *InventoryItem) Derive(t StockThresholds, now time.Time) {
	i.Status = t.Classify(i.Quantity)
	i.Expiring = t.IsExpiring(i.ExpiryDate, now)
}
