package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups inventory items (Vegetables, Meat, Dairy, ...).
// Deletion is restricted while items still reference it.
type Category struct {
	BaseModel
	Name        string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	Items       []InventoryItem `gorm:"foreignKey:CategoryID" json:"-"`
}

// CategoryStats is the list-endpoint shape: the category plus the
// count and total value of the items it holds.
type CategoryStats struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ItemCount   int       `json:"itemCount"`
	TotalValue  float64   `json:"totalValue"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
