package model

import (
	"time"

	"github.com/google/uuid"
)

// WasteReason explains why stock was thrown away.
type WasteReason string

const (
	ReasonExpired     WasteReason = "EXPIRED"
	ReasonDamaged     WasteReason = "DAMAGED"
	ReasonOverstock   WasteReason = "OVERSTOCK"
	ReasonPreparation WasteReason = "PREPARATION"
	ReasonOther       WasteReason = "OTHER"
)

// ParseReason validates a reason against the fixed enumeration.
func ParseReason(s string) (WasteReason, bool) {
	switch WasteReason(s) {
	case ReasonExpired, ReasonDamaged, ReasonOverstock, ReasonPreparation, ReasonOther:
		return WasteReason(s), true
	}
	return "", false
}

// WasteRecord captures one disposal event. Records are immutable after
// creation; they only go away through administrative deletion or the
// owning item's delete cascade.
type WasteRecord struct {
	BaseModel
	ItemID uuid.UUID      `gorm:"type:uuid;not null;index" json:"itemId"`
	Item   *InventoryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	UserID uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Quantity float64     `gorm:"not null" json:"quantity"`
	Reason   WasteReason `gorm:"type:varchar(20);not null" json:"reason"`
	Cost     float64     `gorm:"not null" json:"cost"`
	Date     time.Time   `gorm:"not null;index" json:"date"`
	Notes    string      `gorm:"type:text" json:"notes,omitempty"`
}

// Month returns the record's calendar month key (YYYY-MM); lexical
// order on these keys is also chronological order.
func (r *WasteRecord) Month() string {
	return r.Date.Format("2006-01")
}
