package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testThresholds = StockThresholds{
	LowStock:      10,
	ExpiryHorizon: 3 * 24 * time.Hour,
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		want     ItemStatus
	}{
		{"zero quantity is wasted", 0, StatusWasted},
		{"negative quantity is wasted", -2, StatusWasted},
		{"just above zero is low stock", 0.5, StatusLowStock},
		{"exactly at threshold is low stock", 10, StatusLowStock},
		{"just above threshold is available", 10.01, StatusAvailable},
		{"plenty is available", 500, StatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testThresholds.Classify(tt.quantity))
		})
	}
}

func TestIsExpiring(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("no expiry date never expires", func(t *testing.T) {
		assert.False(t, testThresholds.IsExpiring(nil, now))
	})

	t.Run("already past expiry", func(t *testing.T) {
		expiry := now.AddDate(0, 0, -1)
		assert.True(t, testThresholds.IsExpiring(&expiry, now))
	})

	t.Run("within horizon", func(t *testing.T) {
		expiry := now.Add(2 * 24 * time.Hour)
		assert.True(t, testThresholds.IsExpiring(&expiry, now))
	})

	t.Run("exactly at horizon", func(t *testing.T) {
		expiry := now.Add(3 * 24 * time.Hour)
		assert.True(t, testThresholds.IsExpiring(&expiry, now))
	})

	t.Run("beyond horizon", func(t *testing.T) {
		expiry := now.Add(3*24*time.Hour + time.Minute)
		assert.False(t, testThresholds.IsExpiring(&expiry, now))
	})
}

func TestDerive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(24 * time.Hour)

	item := InventoryItem{Quantity: 4, ExpiryDate: &expiry}
	item.Derive(testThresholds, now)

	// Low stock and expiring are independent facts.
	assert.Equal(t, StatusLowStock, item.Status)
	assert.True(t, item.Expiring)
}
