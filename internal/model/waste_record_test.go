package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseReason(t *testing.T) {
	for _, valid := range []string{"EXPIRED", "DAMAGED", "OVERSTOCK", "PREPARATION", "OTHER"} {
		reason, ok := ParseReason(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, WasteReason(valid), reason)
	}

	for _, invalid := range []string{"", "expired", "SPOILED", "Expired "} {
		_, ok := ParseReason(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestWasteRecordMonth(t *testing.T) {
	r := WasteRecord{Date: time.Date(2025, 3, 7, 18, 30, 0, 0, time.UTC)}
	assert.Equal(t, "2025-03", r.Month())
}
