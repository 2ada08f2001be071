package service

import (
	"fmt"
	"testing"
	"time"

	"plateguard-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wasteRecord(category string, reason model.WasteReason, quantity, cost float64, date time.Time) model.WasteRecord {
	return model.WasteRecord{
		Item: &model.InventoryItem{
			Category: &model.Category{Name: category},
		},
		Reason:   reason,
		Quantity: quantity,
		Cost:     cost,
		Date:     date,
	}
}

func TestBuildWasteReportEmpty(t *testing.T) {
	report := BuildWasteReport(nil, 0)

	assert.Zero(t, report.Summary.TotalWasteCost)
	assert.Zero(t, report.Summary.WastePercentage)
	assert.Zero(t, report.Summary.WasteRecordsCount)
	assert.Empty(t, report.WasteByCategory)
	assert.Empty(t, report.WasteByReason)
	assert.Empty(t, report.MonthlyTrend)
	assert.NotNil(t, report.RecentWasteRecords)
}

func TestBuildWasteReportSummary(t *testing.T) {
	march := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []model.WasteRecord{
		wasteRecord("Meat", model.ReasonDamaged, 2, 30, march),
		wasteRecord("Vegetables", model.ReasonExpired, 5, 10, march),
		wasteRecord("Meat", model.ReasonExpired, 1, 20, march),
	}

	report := BuildWasteReport(records, 600)

	assert.Equal(t, 60.0, report.Summary.TotalWasteCost)
	assert.Equal(t, 8.0, report.Summary.TotalWasteQuantity)
	assert.Equal(t, 3, report.Summary.WasteRecordsCount)
	assert.Equal(t, 600.0, report.Summary.TotalInventoryCost)
	assert.Equal(t, 10.0, report.Summary.WastePercentage)

	// A DAMAGED record worth 30 of a 60 total is half the waste.
	for _, r := range report.WasteByReason {
		if r.Reason == "DAMAGED" {
			assert.Equal(t, 50.0, r.Percentage)
			assert.Equal(t, 1, r.Count)
		}
	}
}

func TestBuildWasteReportGroupTotalsMatch(t *testing.T) {
	now := time.Now()
	var records []model.WasteRecord
	for i := 0; i < 25; i++ {
		records = append(records, wasteRecord(
			fmt.Sprintf("Category-%d", i%4),
			model.ReasonOther,
			float64(i),
			float64(i)*1.5,
			now.AddDate(0, -(i%3), 0),
		))
	}

	report := BuildWasteReport(records, 1000)

	var byCategory, byReason, byMonth float64
	for _, g := range report.WasteByCategory {
		byCategory += g.Cost
	}
	for _, g := range report.WasteByReason {
		byReason += g.Cost
	}
	for _, g := range report.MonthlyTrend {
		byMonth += g.Cost
	}

	assert.InDelta(t, report.Summary.TotalWasteCost, byCategory, 1e-9)
	assert.InDelta(t, report.Summary.TotalWasteCost, byReason, 1e-9)
	assert.InDelta(t, report.Summary.TotalWasteCost, byMonth, 1e-9)
}

func TestBuildWasteReportPercentagesSum(t *testing.T) {
	now := time.Now()
	records := []model.WasteRecord{
		wasteRecord("A", model.ReasonExpired, 1, 33.33, now),
		wasteRecord("B", model.ReasonDamaged, 1, 33.33, now),
		wasteRecord("C", model.ReasonOverstock, 1, 33.34, now),
	}

	report := BuildWasteReport(records, 100)

	var sum float64
	for _, g := range report.WasteByCategory {
		sum += g.Percentage
	}
	assert.InDelta(t, 100, sum, 0.05)
}

func TestBuildWasteReportZeroDenominator(t *testing.T) {
	records := []model.WasteRecord{
		wasteRecord("A", model.ReasonExpired, 1, 0, time.Now()),
	}

	report := BuildWasteReport(records, 0)

	assert.Zero(t, report.Summary.WastePercentage)
	for _, g := range report.WasteByCategory {
		assert.Zero(t, g.Percentage)
	}
}

func TestBuildWasteReportMonthlyTrendOrder(t *testing.T) {
	records := []model.WasteRecord{
		wasteRecord("A", model.ReasonOther, 1, 1, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
		wasteRecord("A", model.ReasonOther, 1, 1, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)),
		wasteRecord("A", model.ReasonOther, 1, 1, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
	}

	report := BuildWasteReport(records, 10)

	require.Len(t, report.MonthlyTrend, 3)
	assert.Equal(t, "2024-12", report.MonthlyTrend[0].Month)
	assert.Equal(t, "2025-01", report.MonthlyTrend[1].Month)
	assert.Equal(t, "2025-03", report.MonthlyTrend[2].Month)
}

func TestBuildWasteReportRecentCap(t *testing.T) {
	var records []model.WasteRecord
	for i := 0; i < 30; i++ {
		records = append(records, wasteRecord("A", model.ReasonOther, 1, 1, time.Now().Add(-time.Duration(i)*time.Hour)))
	}

	report := BuildWasteReport(records, 100)

	assert.Len(t, report.RecentWasteRecords, 20)
	// Records arrive newest first; the cap keeps the newest.
	assert.Equal(t, records[0].Date, report.RecentWasteRecords[0].Date)
	assert.Equal(t, 30, report.Summary.WasteRecordsCount)
}

func TestBuildWasteReportUncategorized(t *testing.T) {
	records := []model.WasteRecord{
		{Reason: model.ReasonOther, Quantity: 1, Cost: 5, Date: time.Now()},
	}

	report := BuildWasteReport(records, 100)

	require.Len(t, report.WasteByCategory, 1)
	assert.Equal(t, "Uncategorized", report.WasteByCategory[0].Category)
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period string
		want   time.Time
	}{
		{"week", now.AddDate(0, 0, -7)},
		{"month", now.AddDate(0, -1, 0)},
		{"quarter", now.AddDate(0, -3, 0)},
		{"year", now.AddDate(-1, 0, 0)},
		{"", now.AddDate(0, -1, 0)},
		{"fortnight", now.AddDate(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run("period "+tt.period, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodStart(tt.period, now))
		})
	}
}

func TestShare(t *testing.T) {
	assert.Equal(t, 33.33, share(1, 3))
	assert.Equal(t, 0.0, share(5, 0))
	assert.Equal(t, 100.0, share(7, 7))
}
