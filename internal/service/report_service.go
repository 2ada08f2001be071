package service

import (
	"math"
	"sort"
	"time"

	"plateguard-backend/internal/model"
	"plateguard-backend/internal/repository"
)

const (
	recentRecordsLimit = 20
	attentionListLimit = 10

	// Fraction of current inventory value assumed preserved by waste
	// tracking; a rough estimate, not an accounting figure.
	costSavedRate = 0.12
)

type ReportSummary struct {
	TotalWasteCost     float64 `json:"totalWasteCost"`
	TotalWasteQuantity float64 `json:"totalWasteQuantity"`
	WastePercentage    float64 `json:"wastePercentage"`
	TotalInventoryCost float64 `json:"totalInventoryCost"`
	WasteRecordsCount  int     `json:"wasteRecordsCount"`
}

type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Cost       float64 `json:"cost"`
	Quantity   float64 `json:"quantity"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ReasonBreakdown struct {
	Reason     string  `json:"reason"`
	Cost       float64 `json:"cost"`
	Quantity   float64 `json:"quantity"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type TrendPoint struct {
	Month    string  `json:"month"`
	Cost     float64 `json:"cost"`
	Quantity float64 `json:"quantity"`
	Count    int     `json:"count"`
}

type WasteReport struct {
	Summary            ReportSummary       `json:"summary"`
	WasteByCategory    []CategoryBreakdown `json:"wasteByCategory"`
	WasteByReason      []ReasonBreakdown   `json:"wasteByReason"`
	MonthlyTrend       []TrendPoint        `json:"monthlyTrend"`
	RecentWasteRecords []model.WasteRecord `json:"recentWasteRecords"`
}

type DashboardSummary struct {
	TotalInventoryItems int64   `json:"totalInventoryItems"`
	TotalInventoryValue float64 `json:"totalInventoryValue"`
	TotalWasteCost      float64 `json:"totalWasteCost"`
	TotalWasteQuantity  float64 `json:"totalWasteQuantity"`
	WastePercentage     float64 `json:"wastePercentage"`
	LowStockCount       int64   `json:"lowStockCount"`
	ExpiringCount       int64   `json:"expiringCount"`
	CostSaved           float64 `json:"costSaved"`
}

type Dashboard struct {
	Summary            DashboardSummary      `json:"summary"`
	WasteByCategory    []CategoryBreakdown   `json:"wasteByCategory"`
	WasteByReason      []ReasonBreakdown     `json:"wasteByReason"`
	MonthlyTrend       []TrendPoint          `json:"monthlyTrend"`
	RecentWasteRecords []model.WasteRecord   `json:"recentWasteRecords"`
	LowStockItems      []model.InventoryItem `json:"lowStockItems"`
	ExpiringItems      []model.InventoryItem `json:"expiringItems"`
}

type ReportService interface {
	WasteReport(period string, start, end *time.Time) (*WasteReport, error)
	Dashboard(period string) (*Dashboard, error)
}

type reportService struct {
	itemRepo   repository.ItemRepository
	wasteRepo  repository.WasteRepository
	thresholds model.StockThresholds
}

func NewReportService(itemRepo repository.ItemRepository, wasteRepo repository.WasteRepository, thresholds model.StockThresholds) ReportService {
	return &reportService{itemRepo: itemRepo, wasteRepo: wasteRepo, thresholds: thresholds}
}

// PeriodStart maps a named period to its inclusive lower bound.
// Unknown or empty periods fall back to a month.
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7)
	case "quarter":
		return now.AddDate(0, -3, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// share is part of total as a percentage, rounded to two decimals.
// A zero or negative total yields 0 rather than NaN.
func share(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return round2(part / total * 100)
}

type groupAgg struct {
	cost     float64
	quantity float64
	count    int
}

// BuildWasteReport folds waste records into the report aggregates.
// Records are expected newest first; the recent list is a prefix.
func BuildWasteReport(records []model.WasteRecord, totalInventoryCost float64) *WasteReport {
	var totalCost, totalQuantity float64
	byCategory := map[string]*groupAgg{}
	byReason := map[string]*groupAgg{}
	byMonth := map[string]*groupAgg{}

	accumulate := func(m map[string]*groupAgg, key string, r *model.WasteRecord) {
		agg := m[key]
		if agg == nil {
			agg = &groupAgg{}
			m[key] = agg
		}
		agg.cost += r.Cost
		agg.quantity += r.Quantity
		agg.count++
	}

	for i := range records {
		r := &records[i]
		totalCost += r.Cost
		totalQuantity += r.Quantity

		category := "Uncategorized"
		if r.Item != nil && r.Item.Category != nil {
			category = r.Item.Category.Name
		}
		accumulate(byCategory, category, r)
		accumulate(byReason, string(r.Reason), r)
		accumulate(byMonth, r.Month(), r)
	}

	categories := make([]CategoryBreakdown, 0, len(byCategory))
	for name, agg := range byCategory {
		categories = append(categories, CategoryBreakdown{
			Category:   name,
			Cost:       agg.cost,
			Quantity:   agg.quantity,
			Count:      agg.count,
			Percentage: share(agg.cost, totalCost),
		})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Category < categories[j].Category })

	reasons := make([]ReasonBreakdown, 0, len(byReason))
	for name, agg := range byReason {
		reasons = append(reasons, ReasonBreakdown{
			Reason:     name,
			Cost:       agg.cost,
			Quantity:   agg.quantity,
			Count:      agg.count,
			Percentage: share(agg.cost, totalCost),
		})
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i].Reason < reasons[j].Reason })

	trend := make([]TrendPoint, 0, len(byMonth))
	for month, agg := range byMonth {
		trend = append(trend, TrendPoint{
			Month:    month,
			Cost:     agg.cost,
			Quantity: agg.quantity,
			Count:    agg.count,
		})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Month < trend[j].Month })

	recent := records
	if len(recent) > recentRecordsLimit {
		recent = recent[:recentRecordsLimit]
	}
	if recent == nil {
		recent = []model.WasteRecord{}
	}

	return &WasteReport{
		Summary: ReportSummary{
			TotalWasteCost:     totalCost,
			TotalWasteQuantity: totalQuantity,
			WastePercentage:    share(totalCost, totalInventoryCost),
			TotalInventoryCost: totalInventoryCost,
			WasteRecordsCount:  len(records),
		},
		WasteByCategory:    categories,
		WasteByReason:      reasons,
		MonthlyTrend:       trend,
		RecentWasteRecords: recent,
	}
}

// WasteReport aggregates waste for a named period, or for an explicit
// date window when start or end is set.
func (s *reportService) WasteReport(period string, start, end *time.Time) (*WasteReport, error) {
	if start == nil && end == nil {
		from := PeriodStart(period, time.Now())
		start = &from
	}

	records, err := s.wasteRepo.FindInRange(start, end)
	if err != nil {
		return nil, err
	}
	s.deriveItems(records)

	inventoryCost, err := s.itemRepo.SumAvailablePrice(s.thresholds)
	if err != nil {
		return nil, err
	}

	return BuildWasteReport(records, inventoryCost), nil
}

func (s *reportService) Dashboard(period string) (*Dashboard, error) {
	from := PeriodStart(period, time.Now())
	records, err := s.wasteRepo.FindInRange(&from, nil)
	if err != nil {
		return nil, err
	}
	s.deriveItems(records)

	totalItems, err := s.itemRepo.CountAvailable(s.thresholds)
	if err != nil {
		return nil, err
	}
	totalValue, err := s.itemRepo.SumAvailableValue(s.thresholds)
	if err != nil {
		return nil, err
	}
	lowStockCount, err := s.itemRepo.CountLowStock(s.thresholds)
	if err != nil {
		return nil, err
	}
	expiringCount, err := s.itemRepo.CountExpiring(s.thresholds)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.itemRepo.FindLowStock(s.thresholds, attentionListLimit)
	if err != nil {
		return nil, err
	}
	expiring, err := s.itemRepo.FindExpiring(s.thresholds, attentionListLimit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range lowStock {
		lowStock[i].Derive(s.thresholds, now)
	}
	for i := range expiring {
		expiring[i].Derive(s.thresholds, now)
	}

	report := BuildWasteReport(records, totalValue)

	return &Dashboard{
		Summary: DashboardSummary{
			TotalInventoryItems: totalItems,
			TotalInventoryValue: totalValue,
			TotalWasteCost:      report.Summary.TotalWasteCost,
			TotalWasteQuantity:  report.Summary.TotalWasteQuantity,
			WastePercentage:     report.Summary.WastePercentage,
			LowStockCount:       lowStockCount,
			ExpiringCount:       expiringCount,
			CostSaved:           round2(totalValue * costSavedRate),
		},
		WasteByCategory:    report.WasteByCategory,
		WasteByReason:      report.WasteByReason,
		MonthlyTrend:       report.MonthlyTrend,
		RecentWasteRecords: report.RecentWasteRecords,
		LowStockItems:      lowStock,
		ExpiringItems:      expiring,
	}, nil
}

func (s *reportService) deriveItems(records []model.WasteRecord) {
	now := time.Now()
	for i := range records {
		if records[i].Item != nil {
			records[i].Item.Derive(s.thresholds, now)
		}
	}
}
