package handler

import (
	"time"

	"plateguard-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetWasteReport handles GET /api/reports. An explicit window needs
// both startDate and endDate; a lone bound falls back to the named
// period. endDate is inclusive of the whole day.
func (h *ReportHandler) GetWasteReport(c *fiber.Ctx) error {
	var start, end *time.Time

	if rawStart, rawEnd := c.Query("startDate"), c.Query("endDate"); rawStart != "" && rawEnd != "" {
		from, err := parseDate(rawStart)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		to, err := parseDate(rawEnd)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		eod := to.Add(24*time.Hour - time.Second)
		start, end = from, &eod
	}

	report, err := h.reportService.WasteReport(c.Query("period", "month"), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetDashboard handles GET /api/dashboard
func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.reportService.Dashboard(c.Query("period", "month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dashboard)
}
