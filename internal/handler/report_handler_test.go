package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"plateguard-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportService struct {
	period     string
	start, end *time.Time
}

func (s *stubReportService) WasteReport(period string, start, end *time.Time) (*service.WasteReport, error) {
	s.period, s.start, s.end = period, start, end
	return &service.WasteReport{}, nil
}

func (s *stubReportService) Dashboard(period string) (*service.Dashboard, error) {
	s.period = period
	return &service.Dashboard{}, nil
}

func newReportApp(stub *stubReportService) *fiber.App {
	app := fiber.New()
	h := NewReportHandler(stub)
	app.Get("/reports", h.GetWasteReport)
	app.Get("/dashboard", h.GetDashboard)
	return app
}

func TestGetWasteReportExplicitWindow(t *testing.T) {
	stub := &stubReportService{}
	app := newReportApp(stub)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports?startDate=2025-03-01&endDate=2025-03-15", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NotNil(t, stub.start)
	require.NotNil(t, stub.end)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *stub.start)
	// endDate covers the whole day.
	assert.Equal(t, time.Date(2025, 3, 15, 23, 59, 59, 0, time.UTC), *stub.end)
}

func TestGetWasteReportLoneBoundFallsBackToPeriod(t *testing.T) {
	t.Run("endDate only", func(t *testing.T) {
		stub := &stubReportService{}
		app := newReportApp(stub)

		resp, err := app.Test(httptest.NewRequest("GET", "/reports?endDate=2025-03-15&period=week", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, stub.start)
		assert.Nil(t, stub.end)
		assert.Equal(t, "week", stub.period)
	})

	t.Run("startDate only", func(t *testing.T) {
		stub := &stubReportService{}
		app := newReportApp(stub)

		resp, err := app.Test(httptest.NewRequest("GET", "/reports?startDate=2025-03-01", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, stub.start)
		assert.Nil(t, stub.end)
		assert.Equal(t, "month", stub.period)
	})
}

func TestGetWasteReportBadDate(t *testing.T) {
	stub := &stubReportService{}
	app := newReportApp(stub)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports?startDate=yesterday&endDate=2025-03-15", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetDashboardPeriod(t *testing.T) {
	stub := &stubReportService{}
	app := newReportApp(stub)

	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard?period=year", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "year", stub.period)
}
