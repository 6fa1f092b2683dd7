package handler

import (
	"bytes"
	"io"
	"net/http"

	"pos-service/internal/exchange"
	"pos-service/internal/report"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (h *Handler) salesReport(c echo.Context) (report.Sales, error) {
	filter, err := report.NewFilter(c.QueryParam("from"), c.QueryParam("to"), "", h.location)
	if err != nil {
		return report.Sales{}, err
	}
	state := h.store.Snapshot()
	return report.SalesReport(state.Transactions, state.Products, filter), nil
}

// SalesReport aggregates sales over the requested day range
func (h *Handler) SalesReport(c echo.Context) error {
	log := logger.FromContext(c)

	sales, err := h.salesReport(c)
	if err != nil {
		return fail(c, log, "Invalid report range", err)
	}

	log.Info("Sales report built",
		zap.Int("transactions", sales.TransactionCount),
		zap.Int("variants", len(sales.Variants)),
		zap.Int("categories", len(sales.Categories)))
	return c.JSON(http.StatusOK, sales)
}

// ExportSalesReport downloads the per-variant section as CSV
func (h *Handler) ExportSalesReport(c echo.Context) error {
	return h.exportSales(c, "rapport-ventes", exchange.WriteSalesCSV, func(s report.Sales) int { return len(s.Variants) })
}

// ExportCategoryReport downloads the per-category section as CSV
func (h *Handler) ExportCategoryReport(c echo.Context) error {
	return h.exportSales(c, "rapport-categories", exchange.WriteCategorySalesCSV, func(s report.Sales) int { return len(s.Categories) })
}

func (h *Handler) exportSales(c echo.Context, prefix string, write func(io.Writer, report.Sales) error, rows func(report.Sales) int) error {
	log := logger.FromContext(c)

	sales, err := h.salesReport(c)
	if err != nil {
		return fail(c, log, "Invalid report range", err)
	}
	if rows(sales) == 0 {
		log.Warn("No sales to export", zap.String("report", prefix))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no sales to export for the selected period"})
	}

	var buf bytes.Buffer
	if err := write(&buf, sales); err != nil {
		return fail(c, log, "Failed to export sales report", err)
	}

	log.Info("Sales report exported", zap.String("report", prefix), zap.Int("rows", rows(sales)))
	return attachment(c, csvContentType, exchange.FileName(prefix, "csv", h.today()), buf.Bytes())
}

// Dashboard returns the headline figures
func (h *Handler) Dashboard(c echo.Context) error {
	d := report.BuildDashboard(h.store.Snapshot())
	logger.FromContext(c).Info("Dashboard built",
		zap.Int("products", d.ProductCount),
		zap.Int("low_stock_products", d.LowStockProducts))
	return c.JSON(http.StatusOK, d)
}
