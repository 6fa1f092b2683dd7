package handler

import (
	"bytes"
	"net/http"

	"pos-service/internal/exchange"
	"pos-service/internal/report"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const csvContentType = "text/csv; charset=utf-8"

func (h *Handler) transactionFilter(c echo.Context) (report.Filter, error) {
	return report.NewFilter(c.QueryParam("from"), c.QueryParam("to"), c.QueryParam("search"), h.location)
}

// ListTransactions returns transactions matching the day range and search,
// newest first
func (h *Handler) ListTransactions(c echo.Context) error {
	log := logger.FromContext(c)

	filter, err := h.transactionFilter(c)
	if err != nil {
		return fail(c, log, "Invalid transaction filter", err)
	}

	txs := report.FilterTransactions(h.store.Snapshot().Transactions, filter)
	log.Info("Transactions retrieved successfully",
		zap.String("search", filter.Search),
		zap.Int("count", len(txs)))
	return c.JSON(http.StatusOK, txs)
}

// ExportTransactions downloads the filtered transactions as CSV
func (h *Handler) ExportTransactions(c echo.Context) error {
	log := logger.FromContext(c)

	filter, err := h.transactionFilter(c)
	if err != nil {
		return fail(c, log, "Invalid transaction filter", err)
	}

	txs := report.FilterTransactions(h.store.Snapshot().Transactions, filter)
	if len(txs) == 0 {
		log.Warn("No transactions to export")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no transactions to export for the selected filters"})
	}

	var buf bytes.Buffer
	if err := exchange.WriteTransactionsCSV(&buf, txs, h.location); err != nil {
		return fail(c, log, "Failed to export transactions", err)
	}

	log.Info("Transactions exported", zap.Int("count", len(txs)))
	return attachment(c, csvContentType, exchange.FileName("transactions", "csv", h.today()), buf.Bytes())
}
