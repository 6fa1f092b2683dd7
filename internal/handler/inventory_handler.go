package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pos-service/internal/catalog"
	"pos-service/internal/exchange"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// maxUploadBytes bounds imported CSV and backup payloads
const maxUploadBytes = 10 << 20

var errUploadTooLarge = errors.New("uploaded file is too large")

// readUpload returns the "file" part of a multipart form, or the raw body
func readUpload(c echo.Context) ([]byte, error) {
	var src io.Reader = c.Request().Body
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing file field: %w", err)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxUploadBytes {
		return nil, errUploadTooLarge
	}
	return data, nil
}

// ExportInventory downloads the filtered inventory as CSV, one row per variant
func (h *Handler) ExportInventory(c echo.Context) error {
	log := logger.FromContext(c)
	search := c.QueryParam("search")
	category := c.QueryParam("category")

	products := catalog.FilterProducts(h.store.Snapshot().Products, search, category)
	if len(products) == 0 {
		log.Warn("No products to export", zap.String("search", search), zap.String("category", category))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no products to export for the selected filters"})
	}

	var buf bytes.Buffer
	if err := exchange.WriteInventoryCSV(&buf, products); err != nil {
		return fail(c, log, "Failed to export inventory", err)
	}

	log.Info("Inventory exported", zap.Int("products", len(products)))
	return attachment(c, csvContentType, exchange.FileName("inventaire", "csv", h.today()), buf.Bytes())
}

// ImportInventory merges an inventory CSV into the catalog. Any invalid row
// rejects the whole file.
func (h *Handler) ImportInventory(c echo.Context) error {
	log := logger.FromContext(c)

	data, err := readUpload(c)
	if err != nil {
		prometheus.RecordImportRejected("read_error")
		log.Warn("Failed to read inventory upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	rows, err := exchange.ReadInventoryCSV(data)
	if err != nil {
		prometheus.RecordImportRejected(importRejectReason(err))
		return fail(c, log, "Inventory import rejected", err)
	}

	result, _, err := h.store.BulkImport(c.Request().Context(), rows)
	if err != nil {
		return fail(c, log, "Failed to merge inventory import", err)
	}

	log.Info("Inventory imported",
		zap.Int("rows", result.Rows),
		zap.Int("products_created", result.ProductsCreated),
		zap.Int("products_updated", result.ProductsUpdated))
	return c.JSON(http.StatusOK, result)
}

func importRejectReason(err error) string {
	var headersErr *exchange.MissingHeadersError
	var rowErr *exchange.RowError
	switch {
	case errors.Is(err, exchange.ErrEmptyCSV):
		return "empty"
	case errors.As(err, &headersErr):
		return "missing_headers"
	case errors.As(err, &rowErr):
		return "invalid_row"
	default:
		return "malformed"
	}
}
