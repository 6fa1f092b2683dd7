package handler

import (
	"net/http"

	"pos-service/internal/exchange"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DownloadBackup sends the full state as a JSON file
func (h *Handler) DownloadBackup(c echo.Context) error {
	log := logger.FromContext(c)

	state := h.store.Snapshot()
	data, err := exchange.ExportBackup(state)
	if err != nil {
		return fail(c, log, "Failed to export backup", err)
	}

	log.Info("Backup exported",
		zap.Int("products", len(state.Products)),
		zap.Int("transactions", len(state.Transactions)),
		zap.Int("categories", len(state.Categories)))
	return attachment(c, echo.MIMEApplicationJSON, exchange.FileName("grso-pos-backup", "json", h.today()), data)
}

// RestoreBackup replaces the whole state with an uploaded backup
func (h *Handler) RestoreBackup(c echo.Context) error {
	log := logger.FromContext(c)

	data, err := readUpload(c)
	if err != nil {
		log.Warn("Failed to read backup upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	restored, err := exchange.ParseBackup(data)
	if err != nil {
		return fail(c, log, "Backup rejected", err)
	}

	state, err := h.store.Replace(c.Request().Context(), restored)
	if err != nil {
		return fail(c, log, "Failed to restore backup", err)
	}

	log.Info("Backup restored",
		zap.Int("products", len(state.Products)),
		zap.Int("transactions", len(state.Transactions)),
		zap.Int("categories", len(state.Categories)))
	return c.JSON(http.StatusOK, echo.Map{
		"products":     len(state.Products),
		"transactions": len(state.Transactions),
		"categories":   len(state.Categories),
	})
}
