package handler

import (
	"net/http"

	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListCategories returns every category, including ones no product uses anymore
func (h *Handler) ListCategories(c echo.Context) error {
	categories := h.store.Snapshot().Categories
	logger.FromContext(c).Info("Categories retrieved successfully", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}
