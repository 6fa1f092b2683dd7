package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness with the size of the loaded catalog
func (h *Handler) Health(c echo.Context) error {
	state := h.store.Snapshot()
	return c.JSON(http.StatusOK, echo.Map{
		"status":       "ok",
		"products":     len(state.Products),
		"transactions": len(state.Transactions),
	})
}
