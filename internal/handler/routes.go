package handler

import (
	mid "pos-service/internal/middleware"
	"pos-service/internal/model"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the API on e
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/health", h.Health)

	// Login picker
	e.GET("/api/users", h.ListUsers)
	e.POST("/api/session", h.OpenSession)

	api := e.Group("/api", mid.SessionAuthMiddleware(h.jwt))
	api.GET("/navigation", h.Navigation)
	api.DELETE("/session", h.CloseSession)

	// Catalog
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.POST("/products", h.CreateProduct, mid.RequireView(model.ViewInventory))
	api.PUT("/products/:id", h.UpdateProduct, mid.RequireView(model.ViewInventory))
	api.GET("/categories", h.ListCategories)

	// Point of sale
	api.GET("/cart", h.GetCart)
	api.POST("/cart/items", h.AddCartItem)
	api.PATCH("/cart/items", h.ChangeCartItem)
	// The size may contain a slash, as in N/A
	api.DELETE("/cart/items/:productId/*", h.RemoveCartItem)
	api.POST("/checkout", h.Checkout)

	// History and reports
	api.GET("/transactions", h.ListTransactions)
	api.GET("/transactions/export", h.ExportTransactions)
	api.GET("/reports/sales", h.SalesReport)
	api.GET("/reports/sales/export", h.ExportSalesReport)
	api.GET("/reports/sales/categories/export", h.ExportCategoryReport)
	api.GET("/dashboard", h.Dashboard)

	// Admin
	inventory := api.Group("/inventory", mid.RequireView(model.ViewInventory))
	inventory.GET("/export", h.ExportInventory)
	inventory.POST("/import", h.ImportInventory)

	backup := api.Group("/backup", mid.RequireView(model.ViewBackup))
	backup.GET("", h.DownloadBackup)
	backup.POST("/restore", h.RestoreBackup)
}
