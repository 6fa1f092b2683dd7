package handler

import (
	"net/http"

	"pos-service/internal/catalog"
	"pos-service/internal/model"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update requests.
// Variants replace the product's variant list wholesale.
type ProductRequest struct {
	Name     string                 `json:"name"`
	Category string                 `json:"category"`
	Price    decimal.Decimal        `json:"price"`
	Variants []model.ProductVariant `json:"variants"`
}

func (r ProductRequest) product(id string) model.Product {
	return model.Product{
		ID:       id,
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Variants: r.Variants,
	}
}

// ListProducts handles retrieving products filtered by search and category
func (h *Handler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	search := c.QueryParam("search")
	category := c.QueryParam("category")

	products := catalog.FilterProducts(h.store.Snapshot().Products, search, category)

	log.Info("Products retrieved successfully",
		zap.String("search", search),
		zap.String("category", category),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func (h *Handler) GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	product, ok := h.store.Product(id)
	if !ok {
		log.Warn("Product not found", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	log.Info("Product retrieved successfully",
		zap.String("product_id", id),
		zap.String("product_name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func (h *Handler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	product := req.product("")
	if err := catalog.ValidateProduct(product); err != nil {
		return fail(c, log, "Invalid product", err)
	}

	created, _, err := h.store.AddProduct(c.Request().Context(), product)
	if err != nil {
		return fail(c, log, "Failed to create product", err)
	}

	log.Info("Product created successfully",
		zap.String("product_id", created.ID),
		zap.String("name", created.Name),
		zap.Int("variants", len(created.Variants)))
	return c.JSON(http.StatusCreated, created)
}

// UpdateProduct handles replacing an existing product, variants included
func (h *Handler) UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	product := req.product(id)
	if err := catalog.ValidateProduct(product); err != nil {
		return fail(c, log, "Invalid product", err)
	}

	if _, err := h.store.UpdateProduct(c.Request().Context(), product); err != nil {
		return fail(c, log, "Failed to update product", err)
	}

	updated, _ := h.store.Product(id)
	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("name", updated.Name))
	return c.JSON(http.StatusOK, updated)
}
