package handler

import (
	"net/http"
	"net/url"

	"pos-service/internal/catalog"
	"pos-service/internal/middleware"
	"pos-service/internal/model"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CartResponse is the session cart with its money preview
type CartResponse struct {
	Items    []model.CartItem `json:"items"`
	Quantity int              `json:"quantity"`
	catalog.Totals
}

// CartLineRequest identifies a cart line and, for quantity changes, a delta
type CartLineRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Delta     int    `json:"delta"`
}

// CheckoutRequest selects the tender type
type CheckoutRequest struct {
	PaymentMethod model.PaymentMethod `json:"payment_method"`
}

func cartResponse(cart []model.CartItem) CartResponse {
	return CartResponse{
		Items:    cart,
		Quantity: catalog.CartQuantity(cart),
		Totals:   catalog.ComputeTotals(cart),
	}
}

func sessionID(c echo.Context) string {
	claims, _ := middleware.ClaimsFromContext(c)
	return claims.SessionID()
}

// GetCart returns the session cart
func (h *Handler) GetCart(c echo.Context) error {
	cart := h.carts.Get(sessionID(c))
	logger.FromContext(c).Debug("Cart retrieved", zap.Int("lines", len(cart)))
	return c.JSON(http.StatusOK, cartResponse(cart))
}

// AddCartItem adds one unit of a variant. Stock is read from the live
// catalog; adding beyond it leaves the cart unchanged.
func (h *Handler) AddCartItem(c echo.Context) error {
	log := logger.FromContext(c)

	var req CartLineRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Size == "" {
		req.Size = model.DefaultSize
	}

	product, ok := h.store.Product(req.ProductID)
	if !ok {
		log.Warn("Product not found", zap.String("product_id", req.ProductID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	variant, ok := product.Variant(req.Size)
	if !ok {
		log.Warn("Variant not found", zap.String("product_id", req.ProductID), zap.String("size", req.Size))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "variant not found"})
	}

	cart := h.carts.Update(sessionID(c), func(cart []model.CartItem) []model.CartItem {
		return catalog.AddLine(cart, product, variant)
	})

	log.Info("Cart line added",
		zap.String("product_id", product.ID),
		zap.String("size", variant.Size),
		zap.Int("stock", variant.Stock),
		zap.Int("lines", len(cart)))
	return c.JSON(http.StatusOK, cartResponse(cart))
}

// ChangeCartItem moves a line's quantity by delta, removing it at zero
func (h *Handler) ChangeCartItem(c echo.Context) error {
	log := logger.FromContext(c)

	var req CartLineRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	cart := h.carts.Update(sessionID(c), func(cart []model.CartItem) []model.CartItem {
		return catalog.ChangeQuantity(cart, req.ProductID, req.Size, req.Delta)
	})

	log.Info("Cart line quantity changed",
		zap.String("product_id", req.ProductID),
		zap.String("size", req.Size),
		zap.Int("delta", req.Delta))
	return c.JSON(http.StatusOK, cartResponse(cart))
}

// RemoveCartItem drops a line unconditionally
func (h *Handler) RemoveCartItem(c echo.Context) error {
	productID := c.Param("productId")
	size := c.Param("*")
	if unescaped, err := url.PathUnescape(size); err == nil {
		size = unescaped
	}

	cart := h.carts.Update(sessionID(c), func(cart []model.CartItem) []model.CartItem {
		return catalog.RemoveLine(cart, productID, size)
	})

	logger.FromContext(c).Info("Cart line removed",
		zap.String("product_id", productID),
		zap.String("size", size))
	return c.JSON(http.StatusOK, cartResponse(cart))
}

// Checkout commits the session cart as a transaction and empties it
func (h *Handler) Checkout(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFromContext(c)

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	cart := h.carts.Get(claims.SessionID())
	if len(cart) == 0 {
		log.Warn("Checkout of an empty cart")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": catalog.ErrEmptyCart.Error()})
	}

	tx, _, err := h.store.CompleteTransaction(c.Request().Context(), cart, req.PaymentMethod, claims.UserID)
	if err != nil {
		return fail(c, log, "Failed to complete transaction", err)
	}
	h.carts.Clear(claims.SessionID())

	log.Info("Checkout completed",
		zap.String("transaction_id", tx.ID),
		zap.String("payment_method", string(tx.PaymentMethod)),
		zap.String("total", tx.Total.StringFixed(2)))
	return c.JSON(http.StatusCreated, tx)
}
