package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidQuantity      = errors.New("cart quantity must be at least 1")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrVariantNotFound      = errors.New("product variant not found")
	ErrProductNotFound      = errors.New("product not found")
)

// StockError reports the cart line that failed the stock check at commit time.
// It unwraps to ErrInsufficientStock or ErrVariantNotFound.
type StockError struct {
	ProductID string
	Size      string
	Requested int
	Available int
	Err       error
}

func (e *StockError) Error() string {
	if errors.Is(e.Err, ErrVariantNotFound) {
		return fmt.Sprintf("%v: product %s size %q", e.Err, e.ProductID, e.Size)
	}
	return fmt.Sprintf("%v: product %s size %q requested %d, available %d",
		e.Err, e.ProductID, e.Size, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return e.Err
}

// ValidationError describes a product field rejected before reaching the store
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
