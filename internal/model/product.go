package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Backup documents and the storage slot carry amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultSize is the size label of a product sold without meaningful variants
const DefaultSize = "N/A"

// Product represents a catalog entry and its purchasable variants
type Product struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Price    decimal.Decimal  `json:"price"`
	Variants []ProductVariant `json:"variants"`
}

// ProductVariant is one size of a product with its own stock count.
// (product id, size) is the stock-tracking key.
type ProductVariant struct {
	Size              string `json:"size"`
	Stock             int    `json:"stock"`
	LowStockThreshold int    `json:"lowStockThreshold"`
}

// IsLowStock reports whether the variant is at or below its advisory threshold
func (v ProductVariant) IsLowStock() bool {
	return v.Stock <= v.LowStockThreshold
}

// Category is a name-keyed label created implicitly by products referencing it
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Variant returns the variant with the exact size label
func (p Product) Variant(size string) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.Size == size {
			return v, true
		}
	}
	return ProductVariant{}, false
}

// TotalStock sums the stock of every variant
func (p Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// HasLowStock reports whether any variant is at or below its threshold
func (p Product) HasLowStock() bool {
	for _, v := range p.Variants {
		if v.IsLowStock() {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no variant storage with p
func (p Product) Clone() Product {
	c := p
	if p.Variants != nil {
		c.Variants = make([]ProductVariant, len(p.Variants))
		copy(c.Variants, p.Variants)
	}
	return c
}
