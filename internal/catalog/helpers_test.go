package catalog

import (
	"fmt"

	"pos-service/internal/model"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sequentialIDs returns an id generator yielding prefix_1, prefix_2, ...
func sequentialIDs() func(prefix string) string {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}

func teeShirt() model.Product {
	return model.Product{
		ID:       "prod_tee",
		Name:     "Tee",
		Category: "Hauts",
		Price:    price("10"),
		Variants: []model.ProductVariant{
			{Size: "M", Stock: 5, LowStockThreshold: 2},
			{Size: "L", Stock: 3, LowStockThreshold: 1},
		},
	}
}

func baseballCap() model.Product {
	return model.Product{
		ID:       "prod_cap",
		Name:     "Cap",
		Category: "Accessoires",
		Price:    price("7.99"),
		Variants: []model.ProductVariant{
			{Size: "N/A", Stock: 4, LowStockThreshold: 1},
		},
	}
}

func sampleState() model.State {
	return model.State{
		Products: []model.Product{teeShirt(), baseballCap()},
		Categories: []model.Category{
			{ID: "cat_hauts", Name: "Hauts"},
			{ID: "cat_acc", Name: "Accessoires"},
		},
		Transactions: []model.Transaction{},
	}
}

func line(p model.Product, size string, qty int) model.CartItem {
	v, _ := p.Variant(size)
	return model.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		Size:      size,
		Stock:     v.Stock,
	}
}
