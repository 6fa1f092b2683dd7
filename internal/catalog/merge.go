package catalog

import (
	"strings"

	"pos-service/internal/model"

	"github.com/shopspring/decimal"
)

// ImportRow is one validated product+variant pairing from a bulk import.
// A product with N variants arrives as N rows sharing the same name.
type ImportRow struct {
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Size              string          `json:"size"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"lowStockThreshold"`
}

// MergeResult counts what a bulk import changed
type MergeResult struct {
	Rows              int `json:"rows"`
	ProductsCreated   int `json:"productsCreated"`
	ProductsUpdated   int `json:"productsUpdated"`
	VariantsAdded     int `json:"variantsAdded"`
	VariantsUpdated   int `json:"variantsUpdated"`
	CategoriesCreated int `json:"categoriesCreated"`
}

// MergeImport folds rows into a deep copy of the catalog, strictly in input
// order, so later rows see the effect of earlier ones.
//
// Products match by case-insensitive name; the matched product takes the
// row's price and category. Variants match by exact size: a match has its
// stock and threshold overwritten, otherwise a variant is appended. Unknown
// category names are created once per batch. Rows are trusted to be valid.
func MergeImport(state model.State, rows []ImportRow, newID func(prefix string) string) (model.State, MergeResult) {
	next := state.Clone()
	result := MergeResult{Rows: len(rows)}

	for _, row := range rows {
		var created bool
		next.Categories, created = ensureCategory(next.Categories, row.Category, newID)
		if created {
			result.CategoriesCreated++
		}

		idx := findProductByName(next.Products, row.Name)
		if idx < 0 {
			next.Products = append(next.Products, model.Product{
				ID:       newID(productPrefix),
				Name:     row.Name,
				Category: row.Category,
				Price:    row.Price,
				Variants: []model.ProductVariant{variantFromRow(row)},
			})
			result.ProductsCreated++
			continue
		}

		product := &next.Products[idx]
		product.Price = row.Price
		product.Category = row.Category
		result.ProductsUpdated++

		found := false
		for j := range product.Variants {
			if product.Variants[j].Size == row.Size {
				product.Variants[j].Stock = row.Stock
				product.Variants[j].LowStockThreshold = row.LowStockThreshold
				found = true
				break
			}
		}
		if found {
			result.VariantsUpdated++
		} else {
			product.Variants = append(product.Variants, variantFromRow(row))
			result.VariantsAdded++
		}
	}

	return next, result
}

func variantFromRow(row ImportRow) model.ProductVariant {
	return model.ProductVariant{
		Size:              row.Size,
		Stock:             row.Stock,
		LowStockThreshold: row.LowStockThreshold,
	}
}

func findProductByName(products []model.Product, name string) int {
	for i, p := range products {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}

// ensureCategory appends a category for name unless one with the exact name
// already exists. The input slice is never written to.
func ensureCategory(categories []model.Category, name string, newID func(prefix string) string) ([]model.Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return categories, false
		}
	}
	out := make([]model.Category, len(categories), len(categories)+1)
	copy(out, categories)
	return append(out, model.Category{ID: newID(categoryPrefix), Name: name}), true
}
