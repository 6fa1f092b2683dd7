package catalog

import (
	"strings"

	"pos-service/internal/model"
)

const (
	productPrefix     = "prod"
	categoryPrefix    = "cat"
	transactionPrefix = "trans"
)

// AddProduct appends p under a fresh id and registers its category name if it
// is new.
func AddProduct(state model.State, p model.Product, newID func(prefix string) string) (model.State, model.Product) {
	created := p.Clone()
	created.ID = newID(productPrefix)

	products := make([]model.Product, len(state.Products), len(state.Products)+1)
	copy(products, state.Products)

	categories, _ := ensureCategory(state.Categories, created.Category, newID)

	return model.State{
		Products:     append(products, created),
		Transactions: state.Transactions,
		Categories:   categories,
	}, created
}

// UpdateProduct replaces the product carrying p.ID at the same position,
// variants included, and registers its category name if it is new.
func UpdateProduct(state model.State, p model.Product, newID func(prefix string) string) (model.State, error) {
	idx := state.FindProduct(p.ID)
	if p.ID == "" || idx < 0 {
		return state, ErrProductNotFound
	}

	products := make([]model.Product, len(state.Products))
	copy(products, state.Products)
	products[idx] = p.Clone()

	categories, _ := ensureCategory(state.Categories, p.Category, newID)

	return model.State{
		Products:     products,
		Transactions: state.Transactions,
		Categories:   categories,
	}, nil
}

// ValidateProduct enforces the editor rules: non-blank name and category,
// positive price, at least one variant, and non-blank unique sizes with
// non-negative stock and threshold.
func ValidateProduct(p model.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if strings.TrimSpace(p.Category) == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	if !p.Price.IsPositive() {
		return &ValidationError{Field: "price", Message: "must be greater than 0"}
	}
	if len(p.Variants) == 0 {
		return &ValidationError{Field: "variants", Message: "at least one variant is required"}
	}

	sizes := make(map[string]struct{}, len(p.Variants))
	for _, v := range p.Variants {
		if strings.TrimSpace(v.Size) == "" {
			return &ValidationError{Field: "variants.size", Message: "every variant needs a size (use N/A when not applicable)"}
		}
		if _, dup := sizes[v.Size]; dup {
			return &ValidationError{Field: "variants.size", Message: "duplicate size " + v.Size}
		}
		sizes[v.Size] = struct{}{}
		if v.Stock < 0 {
			return &ValidationError{Field: "variants.stock", Message: "must not be negative"}
		}
		if v.LowStockThreshold < 0 {
			return &ValidationError{Field: "variants.lowStockThreshold", Message: "must not be negative"}
		}
	}
	return nil
}

// FilterProducts keeps products whose name or category contains search
// (case-insensitive) and, when category is set, whose category equals it.
// Results are ordered by name.
func FilterProducts(products []model.Product, search, category string) []model.Product {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Category), needle) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	sortByName(out)
	return out
}
