package report

import (
	"sort"

	"pos-service/internal/model"

	"github.com/shopspring/decimal"
)

// VariantSales aggregates sold lines per (product, size)
type VariantSales struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// CategorySales aggregates sold lines per category of the live product
type CategorySales struct {
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Sales is the report over a set of transactions
type Sales struct {
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	TransactionCount   int             `json:"transactionCount"`
	AverageTransaction decimal.Decimal `json:"averageTransaction"`
	Variants           []VariantSales  `json:"variants"`
	Categories         []CategorySales `json:"categories"`
}

type variantKey struct {
	productID string
	size      string
}

// SalesReport aggregates the transactions matching f.
//
// Revenue per line is price × quantity, tax excluded, while TotalRevenue sums
// transaction totals. Categories come from the current catalog, so lines of
// products deleted since the sale count toward variants but not categories.
func SalesReport(txs []model.Transaction, products []model.Product, f Filter) Sales {
	selected := FilterTransactions(txs, f)

	categoryOf := make(map[string]string, len(products))
	for _, p := range products {
		categoryOf[p.ID] = p.Category
	}

	report := Sales{
		TotalRevenue:       decimal.Zero,
		AverageTransaction: decimal.Zero,
		Variants:           []VariantSales{},
		Categories:         []CategorySales{},
	}
	variantIdx := make(map[variantKey]int)
	categoryIdx := make(map[string]int)

	for _, tx := range selected {
		report.TotalRevenue = report.TotalRevenue.Add(tx.Total)
		report.TransactionCount++

		for _, item := range tx.Items {
			revenue := item.LineTotal()

			key := variantKey{productID: item.ProductID, size: item.Size}
			i, ok := variantIdx[key]
			if !ok {
				i = len(report.Variants)
				variantIdx[key] = i
				report.Variants = append(report.Variants, VariantSales{
					ProductID: item.ProductID,
					Name:      item.ProductName,
					Size:      item.Size,
					Revenue:   decimal.Zero,
				})
			}
			report.Variants[i].Quantity += item.Quantity
			report.Variants[i].Revenue = report.Variants[i].Revenue.Add(revenue)

			category, ok := categoryOf[item.ProductID]
			if !ok {
				continue
			}
			j, ok := categoryIdx[category]
			if !ok {
				j = len(report.Categories)
				categoryIdx[category] = j
				report.Categories = append(report.Categories, CategorySales{Category: category, Revenue: decimal.Zero})
			}
			report.Categories[j].Quantity += item.Quantity
			report.Categories[j].Revenue = report.Categories[j].Revenue.Add(revenue)
		}
	}

	if report.TransactionCount > 0 {
		report.AverageTransaction = report.TotalRevenue.
			Div(decimal.NewFromInt(int64(report.TransactionCount))).
			Round(2)
	}

	sort.SliceStable(report.Variants, func(i, j int) bool {
		return report.Variants[i].Quantity > report.Variants[j].Quantity
	})
	sort.SliceStable(report.Categories, func(i, j int) bool {
		return report.Categories[i].Revenue.GreaterThan(report.Categories[j].Revenue)
	})
	return report
}
