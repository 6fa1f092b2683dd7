package report

import (
	"pos-service/internal/model"

	"github.com/shopspring/decimal"
)

// RecentLimit is how many transactions the dashboard lists
const RecentLimit = 5

// Dashboard holds the headline figures of the catalog
type Dashboard struct {
	TotalRevenue       decimal.Decimal     `json:"totalRevenue"`
	TransactionCount   int                 `json:"transactionCount"`
	ProductCount       int                 `json:"productCount"`
	LowStockProducts   int                 `json:"lowStockProducts"`
	RecentTransactions []model.Transaction `json:"recentTransactions"`
}

// BuildDashboard summarizes state. A product counts as low on stock when any
// of its variants is at or below its threshold.
func BuildDashboard(state model.State) Dashboard {
	d := Dashboard{
		TotalRevenue:     decimal.Zero,
		TransactionCount: len(state.Transactions),
		ProductCount:     len(state.Products),
	}
	for _, tx := range state.Transactions {
		d.TotalRevenue = d.TotalRevenue.Add(tx.Total)
	}
	for _, p := range state.Products {
		if p.HasLowStock() {
			d.LowStockProducts++
		}
	}

	recent := state.Transactions
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	d.RecentTransactions = make([]model.Transaction, len(recent))
	copy(d.RecentTransactions, recent)
	return d
}
