package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is one of the fixed tender types accepted at the till
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Espèces"
	PaymentCard   PaymentMethod = "Carte"
	PaymentCheque PaymentMethod = "Chèque"
)

// PaymentMethods lists the accepted tender types in display order
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentCheque}

// Valid reports whether m is one of the accepted tender types
func (m PaymentMethod) Valid() bool {
	for _, pm := range PaymentMethods {
		if m == pm {
			return true
		}
	}
	return false
}

// CartItem is a session-local cart line. Name, price and stock are captured
// when the line is created and are not refreshed afterwards.
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Stock     int             `json:"stock"`
}

// LineTotal is price × quantity
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TransactionItem is a point-in-time copy of a sold cart line. It does not
// follow later edits or removal of the product.
type TransactionItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// LineTotal is price × quantity
func (i TransactionItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Transaction is an immutable record of a completed sale
type Transaction struct {
	ID            string            `json:"id"`
	Date          time.Time         `json:"date"`
	Items         []TransactionItem `json:"items"`
	Total         decimal.Decimal   `json:"total"`
	Tax           decimal.Decimal   `json:"tax"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	SellerID      int               `json:"sellerId"`
}

// TotalQuantity sums the quantity of every line
func (t Transaction) TotalQuantity() int {
	total := 0
	for _, item := range t.Items {
		total += item.Quantity
	}
	return total
}

// Clone returns a copy that shares no item storage with t
func (t Transaction) Clone() Transaction {
	c := t
	if t.Items != nil {
		c.Items = make([]TransactionItem, len(t.Items))
		copy(c.Items, t.Items)
	}
	return c
}
