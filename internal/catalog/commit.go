package catalog

import (
	"fmt"
	"time"

	"pos-service/internal/model"

	"github.com/shopspring/decimal"
)

// taxRate is the fixed VAT applied to every sale
var taxRate = decimal.NewFromFloat(0.20)

// Totals is the money breakdown of a cart
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals returns subtotal = Σ price×quantity, tax = subtotal×20% rounded
// to cents, total = subtotal+tax
func ComputeTotals(cart []model.CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range cart {
		subtotal = subtotal.Add(item.LineTotal())
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

type stockKey struct {
	productID string
	size      string
}

// CommitTransaction turns a cart into a transaction and decrements stock.
//
// Every line is checked against the live catalog first: a missing variant or
// a demand above live stock rejects the whole commit and state is returned
// unchanged. Lines sharing a (productID, size) key are summed. Products not
// referenced by the cart keep their variant storage.
func CommitTransaction(state model.State, cart []model.CartItem, method model.PaymentMethod, sellerID int, id string, now time.Time) (model.State, model.Transaction, error) {
	if len(cart) == 0 {
		return state, model.Transaction{}, ErrEmptyCart
	}
	if !method.Valid() {
		return state, model.Transaction{}, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
	}

	demand := make(map[stockKey]int, len(cart))
	order := make([]stockKey, 0, len(cart))
	for _, item := range cart {
		if item.Quantity < 1 {
			return state, model.Transaction{}, fmt.Errorf("%w: product %s size %q has quantity %d",
				ErrInvalidQuantity, item.ProductID, item.Size, item.Quantity)
		}
		key := stockKey{productID: item.ProductID, size: item.Size}
		if _, seen := demand[key]; !seen {
			order = append(order, key)
		}
		demand[key] += item.Quantity
	}

	for _, key := range order {
		idx := state.FindProduct(key.productID)
		if idx < 0 {
			return state, model.Transaction{}, &StockError{ProductID: key.productID, Size: key.size, Err: ErrVariantNotFound}
		}
		variant, ok := state.Products[idx].Variant(key.size)
		if !ok {
			return state, model.Transaction{}, &StockError{ProductID: key.productID, Size: key.size, Err: ErrVariantNotFound}
		}
		if demand[key] > variant.Stock {
			return state, model.Transaction{}, &StockError{
				ProductID: key.productID,
				Size:      key.size,
				Requested: demand[key],
				Available: variant.Stock,
				Err:       ErrInsufficientStock,
			}
		}
	}

	totals := ComputeTotals(cart)
	items := make([]model.TransactionItem, len(cart))
	for i, item := range cart {
		items[i] = model.TransactionItem{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Size:        item.Size,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	tx := model.Transaction{
		ID:            id,
		Date:          now.UTC(),
		Items:         items,
		Total:         totals.Total,
		Tax:           totals.Tax,
		PaymentMethod: method,
		SellerID:      sellerID,
	}

	products := make([]model.Product, len(state.Products))
	for i, p := range state.Products {
		if !referenced(demand, p) {
			products[i] = p
			continue
		}
		updated := p.Clone()
		for j, v := range updated.Variants {
			if qty, ok := demand[stockKey{productID: p.ID, size: v.Size}]; ok {
				updated.Variants[j].Stock = v.Stock - qty
			}
		}
		products[i] = updated
	}

	transactions := make([]model.Transaction, 0, len(state.Transactions)+1)
	transactions = append(transactions, tx)
	transactions = append(transactions, state.Transactions...)

	return model.State{
		Products:     products,
		Transactions: transactions,
		Categories:   state.Categories,
	}, tx, nil
}

func referenced(demand map[stockKey]int, p model.Product) bool {
	for _, v := range p.Variants {
		if _, ok := demand[stockKey{productID: p.ID, size: v.Size}]; ok {
			return true
		}
	}
	return false
}
