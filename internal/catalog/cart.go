package catalog

import (
	"pos-service/internal/model"
)

// Cart operations are pure: they never modify the slice they receive and
// return the cart unchanged when a stock bound would be violated.

func findLine(cart []model.CartItem, productID, size string) int {
	for i, item := range cart {
		if item.ProductID == productID && item.Size == size {
			return i
		}
	}
	return -1
}

func copyCart(cart []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(cart))
	copy(out, cart)
	return out
}

// AddLine adds one unit of the variant to the cart. An existing line is
// incremented only while its quantity stays below the variant's stock; a new
// line is created only for a variant in stock.
func AddLine(cart []model.CartItem, product model.Product, variant model.ProductVariant) []model.CartItem {
	if i := findLine(cart, product.ID, variant.Size); i >= 0 {
		if cart[i].Quantity >= variant.Stock {
			return cart
		}
		out := copyCart(cart)
		out[i].Quantity++
		return out
	}

	if variant.Stock <= 0 {
		return cart
	}

	out := make([]model.CartItem, len(cart), len(cart)+1)
	copy(out, cart)
	return append(out, model.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
		Size:      variant.Size,
		Stock:     variant.Stock,
	})
}

// ChangeQuantity moves a line's quantity by delta. Reaching zero or below
// removes the line; exceeding the line's stock snapshot is ignored.
func ChangeQuantity(cart []model.CartItem, productID, size string, delta int) []model.CartItem {
	i := findLine(cart, productID, size)
	if i < 0 {
		return cart
	}

	newQuantity := cart[i].Quantity + delta
	if newQuantity <= 0 {
		return RemoveLine(cart, productID, size)
	}
	if newQuantity > cart[i].Stock {
		return cart
	}

	out := copyCart(cart)
	out[i].Quantity = newQuantity
	return out
}

// RemoveLine drops every line matching (productID, size)
func RemoveLine(cart []model.CartItem, productID, size string) []model.CartItem {
	out := make([]model.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ProductID == productID && item.Size == size {
			continue
		}
		out = append(out, item)
	}
	return out
}

// CartQuantity sums the quantities of every line
func CartQuantity(cart []model.CartItem) int {
	total := 0
	for _, item := range cart {
		total += item.Quantity
	}
	return total
}
