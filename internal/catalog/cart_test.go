package catalog

import (
	"testing"

	"pos-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart(t *testing.T) {
	tee := teeShirt()
	medium, _ := tee.Variant("M")

	t.Run("AddLine_CreatesLineWithSnapshot", func(t *testing.T) {
		cart := AddLine(nil, tee, medium)

		require.Len(t, cart, 1)
		assert.Equal(t, model.CartItem{
			ProductID: "prod_tee",
			Name:      "Tee",
			Price:     tee.Price,
			Quantity:  1,
			Size:      "M",
			Stock:     5,
		}, cart[0])
	})

	t.Run("AddLine_IncrementsExistingLine", func(t *testing.T) {
		cart := AddLine(AddLine(nil, tee, medium), tee, medium)

		require.Len(t, cart, 1)
		assert.Equal(t, 2, cart[0].Quantity)
	})

	t.Run("AddLine_NeverExceedsStock", func(t *testing.T) {
		var cart []model.CartItem
		for i := 0; i < 10; i++ {
			cart = AddLine(cart, tee, medium)
		}

		require.Len(t, cart, 1)
		assert.Equal(t, medium.Stock, cart[0].Quantity)
	})

	t.Run("AddLine_IgnoresOutOfStockVariant", func(t *testing.T) {
		empty := model.ProductVariant{Size: "XL", Stock: 0}

		cart := AddLine(nil, tee, empty)
		assert.Empty(t, cart)
	})

	t.Run("AddLine_DoesNotModifyInput", func(t *testing.T) {
		original := AddLine(nil, tee, medium)
		_ = AddLine(original, tee, medium)

		assert.Equal(t, 1, original[0].Quantity)
	})

	t.Run("AddLine_DistinguishesSizes", func(t *testing.T) {
		large, _ := tee.Variant("L")
		cart := AddLine(AddLine(nil, tee, medium), tee, large)

		require.Len(t, cart, 2)
		assert.Equal(t, "M", cart[0].Size)
		assert.Equal(t, "L", cart[1].Size)
	})

	t.Run("ChangeQuantity_UpdatesWithinStock", func(t *testing.T) {
		cart := ChangeQuantity(AddLine(nil, tee, medium), "prod_tee", "M", 3)

		require.Len(t, cart, 1)
		assert.Equal(t, 4, cart[0].Quantity)
	})

	t.Run("ChangeQuantity_RejectsAboveSnapshot", func(t *testing.T) {
		cart := AddLine(nil, tee, medium)
		changed := ChangeQuantity(cart, "prod_tee", "M", 5)

		require.Len(t, changed, 1)
		assert.Equal(t, 1, changed[0].Quantity)
	})

	t.Run("ChangeQuantity_RemovesAtZeroOrBelow", func(t *testing.T) {
		cart := AddLine(nil, tee, medium)

		assert.Empty(t, ChangeQuantity(cart, "prod_tee", "M", -1))
		assert.Empty(t, ChangeQuantity(cart, "prod_tee", "M", -7))
	})

	t.Run("ChangeQuantity_IgnoresUnknownLine", func(t *testing.T) {
		cart := AddLine(nil, tee, medium)
		changed := ChangeQuantity(cart, "prod_tee", "S", 1)

		assert.Equal(t, cart, changed)
	})

	t.Run("RemoveLine_DropsOnlyMatchingKey", func(t *testing.T) {
		large, _ := tee.Variant("L")
		cart := AddLine(AddLine(nil, tee, medium), tee, large)

		cart = RemoveLine(cart, "prod_tee", "M")
		require.Len(t, cart, 1)
		assert.Equal(t, "L", cart[0].Size)
		assert.Equal(t, 1, CartQuantity(cart))
	})
}
