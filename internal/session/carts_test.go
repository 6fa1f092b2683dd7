package session

import (
	"sync"
	"testing"

	"pos-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarts(t *testing.T) {
	line := model.CartItem{ProductID: "prod_tee", Size: "M", Quantity: 1, Stock: 5}
	add := func(cart []model.CartItem) []model.CartItem { return append(cart, line) }

	t.Run("Get_EmptyForUnknownSession", func(t *testing.T) {
		c := NewCarts()
		cart := c.Get("nobody")
		assert.NotNil(t, cart)
		assert.Empty(t, cart)
	})

	t.Run("Update_IsolatesSessions", func(t *testing.T) {
		c := NewCarts()
		c.Update("a", add)

		assert.Len(t, c.Get("a"), 1)
		assert.Empty(t, c.Get("b"))
	})

	t.Run("Get_ReturnsCopy", func(t *testing.T) {
		c := NewCarts()
		c.Update("a", add)

		cart := c.Get("a")
		cart[0].Quantity = 99
		assert.Equal(t, 1, c.Get("a")[0].Quantity)
	})

	t.Run("Update_EmptyResultDropsCart", func(t *testing.T) {
		c := NewCarts()
		c.Update("a", add)
		require.Equal(t, 1, c.Len())

		c.Update("a", func([]model.CartItem) []model.CartItem { return nil })
		assert.Zero(t, c.Len())
	})

	t.Run("Clear_DropsCart", func(t *testing.T) {
		c := NewCarts()
		c.Update("a", add)
		c.Clear("a")
		assert.Empty(t, c.Get("a"))
	})

	t.Run("Update_SerializesConcurrentWriters", func(t *testing.T) {
		c := NewCarts()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Update("a", add)
			}()
		}
		wg.Wait()
		assert.Len(t, c.Get("a"), 50)
	})
}
