package session

import (
	"sync"

	"pos-service/internal/model"
)

// Carts holds the in-progress cart of every open session. Carts are never
// persisted and vanish on restart.
type Carts struct {
	mu    sync.Mutex
	carts map[string][]model.CartItem
}

func NewCarts() *Carts {
	return &Carts{carts: make(map[string][]model.CartItem)}
}

// Get returns a copy of the session cart, empty when none exists
func (c *Carts) Get(sessionID string) []model.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clone(c.carts[sessionID])
}

// Update applies fn to the session cart under the lock and stores the result
func (c *Carts) Update(sessionID string, fn func(cart []model.CartItem) []model.CartItem) []model.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := fn(clone(c.carts[sessionID]))
	if len(next) == 0 {
		delete(c.carts, sessionID)
		return []model.CartItem{}
	}
	c.carts[sessionID] = clone(next)
	return next
}

// Clear drops the session cart
func (c *Carts) Clear(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.carts, sessionID)
}

// Len returns the number of sessions holding a non-empty cart
func (c *Carts) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.carts)
}

func clone(cart []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(cart))
	copy(out, cart)
	return out
}
