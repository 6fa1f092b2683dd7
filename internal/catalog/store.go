package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pos-service/internal/model"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Persistence loads and saves the whole catalog state as one document
type Persistence interface {
	Load(ctx context.Context) (model.State, error)
	Save(ctx context.Context, state model.State) error
}

// Observer is notified with a copy of every committed state
type Observer func(state model.State)

// Store owns the catalog state. Every mutation computes the next state,
// saves it through the persistence port and only then replaces the current
// state, so a failed save leaves the previous state in place.
type Store struct {
	mu        sync.RWMutex
	state     model.State
	persist   Persistence
	observers []Observer

	newID func(prefix string) string
	now   func() time.Time
	log   *zap.Logger
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator overrides how product, category and transaction ids are made
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock overrides the transaction timestamp source
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithLogger sets the store logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewID returns prefix_<uuid>
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// NewStore rehydrates a Store from the persistence port
func NewStore(ctx context.Context, p Persistence, opts ...Option) (*Store, error) {
	s := &Store{
		persist: p,
		newID:   NewID,
		now:     time.Now,
		log:     logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog state: %w", err)
	}
	s.state = state.Normalize()

	s.log.Info("Catalog state loaded",
		zap.Int("products", len(s.state.Products)),
		zap.Int("categories", len(s.state.Categories)),
		zap.Int("transactions", len(s.state.Transactions)))
	return s, nil
}

// Subscribe registers an observer called after each committed mutation
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Product returns a copy of the product with id
func (s *Store) Product(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.state.FindProduct(id)
	if idx < 0 {
		return model.Product{}, false
	}
	return s.state.Products[idx].Clone(), true
}

// AddProduct creates a product under a fresh id
func (s *Store) AddProduct(ctx context.Context, p model.Product) (model.Product, model.State, error) {
	var created model.Product
	state, err := s.mutate(ctx, "add_product", func(current model.State) (model.State, error) {
		var next model.State
		next, created = AddProduct(current, p, s.newID)
		return next, nil
	})
	if err != nil {
		return model.Product{}, state, err
	}
	s.log.Info("Product created",
		zap.String("product_id", created.ID),
		zap.String("name", created.Name),
		zap.String("category", created.Category))
	return created, state, nil
}

// UpdateProduct replaces a product, variants included
func (s *Store) UpdateProduct(ctx context.Context, p model.Product) (model.State, error) {
	state, err := s.mutate(ctx, "update_product", func(current model.State) (model.State, error) {
		return UpdateProduct(current, p, s.newID)
	})
	if err != nil {
		return state, err
	}
	s.log.Info("Product updated",
		zap.String("product_id", p.ID),
		zap.String("name", p.Name),
		zap.Int("variants", len(p.Variants)))
	return state, nil
}

// CompleteTransaction commits a cart: the new transaction and the stock
// decrement are saved together.
func (s *Store) CompleteTransaction(ctx context.Context, cart []model.CartItem, method model.PaymentMethod, sellerID int) (model.Transaction, model.State, error) {
	var tx model.Transaction
	state, err := s.mutate(ctx, "complete_transaction", func(current model.State) (model.State, error) {
		var next model.State
		var err error
		next, tx, err = CommitTransaction(current, cart, method, sellerID, s.newID(transactionPrefix), s.now())
		return next, err
	})
	if err != nil {
		return model.Transaction{}, state, err
	}
	prometheus.RecordTransaction(tx)
	s.log.Info("Transaction completed",
		zap.String("transaction_id", tx.ID),
		zap.Int("lines", len(tx.Items)),
		zap.String("total", tx.Total.StringFixed(2)),
		zap.String("payment_method", string(tx.PaymentMethod)),
		zap.Int("seller_id", tx.SellerID))
	return tx, state, nil
}

// BulkImport merges validated import rows into the catalog
func (s *Store) BulkImport(ctx context.Context, rows []ImportRow) (MergeResult, model.State, error) {
	var result MergeResult
	state, err := s.mutate(ctx, "bulk_import", func(current model.State) (model.State, error) {
		var next model.State
		next, result = MergeImport(current, rows, s.newID)
		return next, nil
	})
	if err != nil {
		return MergeResult{}, state, err
	}
	prometheus.RecordImport(result.Rows)
	s.log.Info("Bulk import merged",
		zap.Int("rows", result.Rows),
		zap.Int("products_created", result.ProductsCreated),
		zap.Int("products_updated", result.ProductsUpdated),
		zap.Int("variants_added", result.VariantsAdded),
		zap.Int("categories_created", result.CategoriesCreated))
	return result, state, nil
}

// Replace swaps the entire state, as a backup restore does
func (s *Store) Replace(ctx context.Context, state model.State) (model.State, error) {
	next, err := s.mutate(ctx, "replace", func(model.State) (model.State, error) {
		return state.Clone().Normalize(), nil
	})
	if err != nil {
		return next, err
	}
	s.log.Info("Catalog state replaced",
		zap.Int("products", len(next.Products)),
		zap.Int("categories", len(next.Categories)),
		zap.Int("transactions", len(next.Transactions)))
	return next, nil
}

// mutate runs fn against the current state, persists the result and swaps it
// in. On any error the current state is kept and returned.
func (s *Store) mutate(ctx context.Context, op string, fn func(current model.State) (model.State, error)) (model.State, error) {
	s.mu.Lock()

	next, err := fn(s.state)
	if err != nil {
		current := s.state.Clone()
		s.mu.Unlock()
		return current, err
	}
	next = next.Normalize()

	start := time.Now()
	err = s.persist.Save(ctx, next)
	prometheus.TrackStoreSave(op)(start)
	if err != nil {
		current := s.state.Clone()
		s.mu.Unlock()
		s.log.Error("Failed to persist catalog state", zap.String("operation", op), zap.Error(err))
		return current, fmt.Errorf("failed to persist catalog state: %w", err)
	}

	s.state = next
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	committed := next.Clone()
	s.mu.Unlock()

	prometheus.RecordCatalogOperation(op)
	for _, o := range observers {
		o(committed.Clone())
	}
	return committed, nil
}
