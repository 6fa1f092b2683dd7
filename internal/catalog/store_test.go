package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pos-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePersistence struct {
	mu      sync.Mutex
	loaded  model.State
	loadErr error
	saveErr error
	saved   []model.State
}

func (f *fakePersistence) Load(ctx context.Context) (model.State, error) {
	return f.loaded, f.loadErr
}

func (f *fakePersistence) Save(ctx context.Context, state model.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, state.Clone())
	return nil
}

func (f *fakePersistence) last() model.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved[len(f.saved)-1]
}

func newTestStore(t *testing.T, persist *fakePersistence) *Store {
	t.Helper()
	clock := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	store, err := NewStore(context.Background(), persist,
		WithIDGenerator(sequentialIDs()),
		WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
	)
	require.NoError(t, err)
	return store
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("NewStore_NormalizesEmptySlot", func(t *testing.T) {
		store := newTestStore(t, &fakePersistence{})

		snap := store.Snapshot()
		assert.NotNil(t, snap.Products)
		assert.NotNil(t, snap.Transactions)
		assert.NotNil(t, snap.Categories)
	})

	t.Run("NewStore_FailsWhenLoadFails", func(t *testing.T) {
		_, err := NewStore(ctx, &fakePersistence{loadErr: errors.New("disk gone")})
		require.Error(t, err)
	})

	t.Run("CompleteTransaction_PersistsStockAndTransactionTogether", func(t *testing.T) {
		persist := &fakePersistence{loaded: sampleState()}
		store := newTestStore(t, persist)

		tx, state, err := store.CompleteTransaction(ctx, []model.CartItem{line(teeShirt(), "M", 2)}, model.PaymentCash, 1)
		require.NoError(t, err)

		assert.Equal(t, "trans_1", tx.ID)
		saved := persist.last()
		require.Len(t, saved.Transactions, 1)
		medium, _ := saved.Products[0].Variant("M")
		assert.Equal(t, 3, medium.Stock)
		assert.Equal(t, saved, state)
		assert.Equal(t, state, store.Snapshot())
	})

	t.Run("CompleteTransaction_KeepsNewestFirst", func(t *testing.T) {
		store := newTestStore(t, &fakePersistence{loaded: sampleState()})
		cart := []model.CartItem{line(baseballCap(), "N/A", 1)}

		for i := 0; i < 3; i++ {
			_, _, err := store.CompleteTransaction(ctx, cart, model.PaymentCard, 2)
			require.NoError(t, err)
		}

		txs := store.Snapshot().Transactions
		require.Len(t, txs, 3)
		assert.Equal(t, "trans_3", txs[0].ID)
		assert.Equal(t, "trans_1", txs[2].ID)
		assert.True(t, txs[0].Date.After(txs[1].Date))
		v, _ := store.Snapshot().Products[1].Variant("N/A")
		assert.Equal(t, 1, v.Stock)
	})

	t.Run("CompleteTransaction_RejectionChangesNothing", func(t *testing.T) {
		persist := &fakePersistence{loaded: sampleState()}
		store := newTestStore(t, persist)
		before := store.Snapshot()

		_, state, err := store.CompleteTransaction(ctx, []model.CartItem{line(baseballCap(), "N/A", 9)}, model.PaymentCard, 1)
		require.ErrorIs(t, err, ErrInsufficientStock)

		assert.Empty(t, persist.saved)
		assert.Equal(t, before, state)
		assert.Equal(t, before, store.Snapshot())
	})

	t.Run("Mutate_SaveFailureKeepsPreviousState", func(t *testing.T) {
		persist := &fakePersistence{loaded: sampleState(), saveErr: errors.New("quota exceeded")}
		store := newTestStore(t, persist)
		before := store.Snapshot()

		notified := 0
		store.Subscribe(func(model.State) { notified++ })

		_, _, err := store.CompleteTransaction(ctx, []model.CartItem{line(teeShirt(), "M", 1)}, model.PaymentCard, 1)
		require.Error(t, err)

		assert.Equal(t, before, store.Snapshot())
		assert.Zero(t, notified)
	})

	t.Run("Subscribe_ReceivesCommittedState", func(t *testing.T) {
		store := newTestStore(t, &fakePersistence{loaded: sampleState()})

		var got []model.State
		store.Subscribe(func(s model.State) { got = append(got, s) })

		created, _, err := store.AddProduct(ctx, model.Product{
			Name:     "Jean",
			Category: "Bas",
			Price:    price("49"),
			Variants: []model.ProductVariant{{Size: "40", Stock: 1}},
		})
		require.NoError(t, err)

		require.Len(t, got, 1)
		assert.Equal(t, created.ID, got[0].Products[2].ID)
		assert.True(t, got[0].HasCategory("Bas"))
	})

	t.Run("UpdateProduct_UnknownIDIsNotSaved", func(t *testing.T) {
		persist := &fakePersistence{loaded: sampleState()}
		store := newTestStore(t, persist)

		ghost := teeShirt()
		ghost.ID = "prod_ghost"
		_, err := store.UpdateProduct(ctx, ghost)
		require.ErrorIs(t, err, ErrProductNotFound)
		assert.Empty(t, persist.saved)
	})

	t.Run("BulkImport_MergesAndPersists", func(t *testing.T) {
		persist := &fakePersistence{loaded: sampleState()}
		store := newTestStore(t, persist)

		result, state, err := store.BulkImport(ctx, []ImportRow{
			{Name: "Tee", Category: "Hauts", Price: price("12"), Size: "M", Stock: 8, LowStockThreshold: 2},
			{Name: "Basket", Category: "Chaussures", Price: price("59.90"), Size: "42", Stock: 6},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Rows)
		assert.Equal(t, 1, result.ProductsCreated)
		assert.Len(t, state.Products, 3)
		assert.Equal(t, state, persist.last())
	})

	t.Run("Replace_SwapsWholeState", func(t *testing.T) {
		persist := &fakePersistence{loaded: sampleState()}
		store := newTestStore(t, persist)

		state, err := store.Replace(ctx, model.State{})
		require.NoError(t, err)

		assert.Equal(t, []model.Product{}, state.Products)
		assert.Equal(t, []model.Transaction{}, state.Transactions)
		assert.Equal(t, []model.Category{}, state.Categories)
		assert.Equal(t, state, store.Snapshot())
	})

	t.Run("Snapshot_IsIsolatedFromStore", func(t *testing.T) {
		store := newTestStore(t, &fakePersistence{loaded: sampleState()})

		snap := store.Snapshot()
		snap.Products[0].Variants[0].Stock = 999

		p, ok := store.Product("prod_tee")
		require.True(t, ok)
		assert.Equal(t, 5, p.Variants[0].Stock)
	})
}
