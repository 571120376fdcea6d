package tests

import (
	"context"
	"sync"
	"testing"

	"dinesync/internal/domain"
	"dinesync/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSnapshots keeps snapshots in a map, standing in for Redis.
type memSnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{data: map[string][]byte{}}
}

func (s *memSnapshots) Save(_ context.Context, namespace string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[namespace] = append([]byte(nil), data...)
	return nil
}

func (s *memSnapshots) Load(_ context.Context, namespace string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[namespace], nil
}

func (s *memSnapshots) Delete(_ context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, namespace)
	return nil
}

func cartTotal(items []domain.OrderItem) int {
	total := 0
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return total
}

func TestSessionStore_CartTotalAlwaysDerived(t *testing.T) {
	store := session.NewStore(newMemSnapshots())

	mutations := []func(){
		func() { store.AddItem(domain.OrderItem{ProductID: "p1", Name: "Tea", Price: 1500, Quantity: 2}) },
		func() { store.AddItem(domain.OrderItem{ProductID: "p2", Name: "Cake", Price: 2500, Quantity: 1}) },
		func() { store.AddItem(domain.OrderItem{ProductID: "p1", Name: "Tea", Price: 1500, Quantity: 3}) },
		func() { store.UpdateQuantity("p2", 4) },
		func() { store.RemoveItem("p1") },
		func() { store.UpdateQuantity("p2", 1) },
	}

	for _, mutate := range mutations {
		mutate()
		items, total := store.Cart()
		assert.Equal(t, cartTotal(items), total)
	}
}

func TestSessionStore_AddItemMergesByProductID(t *testing.T) {
	store := session.NewStore(newMemSnapshots())

	store.AddItem(domain.OrderItem{ProductID: "p1", Name: "Tea", Price: 1500, Quantity: 2})
	store.AddItem(domain.OrderItem{ProductID: "p1", Name: "Tea", Price: 1500, Quantity: 3})

	items, total := store.Cart()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 7500, total)
}

func TestSessionStore_UpdateQuantitySetsExactly(t *testing.T) {
	store := session.NewStore(newMemSnapshots())

	store.AddItem(domain.OrderItem{ProductID: "p1", Name: "Tea", Price: 1500, Quantity: 5})
	store.UpdateQuantity("p1", 2)

	items, total := store.Cart()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 3000, total)
}

func TestSessionStore_NonPositiveQuantityRemovesLine(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{name: "zero", quantity: 0},
		{name: "negative", quantity: -5},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := session.NewStore(newMemSnapshots())
			store.AddItem(domain.OrderItem{ProductID: "p1", Name: "Tea", Price: 1500, Quantity: 2})

			store.UpdateQuantity("p1", testCase.quantity)

			items, total := store.Cart()
			assert.Empty(t, items)
			assert.Zero(t, total)
		})
	}
}

func TestSessionStore_RemoveMissingItemIsNoop(t *testing.T) {
	store := session.NewStore(newMemSnapshots())
	store.AddItem(domain.OrderItem{ProductID: "p1", Name: "Tea", Price: 1500, Quantity: 1})

	store.RemoveItem("p9")

	items, total := store.Cart()
	assert.Len(t, items, 1)
	assert.Equal(t, 1500, total)
}

func TestSessionStore_TableBinding(t *testing.T) {
	store := session.NewStore(newMemSnapshots())
	assert.Nil(t, store.Table())

	store.SetTable("rest_001", "Table-5")
	binding := store.Table()
	require.NotNil(t, binding)
	assert.Equal(t, "rest_001", binding.RestaurantID)
	assert.Equal(t, "Table-5", binding.TableID)

	store.ClearTable()
	assert.Nil(t, store.Table())
}

func TestSessionStore_CurrentOrder(t *testing.T) {
	store := session.NewStore(newMemSnapshots())
	assert.Nil(t, store.CurrentOrder())

	store.SetOrder(domain.Order{ID: "order_1", Total: 3000, Status: domain.OrderPending})
	order := store.CurrentOrder()
	require.NotNil(t, order)
	assert.Equal(t, "order_1", order.ID)

	store.ClearOrder()
	assert.Nil(t, store.CurrentOrder())
}

func TestSessionStore_RestoreSurvivesRestart(t *testing.T) {
	snapshots := newMemSnapshots()

	store := session.NewStore(snapshots)
	store.AddItem(domain.OrderItem{ProductID: "p1", Name: "Tea", Price: 1500, Quantity: 2})
	store.SetTable("rest_001", "Table-5")
	store.SetOrder(domain.Order{ID: "order_1", Total: 3000})
	store.SetLocale("fr")

	reloaded := session.NewStore(snapshots)
	reloaded.Restore(context.Background())

	items, total := reloaded.Cart()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 3000, total)

	binding := reloaded.Table()
	require.NotNil(t, binding)
	assert.Equal(t, "Table-5", binding.TableID)

	order := reloaded.CurrentOrder()
	require.NotNil(t, order)
	assert.Equal(t, "order_1", order.ID)

	assert.Equal(t, "fr", reloaded.Locale())
}
