package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"dinesync/internal/domain"
)

// Snapshot namespaces. Each concern persists independently so reshaping one
// does not invalidate the others.
const (
	NamespaceCart  = "cart"
	NamespaceTable = "table"
	NamespaceOrder = "order"
	NamespaceUI    = "ui"
)

// Snapshots persists full state snapshots per namespace.
type Snapshots interface {
	Save(ctx context.Context, namespace string, data []byte) error
	Load(ctx context.Context, namespace string) ([]byte, error)
	Delete(ctx context.Context, namespace string) error
}

type cartState struct {
	Items []domain.OrderItem `json:"items"`
	Total int                `json:"total"`
}

type uiState struct {
	Locale string `json:"locale"`
	Online bool   `json:"isOnline"`
}

// Store holds the reload-surviving session state: cart lines plus derived
// total, the table binding, the current order, and UI preferences. Every
// mutation writes a snapshot of the touched namespace; persistence failures
// are logged and swallowed, mutations themselves cannot fail.
type Store struct {
	mu        sync.Mutex
	snapshots Snapshots

	cart  cartState
	table *domain.TableBinding
	order *domain.Order
	ui    uiState
}

func NewStore(snapshots Snapshots) *Store {
	return &Store{
		snapshots: snapshots,
		ui:        uiState{Locale: "en", Online: true},
	}
}

func calculateTotal(items []domain.OrderItem) int {
	total := 0
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return total
}

// Restore reloads every namespace from the snapshot adapter. Missing or
// unreadable snapshots leave the defaults in place.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data, err := s.snapshots.Load(ctx, NamespaceCart); err == nil && data != nil {
		var cart cartState
		if err := json.Unmarshal(data, &cart); err == nil {
			cart.Total = calculateTotal(cart.Items)
			s.cart = cart
		}
	}
	if data, err := s.snapshots.Load(ctx, NamespaceTable); err == nil && data != nil {
		var table domain.TableBinding
		if err := json.Unmarshal(data, &table); err == nil && table.RestaurantID != "" {
			s.table = &table
		}
	}
	if data, err := s.snapshots.Load(ctx, NamespaceOrder); err == nil && data != nil {
		var order domain.Order
		if err := json.Unmarshal(data, &order); err == nil && order.ID != "" {
			s.order = &order
		}
	}
	if data, err := s.snapshots.Load(ctx, NamespaceUI); err == nil && data != nil {
		var ui uiState
		if err := json.Unmarshal(data, &ui); err == nil && ui.Locale != "" {
			s.ui = ui
		}
	}
}

func (s *Store) persist(namespace string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("[dinesync] failed to marshal %s snapshot: %v", namespace, err)
		return
	}
	if err := s.snapshots.Save(context.Background(), namespace, data); err != nil {
		log.Printf("[dinesync] failed to persist %s snapshot: %v", namespace, err)
	}
}

// AddItem merges the line into the cart: an existing product id accumulates
// quantity, a new one appends.
func (s *Store) AddItem(item domain.OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID == item.ProductID {
			s.cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.cart.Items = append(s.cart.Items, item)
	}

	s.cart.Total = calculateTotal(s.cart.Items)
	s.persist(NamespaceCart, s.cart)
}

func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.cart.Items[:0]
	for _, item := range s.cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	s.cart.Items = items
	s.cart.Total = calculateTotal(s.cart.Items)
	s.persist(NamespaceCart, s.cart)
}

// UpdateQuantity sets the line's quantity exactly. A quantity of zero or
// less removes the line.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID == productID {
			s.cart.Items[i].Quantity = quantity
			break
		}
	}
	s.cart.Total = calculateTotal(s.cart.Items)
	s.persist(NamespaceCart, s.cart)
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = cartState{}
	s.persist(NamespaceCart, s.cart)
}

// Cart returns a copy of the current lines and the derived total.
func (s *Store) Cart() ([]domain.OrderItem, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.OrderItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	return items, s.cart.Total
}

func (s *Store) SetTable(restaurantID, tableID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = &domain.TableBinding{RestaurantID: restaurantID, TableID: tableID}
	s.persist(NamespaceTable, s.table)
}

func (s *Store) ClearTable() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = nil
	if err := s.snapshots.Delete(context.Background(), NamespaceTable); err != nil {
		log.Printf("[dinesync] failed to clear table snapshot: %v", err)
	}
}

func (s *Store) Table() *domain.TableBinding {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return nil
	}
	binding := *s.table
	return &binding
}

func (s *Store) SetOrder(order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = &order
	s.persist(NamespaceOrder, s.order)
}

func (s *Store) ClearOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	if err := s.snapshots.Delete(context.Background(), NamespaceOrder); err != nil {
		log.Printf("[dinesync] failed to clear order snapshot: %v", err)
	}
}

func (s *Store) CurrentOrder() *domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.order == nil {
		return nil
	}
	order := *s.order
	return &order
}

func (s *Store) SetLocale(locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ui.Locale = locale
	s.persist(NamespaceUI, s.ui)
}

func (s *Store) Locale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.Locale
}

func (s *Store) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ui.Online = online
	s.persist(NamespaceUI, s.ui)
}

func (s *Store) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.Online
}
