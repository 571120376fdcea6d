package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dinesync/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrInvalidOrder  = errors.New("order needs a restaurant, a table and at least one item")
	ErrReplayStopped = errors.New("outbox replay stopped on failed order")
)

type OrderService struct {
	backend      Backend
	cache        OrderCache
	connectivity ConnectivitySource
	publisher    EventPublisher
	now          func() time.Time
}

func NewOrderService(backend Backend, cache OrderCache, connectivity ConnectivitySource, publisher EventPublisher) *OrderService {
	return &OrderService{
		backend:      backend,
		cache:        cache,
		connectivity: connectivity,
		publisher:    publisher,
		now:          time.Now,
	}
}

// Create places an order. Online, the backend creates it and the result is
// written through to the cache. Offline, or when the backend call fails, the
// order is synthesized locally, queued into the outbox and cached, and
// returned so checkout proceeds optimistically; the second return value
// reports that sync was deferred. The idempotency key survives into the
// queued payload so replay cannot double-create.
func (s *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, bool, error) {
	if req.RestaurantID == "" || req.TableID == "" || len(req.Items) == 0 {
		return domain.Order{}, false, ErrInvalidOrder
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	if s.connectivity.Online() {
		order, err := s.backend.CreateOrder(ctx, req)
		if err == nil {
			if order.IdempotencyKey == "" {
				order.IdempotencyKey = req.IdempotencyKey
			}
			if cacheErr := s.cache.CacheOrder(order); cacheErr != nil {
				log.Printf("[dinesync] failed to cache order %s: %v", order.ID, cacheErr)
			}
			s.publish(ctx, domain.EventOrderCreated, order)
			return order, false, nil
		}
		log.Printf("[dinesync] order create failed, queueing locally: %v", err)
	}

	order := s.synthesizeOrder(req)
	if _, err := s.cache.QueueOrder(order); err != nil {
		return domain.Order{}, false, fmt.Errorf("failed to queue order: %w", err)
	}
	if err := s.cache.CacheOrder(order); err != nil {
		log.Printf("[dinesync] failed to cache queued order %s: %v", order.ID, err)
	}
	s.publish(ctx, domain.EventOrderQueued, order)
	return order, true, nil
}

func (s *OrderService) synthesizeOrder(req domain.CreateOrderRequest) domain.Order {
	total := 0
	for _, item := range req.Items {
		total += item.Price * item.Quantity
	}
	return domain.Order{
		ID:             "order_" + uuid.NewString(),
		RestaurantID:   req.RestaurantID,
		TableID:        req.TableID,
		Status:         domain.OrderPending,
		Total:          total,
		Items:          req.Items,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      s.now(),
	}
}

// TableOrders lists a table's orders, from the backend when online (each
// order written through to the cache) and from the cache otherwise.
func (s *OrderService) TableOrders(ctx context.Context, tableID string) ([]domain.Order, error) {
	if s.connectivity.Online() {
		orders, err := s.backend.TableOrders(ctx, tableID)
		if err == nil {
			for _, order := range orders {
				if cacheErr := s.cache.CacheOrder(order); cacheErr != nil {
					log.Printf("[dinesync] failed to cache order %s: %v", order.ID, cacheErr)
				}
			}
			return orders, nil
		}
		log.Printf("[dinesync] table orders fetch failed for %s, falling back to cache: %v", tableID, err)
	}
	return s.cache.GetCachedOrders(tableID)
}

func (s *OrderService) Get(ctx context.Context, orderID string) (domain.Order, error) {
	order, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if cacheErr := s.cache.CacheOrder(order); cacheErr != nil {
		log.Printf("[dinesync] failed to cache order %s: %v", order.ID, cacheErr)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, restaurantID string, status domain.OrderStatus) ([]domain.Order, error) {
	return s.backend.ListOrders(ctx, restaurantID, status)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	order, err := s.backend.UpdateOrderStatus(ctx, orderID, domain.UpdateOrderStatusRequest{Status: status})
	if err != nil {
		return domain.Order{}, err
	}
	if cacheErr := s.cache.CacheOrder(order); cacheErr != nil {
		log.Printf("[dinesync] failed to cache order %s: %v", order.ID, cacheErr)
	}
	return order, nil
}

// ReplayQueued drains the outbox oldest first through the backend create
// call, marking each entry synced on success. It stops on the first failure
// so ordering is preserved, returning how many entries were synced.
func (s *OrderService) ReplayQueued(ctx context.Context) (int, error) {
	queued, err := s.cache.GetUnsyncedOrders()
	if err != nil {
		return 0, fmt.Errorf("failed to read outbox: %w", err)
	}

	synced := 0
	for _, entry := range queued {
		req := domain.CreateOrderRequest{
			RestaurantID:   entry.OrderData.RestaurantID,
			TableID:        entry.OrderData.TableID,
			Items:          entry.OrderData.Items,
			Notes:          entry.OrderData.Notes,
			IdempotencyKey: entry.OrderData.IdempotencyKey,
		}

		order, err := s.backend.CreateOrder(ctx, req)
		if err != nil {
			log.Printf("[dinesync] replay of order %s failed after %d synced: %v", entry.OrderID, synced, err)
			return synced, fmt.Errorf("%w: %v", ErrReplayStopped, err)
		}

		if cacheErr := s.cache.CacheOrder(order); cacheErr != nil {
			log.Printf("[dinesync] failed to cache replayed order %s: %v", order.ID, cacheErr)
		}
		if err := s.cache.MarkOrderSynced(entry.LocalID); err != nil {
			return synced, fmt.Errorf("failed to mark order %s synced: %w", entry.OrderID, err)
		}
		s.publish(ctx, domain.EventOrderSynced, order)
		synced++
	}

	if synced > 0 {
		log.Printf("[dinesync] replayed %d queued order(s)", synced)
	}
	return synced, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order domain.Order) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		TableID:      order.TableID,
		Total:        order.Total,
		Timestamp:    s.now(),
	})
	if err != nil {
		log.Printf("[dinesync] failed to publish %s for order %s: %v", eventType, order.ID, err)
	}
}
