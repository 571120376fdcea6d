// Package mocks holds testify mocks for the service-layer interfaces,
// following the constructor-plus-cleanup shape mockery generates.
package mocks

import (
	"context"
	"testing"

	"dinesync/internal/domain"

	"github.com/stretchr/testify/mock"
)

type Backend struct {
	mock.Mock
}

func NewBackend(t *testing.T) *Backend {
	m := &Backend{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Backend) Menu(ctx context.Context, restaurantID string) (domain.MenuResponse, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(domain.MenuResponse), args.Error(1)
}

func (m *Backend) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *Backend) TableOrders(ctx context.Context, tableID string) ([]domain.Order, error) {
	args := m.Called(ctx, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *Backend) UpdateOrderStatus(ctx context.Context, orderID string, req domain.UpdateOrderStatusRequest) (domain.Order, error) {
	args := m.Called(ctx, orderID, req)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *Backend) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *Backend) ListOrders(ctx context.Context, restaurantID string, status domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ctx, restaurantID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *Backend) InitPayment(ctx context.Context, req domain.InitPaymentRequest) (domain.InitPaymentResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.InitPaymentResponse), args.Error(1)
}

func (m *Backend) InitUSSDPayment(ctx context.Context, req domain.USSDPaymentRequest) (domain.USSDPaymentResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.USSDPaymentResponse), args.Error(1)
}

func (m *Backend) ConfirmPayment(ctx context.Context, req domain.ConfirmPaymentRequest) (domain.PaymentStatusResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.PaymentStatusResponse), args.Error(1)
}

func (m *Backend) PaymentStatus(ctx context.Context, orderID string) (domain.PaymentStatusResponse, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.PaymentStatusResponse), args.Error(1)
}

func (m *Backend) Invoice(ctx context.Context, orderID string) (domain.Invoice, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Invoice), args.Error(1)
}

func (m *Backend) InvoicePDF(ctx context.Context, orderID string) ([]byte, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MenuCache struct {
	mock.Mock
}

func NewMenuCache(t *testing.T) *MenuCache {
	m := &MenuCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MenuCache) CacheMenu(restaurant domain.Restaurant, categories []domain.Category, products []domain.Product) error {
	return m.Called(restaurant, categories, products).Error(0)
}

func (m *MenuCache) GetCachedMenu(restaurantID string) (*domain.Restaurant, []domain.Category, []domain.Product, error) {
	args := m.Called(restaurantID)
	var restaurant *domain.Restaurant
	if args.Get(0) != nil {
		restaurant = args.Get(0).(*domain.Restaurant)
	}
	var categories []domain.Category
	if args.Get(1) != nil {
		categories = args.Get(1).([]domain.Category)
	}
	var products []domain.Product
	if args.Get(2) != nil {
		products = args.Get(2).([]domain.Product)
	}
	return restaurant, categories, products, args.Error(3)
}

type OrderCache struct {
	mock.Mock
}

func NewOrderCache(t *testing.T) *OrderCache {
	m := &OrderCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderCache) CacheOrder(order domain.Order) error {
	return m.Called(order).Error(0)
}

func (m *OrderCache) GetCachedOrders(tableID string) ([]domain.Order, error) {
	args := m.Called(tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderCache) QueueOrder(order domain.Order) (int64, error) {
	args := m.Called(order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderCache) GetUnsyncedOrders() ([]domain.QueuedOrder, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QueuedOrder), args.Error(1)
}

func (m *OrderCache) MarkOrderSynced(localID int64) error {
	return m.Called(localID).Error(0)
}

type PaymentCache struct {
	mock.Mock
}

func NewPaymentCache(t *testing.T) *PaymentCache {
	m := &PaymentCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PaymentCache) CachePayment(payment domain.Payment) error {
	return m.Called(payment).Error(0)
}

func (m *PaymentCache) GetCachedPayment(orderID string) (*domain.Payment, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type ConnectivitySource struct {
	mock.Mock
}

func NewConnectivitySource(t *testing.T) *ConnectivitySource {
	m := &ConnectivitySource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ConnectivitySource) Online() bool {
	return m.Called().Bool(0)
}

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t *testing.T) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MenuServiceInterface struct {
	mock.Mock
}

func NewMenuServiceInterface(t *testing.T) *MenuServiceInterface {
	m := &MenuServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MenuServiceInterface) GetMenu(ctx context.Context, restaurantID string) (domain.MenuResponse, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(domain.MenuResponse), args.Error(1)
}

type OrderServiceInterface struct {
	mock.Mock
}

func NewOrderServiceInterface(t *testing.T) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderServiceInterface) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, bool, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Order), args.Bool(1), args.Error(2)
}

func (m *OrderServiceInterface) TableOrders(ctx context.Context, tableID string) ([]domain.Order, error) {
	args := m.Called(ctx, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderServiceInterface) Get(ctx context.Context, orderID string) (domain.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *OrderServiceInterface) List(ctx context.Context, restaurantID string, status domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ctx, restaurantID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderServiceInterface) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	args := m.Called(ctx, orderID, status)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *OrderServiceInterface) ReplayQueued(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type PaymentServiceInterface struct {
	mock.Mock
}

func NewPaymentServiceInterface(t *testing.T) *PaymentServiceInterface {
	m := &PaymentServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PaymentServiceInterface) Init(ctx context.Context, req domain.InitPaymentRequest) (domain.InitPaymentResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.InitPaymentResponse), args.Error(1)
}

func (m *PaymentServiceInterface) InitUSSD(ctx context.Context, req domain.USSDPaymentRequest) (domain.USSDPaymentResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.USSDPaymentResponse), args.Error(1)
}

func (m *PaymentServiceInterface) Confirm(ctx context.Context, req domain.ConfirmPaymentRequest) (domain.PaymentStatusResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.PaymentStatusResponse), args.Error(1)
}

func (m *PaymentServiceInterface) Status(ctx context.Context, orderID string) (domain.PaymentStatusResponse, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.PaymentStatusResponse), args.Error(1)
}

func (m *PaymentServiceInterface) Invoice(ctx context.Context, orderID string) (domain.Invoice, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Invoice), args.Error(1)
}

func (m *PaymentServiceInterface) InvoicePDF(ctx context.Context, orderID string) ([]byte, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
