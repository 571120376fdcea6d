package service

import (
	"context"

	"dinesync/internal/domain"
)

// Backend is the cloud REST contract the sync layer falls back from.
type Backend interface {
	Menu(ctx context.Context, restaurantID string) (domain.MenuResponse, error)
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error)
	TableOrders(ctx context.Context, tableID string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, req domain.UpdateOrderStatusRequest) (domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	ListOrders(ctx context.Context, restaurantID string, status domain.OrderStatus) ([]domain.Order, error)
	InitPayment(ctx context.Context, req domain.InitPaymentRequest) (domain.InitPaymentResponse, error)
	InitUSSDPayment(ctx context.Context, req domain.USSDPaymentRequest) (domain.USSDPaymentResponse, error)
	ConfirmPayment(ctx context.Context, req domain.ConfirmPaymentRequest) (domain.PaymentStatusResponse, error)
	PaymentStatus(ctx context.Context, orderID string) (domain.PaymentStatusResponse, error)
	Invoice(ctx context.Context, orderID string) (domain.Invoice, error)
	InvoicePDF(ctx context.Context, orderID string) ([]byte, error)
}

type MenuCache interface {
	CacheMenu(restaurant domain.Restaurant, categories []domain.Category, products []domain.Product) error
	GetCachedMenu(restaurantID string) (*domain.Restaurant, []domain.Category, []domain.Product, error)
}

type OrderCache interface {
	CacheOrder(order domain.Order) error
	GetCachedOrders(tableID string) ([]domain.Order, error)
	QueueOrder(order domain.Order) (int64, error)
	GetUnsyncedOrders() ([]domain.QueuedOrder, error)
	MarkOrderSynced(localID int64) error
}

type PaymentCache interface {
	CachePayment(payment domain.Payment) error
	GetCachedPayment(orderID string) (*domain.Payment, error)
}

type ConnectivitySource interface {
	Online() bool
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type MenuServiceInterface interface {
	GetMenu(ctx context.Context, restaurantID string) (domain.MenuResponse, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, bool, error)
	TableOrders(ctx context.Context, tableID string) ([]domain.Order, error)
	Get(ctx context.Context, orderID string) (domain.Order, error)
	List(ctx context.Context, restaurantID string, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error)
	ReplayQueued(ctx context.Context) (int, error)
}

type PaymentServiceInterface interface {
	Init(ctx context.Context, req domain.InitPaymentRequest) (domain.InitPaymentResponse, error)
	InitUSSD(ctx context.Context, req domain.USSDPaymentRequest) (domain.USSDPaymentResponse, error)
	Confirm(ctx context.Context, req domain.ConfirmPaymentRequest) (domain.PaymentStatusResponse, error)
	Status(ctx context.Context, orderID string) (domain.PaymentStatusResponse, error)
	Invoice(ctx context.Context, orderID string) (domain.Invoice, error)
	InvoicePDF(ctx context.Context, orderID string) ([]byte, error)
}

var (
	_ MenuServiceInterface    = (*MenuService)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
	_ PaymentServiceInterface = (*PaymentService)(nil)
)
