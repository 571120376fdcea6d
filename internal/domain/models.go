package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderServed     OrderStatus = "SERVED"
	OrderPaid       OrderStatus = "PAID"
)

type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "ONLINE"
	PaymentUSSD   PaymentMethod = "USSD"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentDone    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

type Restaurant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type Category struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurantId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	SortOrder    int    `json:"order"`
}

type Product struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurantId"`
	CategoryID   string  `json:"categoryId"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        int     `json:"price"`
	Available    bool    `json:"available"`
	Stock        int     `json:"stock,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	ReviewCount  int     `json:"reviewCount,omitempty"`
	Discount     int     `json:"discount,omitempty"`
}

// OrderItem is a cart line: one product with a quantity. A cart holds at
// most one line per product id.
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type Order struct {
	ID             string      `json:"id"`
	RestaurantID   string      `json:"restaurantId"`
	TableID        string      `json:"tableId"`
	Status         OrderStatus `json:"status"`
	Total          int         `json:"total"`
	Items          []OrderItem `json:"items"`
	Notes          string      `json:"notes,omitempty"`
	IdempotencyKey string      `json:"idempotencyKey,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt,omitempty"`
}

// QueuedOrder is an outbox entry: an order created while the backend was
// unreachable, retained until it has been replayed and marked synced.
type QueuedOrder struct {
	LocalID   int64     `json:"localId"`
	OrderID   string    `json:"orderId"`
	OrderData Order     `json:"orderData"`
	QueuedAt  time.Time `json:"timestamp"`
	Synced    bool      `json:"synced"`
}

// TableBinding identifies the physical table a session belongs to. It is
// established from a scanned QR payload and trusted as-is.
type TableBinding struct {
	RestaurantID string `json:"restaurantId"`
	TableID      string `json:"tableId"`
}

type Payment struct {
	ID            string        `json:"id"`
	OrderID       string        `json:"orderId"`
	Method        PaymentMethod `json:"method"`
	Amount        int           `json:"amount"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId,omitempty"`
	USSDCode      string        `json:"ussdCode,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type MenuResponse struct {
	Restaurant Restaurant `json:"restaurant"`
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}

type CreateOrderRequest struct {
	RestaurantID   string      `json:"restaurantId"`
	TableID        string      `json:"tableId"`
	Items          []OrderItem `json:"items"`
	Notes          string      `json:"notes,omitempty"`
	IdempotencyKey string      `json:"idempotencyKey,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

type InitPaymentRequest struct {
	OrderID string        `json:"orderId"`
	Method  PaymentMethod `json:"method"`
	Amount  int           `json:"amount"`
}

type InitPaymentResponse struct {
	PaymentID   string        `json:"paymentId"`
	Status      PaymentStatus `json:"status"`
	RedirectURL string        `json:"redirectUrl,omitempty"`
	USSDCode    string        `json:"ussdCode,omitempty"`
}

type USSDPaymentRequest struct {
	OrderID string `json:"orderId"`
	Amount  int    `json:"amount"`
}

type USSDPaymentResponse struct {
	PaymentID string    `json:"paymentId"`
	USSDCode  string    `json:"ussdCode"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ConfirmPaymentRequest struct {
	PaymentID     string `json:"paymentId"`
	TransactionID string `json:"transactionId"`
}

type PaymentStatusResponse struct {
	Status  PaymentStatus `json:"status"`
	Payment Payment       `json:"payment"`
}

type Invoice struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"orderId"`
	InvoiceNumber string     `json:"invoiceNumber"`
	Order         Order      `json:"order"`
	Payment       Payment    `json:"payment"`
	Restaurant    Restaurant `json:"restaurant"`
	IssuedAt      time.Time  `json:"issuedAt"`
}

// Order lifecycle events published for the reception side.
const (
	EventOrderCreated = "order_created"
	EventOrderQueued  = "order_queued"
	EventOrderSynced  = "order_synced"
)

type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"order_id"`
	RestaurantID string    `json:"restaurant_id"`
	TableID      string    `json:"table_id"`
	Total        int       `json:"total"`
	Timestamp    time.Time `json:"timestamp"`
}
