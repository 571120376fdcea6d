package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dinesync/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned for non-2xx backend responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Code, e.Body)
}

// Client is the typed wrapper over the cloud backend's REST contract. Every
// call carries a deadline so an unreachable backend fails fast and the sync
// layer can fall back deterministically instead of hanging.
type Client struct {
	baseURL string
	client  HTTPClient
	timeout time.Duration
}

func New(baseURL string, httpClient HTTPClient, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{baseURL: baseURL, client: httpClient, timeout: timeout}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Menu(ctx context.Context, restaurantID string) (domain.MenuResponse, error) {
	var menu domain.MenuResponse
	err := c.do(ctx, http.MethodGet, "/api/restaurants/"+url.PathEscape(restaurantID)+"/menu", nil, &menu)
	return menu, err
}

func (c *Client) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodPost, "/api/orders", req, &order)
	return order, err
}

func (c *Client) TableOrders(ctx context.Context, tableID string) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, http.MethodGet, "/api/tables/"+url.PathEscape(tableID)+"/orders", nil, &orders)
	return orders, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, req domain.UpdateOrderStatusRequest) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(orderID)+"/status", req, &order)
	return order, err
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderID), nil, &order)
	return order, err
}

func (c *Client) ListOrders(ctx context.Context, restaurantID string, status domain.OrderStatus) ([]domain.Order, error) {
	params := url.Values{}
	params.Set("restaurantId", restaurantID)
	if status != "" {
		params.Set("status", string(status))
	}

	var orders []domain.Order
	err := c.do(ctx, http.MethodGet, "/api/orders?"+params.Encode(), nil, &orders)
	return orders, err
}

func (c *Client) InitPayment(ctx context.Context, req domain.InitPaymentRequest) (domain.InitPaymentResponse, error) {
	var resp domain.InitPaymentResponse
	err := c.do(ctx, http.MethodPost, "/api/payments/init", req, &resp)
	return resp, err
}

func (c *Client) InitUSSDPayment(ctx context.Context, req domain.USSDPaymentRequest) (domain.USSDPaymentResponse, error) {
	var resp domain.USSDPaymentResponse
	err := c.do(ctx, http.MethodPost, "/api/payments/ussd", req, &resp)
	return resp, err
}

func (c *Client) ConfirmPayment(ctx context.Context, req domain.ConfirmPaymentRequest) (domain.PaymentStatusResponse, error) {
	var resp domain.PaymentStatusResponse
	err := c.do(ctx, http.MethodPost, "/api/payments/confirm", req, &resp)
	return resp, err
}

func (c *Client) PaymentStatus(ctx context.Context, orderID string) (domain.PaymentStatusResponse, error) {
	var resp domain.PaymentStatusResponse
	err := c.do(ctx, http.MethodGet, "/api/payments/"+url.PathEscape(orderID)+"/status", nil, &resp)
	return resp, err
}

func (c *Client) Invoice(ctx context.Context, orderID string) (domain.Invoice, error) {
	var payload struct {
		Invoice domain.Invoice `json:"invoice"`
	}
	err := c.do(ctx, http.MethodGet, "/api/invoices/"+url.PathEscape(orderID), nil, &payload)
	return payload.Invoice, err
}

// InvoicePDF returns the rendered invoice bytes as-is.
func (c *Client) InvoicePDF(ctx context.Context, orderID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/invoices/"+url.PathEscape(orderID)+"/pdf", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}
	return io.ReadAll(resp.Body)
}

// Healthy reports whether the backend answered its health endpoint, used as
// the connectivity probe.
func (c *Client) Healthy(ctx context.Context) bool {
	return c.do(ctx, http.MethodGet, "/health", nil, nil) == nil
}
