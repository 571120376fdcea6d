package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dinesync/internal/client"
	"dinesync/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/api/orders", r.URL.Path)

		var req domain.CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "key-1", req.IdempotencyKey)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Order{
			ID: "order_42", RestaurantID: req.RestaurantID, TableID: req.TableID,
			Status: domain.OrderPending, Total: 3000,
		})
	}))
	defer server.Close()

	c := client.New(server.URL, nil, time.Second)
	order, err := c.CreateOrder(context.Background(), domain.CreateOrderRequest{
		RestaurantID:   "r1",
		TableID:        "t1",
		Items:          []domain.OrderItem{{ProductID: "p1", Price: 1500, Quantity: 2}},
		IdempotencyKey: "key-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "order_42", order.ID)
	assert.Equal(t, 3000, order.Total)
}

func TestClient_NonSuccessStatusBecomesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "order not found", http.StatusNotFound)
	}))
	defer server.Close()

	c := client.New(server.URL, nil, time.Second)
	_, err := c.GetOrder(context.Background(), "order_9")

	var statusErr *client.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestClient_DeadlineCutsOffHungBackend(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	c := client.New(server.URL, nil, 50*time.Millisecond)

	start := time.Now()
	_, err := c.Menu(context.Background(), "r1")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_HealthyProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := client.New(server.URL, nil, time.Second)
	assert.True(t, c.Healthy(context.Background()))

	server.Close()
	assert.False(t, c.Healthy(context.Background()))
}

func TestClient_ListOrdersBuildsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "r1", r.URL.Query().Get("restaurantId"))
		assert.Equal(t, "PENDING", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode([]domain.Order{{ID: "order_1"}})
	}))
	defer server.Close()

	c := client.New(server.URL, nil, time.Second)
	orders, err := c.ListOrders(context.Background(), "r1", domain.OrderPending)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
