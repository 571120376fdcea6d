package tests

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"dinesync/internal/domain"
	"dinesync/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCacheWithMock(t *testing.T) (*storage.PostgresCache, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mockDB.ExpectationsWereMet())
		db.Close()
	})
	return storage.NewPostgresCache(db), mockDB
}

func TestPostgresCache_CacheOrderUpserts(t *testing.T) {
	cache, mockDB := newCacheWithMock(t)

	order := domain.Order{
		ID: "order_1", RestaurantID: "r1", TableID: "t1",
		Status: domain.OrderPending, Total: 3000,
		Items:          []domain.OrderItem{{ProductID: "p1", Name: "Tea", Price: 1500, Quantity: 2}},
		IdempotencyKey: "key-1",
		CreatedAt:      time.Now(),
	}
	items, _ := json.Marshal(order.Items)

	mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(order.ID, order.RestaurantID, order.TableID, string(order.Status), order.Total,
			items, order.Notes, order.IdempotencyKey, order.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Re-caching the identical order is another upsert, not a duplicate.
	mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(order.ID, order.RestaurantID, order.TableID, string(order.Status), order.Total,
			items, order.Notes, order.IdempotencyKey, order.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, cache.CacheOrder(order))
	require.NoError(t, cache.CacheOrder(order))
}

func TestPostgresCache_GetCachedOrdersFiltersByTable(t *testing.T) {
	cache, mockDB := newCacheWithMock(t)

	items, _ := json.Marshal([]domain.OrderItem{{ProductID: "p1", Name: "Tea", Price: 1500, Quantity: 2}})
	createdAt := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "restaurant_id", "table_id", "status", "total", "items", "notes", "idempotency_key", "created_at",
	}).AddRow("order_1", "r1", "t1", "PENDING", 3000, items, "", "key-1", createdAt)

	mockDB.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WithArgs("t1").
		WillReturnRows(rows)

	orders, err := cache.GetCachedOrders("t1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order_1", orders[0].ID)
	assert.Equal(t, domain.OrderPending, orders[0].Status)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "p1", orders[0].Items[0].ProductID)
}

func TestPostgresCache_QueueOrderReturnsLocalID(t *testing.T) {
	cache, mockDB := newCacheWithMock(t)

	order := domain.Order{ID: "order_1", RestaurantID: "r1", TableID: "t1", Status: domain.OrderPending}
	data, _ := json.Marshal(order)

	mockDB.ExpectQuery(regexp.QuoteMeta("INSERT INTO queued_orders")).
		WithArgs(order.ID, data).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	localID, err := cache.QueueOrder(order)
	require.NoError(t, err)
	assert.Equal(t, int64(7), localID)
}

func TestPostgresCache_GetUnsyncedOrders(t *testing.T) {
	cache, mockDB := newCacheWithMock(t)

	order := domain.Order{ID: "order_1", RestaurantID: "r1", TableID: "t1", Status: domain.OrderPending}
	data, _ := json.Marshal(order)
	queuedAt := time.Now()

	rows := sqlmock.NewRows([]string{"id", "order_id", "order_data", "queued_at", "synced"}).
		AddRow(7, "order_1", data, queuedAt, false)

	mockDB.ExpectQuery(regexp.QuoteMeta("FROM queued_orders")).WillReturnRows(rows)

	queued, err := cache.GetUnsyncedOrders()
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, int64(7), queued[0].LocalID)
	assert.Equal(t, "order_1", queued[0].OrderData.ID)
	assert.False(t, queued[0].Synced)
}

func TestPostgresCache_MarkOrderSynced(t *testing.T) {
	cache, mockDB := newCacheWithMock(t)

	mockDB.ExpectExec(regexp.QuoteMeta("UPDATE queued_orders SET synced = TRUE")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, cache.MarkOrderSynced(7))
}

func TestPostgresCache_MarkOrderSyncedUnknownIDIsNoop(t *testing.T) {
	cache, mockDB := newCacheWithMock(t)

	mockDB.ExpectExec(regexp.QuoteMeta("UPDATE queued_orders SET synced = TRUE")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, cache.MarkOrderSynced(99))
}

func TestPostgresCache_CacheMenuRunsInTransaction(t *testing.T) {
	cache, mockDB := newCacheWithMock(t)

	restaurant := domain.Restaurant{ID: "r1", Name: "Chez Nous", Currency: "FCFA"}
	categories := []domain.Category{{ID: "c1", Name: "Drinks", SortOrder: 1}}
	products := []domain.Product{{ID: "p1", CategoryID: "c1", Name: "Tea", Price: 1500, Available: true}}

	mockDB.ExpectBegin()
	mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO restaurants")).
		WithArgs(restaurant.ID, restaurant.Name, restaurant.Currency, restaurant.Description,
			restaurant.ImageURL, restaurant.Address, restaurant.Phone).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO categories")).
		WithArgs("c1", "r1", "Drinks", "", "", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("p1", "r1", "c1", "Tea", "", 1500, true, 0, "", 0.0, 0, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	require.NoError(t, cache.CacheMenu(restaurant, categories, products))
}

func TestPostgresCache_GetCachedMenuMissingRestaurant(t *testing.T) {
	cache, mockDB := newCacheWithMock(t)

	mockDB.ExpectQuery(regexp.QuoteMeta("FROM restaurants")).
		WithArgs("r9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "currency", "description", "image_url", "address", "phone"}))

	restaurant, categories, products, err := cache.GetCachedMenu("r9")
	require.NoError(t, err)
	assert.Nil(t, restaurant)
	assert.Empty(t, categories)
	assert.Empty(t, products)
}
