package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"dinesync/internal/domain"
)

// PostgresCache is the agent's local mirror of backend entities plus the
// durable outbox of orders created while the uplink was down.
type PostgresCache struct {
	DB *sql.DB
}

func NewPostgresCache(db *sql.DB) *PostgresCache {
	return &PostgresCache{DB: db}
}

func (c *PostgresCache) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'FCFA',
			description TEXT,
			image_url TEXT,
			address TEXT,
			phone TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			image_url TEXT,
			sort_order INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			category_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			price BIGINT NOT NULL,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			stock INT NOT NULL DEFAULT 0,
			image_url TEXT,
			rating NUMERIC NOT NULL DEFAULT 0,
			review_count INT NOT NULL DEFAULT 0,
			discount INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			table_id TEXT NOT NULL,
			status TEXT NOT NULL,
			total BIGINT NOT NULL,
			items JSONB NOT NULL,
			notes TEXT,
			idempotency_key TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_table ON orders (table_id)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			method TEXT NOT NULL,
			amount BIGINT NOT NULL,
			status TEXT NOT NULL,
			transaction_id TEXT,
			ussd_code TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS queued_orders (
			id BIGSERIAL PRIMARY KEY,
			order_id TEXT NOT NULL,
			order_data JSONB NOT NULL,
			queued_at TIMESTAMPTZ NOT NULL,
			synced BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_queued_orders_synced ON queued_orders (synced)`,
	}
	for _, stmt := range statements {
		if _, err := c.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

// CacheMenu upserts the restaurant and bulk-upserts its categories and
// products inside one transaction. Rows are scoped by restaurant id so
// menus for several restaurants can coexist in one cache.
func (c *PostgresCache) CacheMenu(restaurant domain.Restaurant, categories []domain.Category, products []domain.Product) error {
	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO restaurants (id, name, currency, description, image_url, address, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, currency = EXCLUDED.currency,
		    description = EXCLUDED.description, image_url = EXCLUDED.image_url,
		    address = EXCLUDED.address, phone = EXCLUDED.phone
	`, restaurant.ID, restaurant.Name, restaurant.Currency, restaurant.Description,
		restaurant.ImageURL, restaurant.Address, restaurant.Phone); err != nil {
		return err
	}

	for _, category := range categories {
		if _, err := tx.Exec(`
			INSERT INTO categories (id, restaurant_id, name, description, image_url, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE
			SET restaurant_id = EXCLUDED.restaurant_id, name = EXCLUDED.name,
			    description = EXCLUDED.description, image_url = EXCLUDED.image_url,
			    sort_order = EXCLUDED.sort_order
		`, category.ID, restaurant.ID, category.Name, category.Description,
			category.ImageURL, category.SortOrder); err != nil {
			return err
		}
	}

	for _, product := range products {
		if _, err := tx.Exec(`
			INSERT INTO products (id, restaurant_id, category_id, name, description, price,
			                      available, stock, image_url, rating, review_count, discount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE
			SET restaurant_id = EXCLUDED.restaurant_id, category_id = EXCLUDED.category_id,
			    name = EXCLUDED.name, description = EXCLUDED.description,
			    price = EXCLUDED.price, available = EXCLUDED.available,
			    stock = EXCLUDED.stock, image_url = EXCLUDED.image_url,
			    rating = EXCLUDED.rating, review_count = EXCLUDED.review_count,
			    discount = EXCLUDED.discount
		`, product.ID, restaurant.ID, product.CategoryID, product.Name, product.Description,
			product.Price, product.Available, product.Stock, product.ImageURL,
			product.Rating, product.ReviewCount, product.Discount); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetCachedMenu returns the last-cached restaurant (nil when never cached)
// and that restaurant's category and product collections.
func (c *PostgresCache) GetCachedMenu(restaurantID string) (*domain.Restaurant, []domain.Category, []domain.Product, error) {
	var restaurant domain.Restaurant
	err := c.DB.QueryRow(`
		SELECT id, name, currency, COALESCE(description, ''), COALESCE(image_url, ''),
		       COALESCE(address, ''), COALESCE(phone, '')
		FROM restaurants
		WHERE id = $1`, restaurantID).
		Scan(&restaurant.ID, &restaurant.Name, &restaurant.Currency, &restaurant.Description,
			&restaurant.ImageURL, &restaurant.Address, &restaurant.Phone)
	if err == sql.ErrNoRows {
		return nil, []domain.Category{}, []domain.Product{}, nil
	}
	if err != nil {
		return nil, nil, nil, err
	}

	categories := []domain.Category{}
	rows, err := c.DB.Query(`
		SELECT id, restaurant_id, name, COALESCE(description, ''), COALESCE(image_url, ''), sort_order
		FROM categories
		WHERE restaurant_id = $1
		ORDER BY sort_order`, restaurantID)
	if err != nil {
		return &restaurant, nil, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.RestaurantID, &category.Name,
			&category.Description, &category.ImageURL, &category.SortOrder); err != nil {
			continue
		}
		categories = append(categories, category)
	}

	products := []domain.Product{}
	productRows, err := c.DB.Query(`
		SELECT id, restaurant_id, category_id, name, COALESCE(description, ''), price,
		       available, stock, COALESCE(image_url, ''), rating, review_count, discount
		FROM products
		WHERE restaurant_id = $1`, restaurantID)
	if err != nil {
		return &restaurant, categories, nil, err
	}
	defer productRows.Close()
	for productRows.Next() {
		var product domain.Product
		if err := productRows.Scan(&product.ID, &product.RestaurantID, &product.CategoryID,
			&product.Name, &product.Description, &product.Price, &product.Available,
			&product.Stock, &product.ImageURL, &product.Rating, &product.ReviewCount,
			&product.Discount); err != nil {
			continue
		}
		products = append(products, product)
	}

	return &restaurant, categories, products, nil
}

func (c *PostgresCache) CacheOrder(order domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	_, err = c.DB.Exec(`
		INSERT INTO orders (id, restaurant_id, table_id, status, total, items, notes, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, total = EXCLUDED.total, items = EXCLUDED.items,
		    notes = EXCLUDED.notes, idempotency_key = EXCLUDED.idempotency_key
	`, order.ID, order.RestaurantID, order.TableID, order.Status, order.Total,
		items, order.Notes, order.IdempotencyKey, order.CreatedAt)
	return err
}

func (c *PostgresCache) GetCachedOrders(tableID string) ([]domain.Order, error) {
	rows, err := c.DB.Query(`
		SELECT id, restaurant_id, table_id, status, total, items, COALESCE(notes, ''),
		       COALESCE(idempotency_key, ''), created_at
		FROM orders
		WHERE table_id = $1
		ORDER BY created_at DESC`, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		var items []byte
		if err := rows.Scan(&order.ID, &order.RestaurantID, &order.TableID, &order.Status,
			&order.Total, &items, &order.Notes, &order.IdempotencyKey, &order.CreatedAt); err != nil {
			continue
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (c *PostgresCache) CachePayment(payment domain.Payment) error {
	_, err := c.DB.Exec(`
		INSERT INTO payments (id, order_id, method, amount, status, transaction_id, ussd_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, transaction_id = EXCLUDED.transaction_id,
		    ussd_code = EXCLUDED.ussd_code
	`, payment.ID, payment.OrderID, payment.Method, payment.Amount, payment.Status,
		payment.TransactionID, payment.USSDCode, payment.CreatedAt)
	return err
}

func (c *PostgresCache) GetCachedPayment(orderID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := c.DB.QueryRow(`
		SELECT id, order_id, method, amount, status, COALESCE(transaction_id, ''),
		       COALESCE(ussd_code, ''), created_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, orderID).
		Scan(&payment.ID, &payment.OrderID, &payment.Method, &payment.Amount,
			&payment.Status, &payment.TransactionID, &payment.USSDCode, &payment.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// QueueOrder appends an outbox entry and returns its local id. Existing
// entries are never touched.
func (c *PostgresCache) QueueOrder(order domain.Order) (int64, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return 0, err
	}

	var localID int64
	err = c.DB.QueryRow(`
		INSERT INTO queued_orders (order_id, order_data, queued_at, synced)
		VALUES ($1, $2, NOW(), FALSE)
		RETURNING id
	`, order.ID, data).Scan(&localID)
	if err != nil {
		return 0, err
	}
	return localID, nil
}

// GetUnsyncedOrders returns pending outbox entries oldest first, the order
// replay must preserve.
func (c *PostgresCache) GetUnsyncedOrders() ([]domain.QueuedOrder, error) {
	rows, err := c.DB.Query(`
		SELECT id, order_id, order_data, queued_at, synced
		FROM queued_orders
		WHERE synced = FALSE
		ORDER BY queued_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queued := []domain.QueuedOrder{}
	for rows.Next() {
		var entry domain.QueuedOrder
		var data []byte
		if err := rows.Scan(&entry.LocalID, &entry.OrderID, &data, &entry.QueuedAt, &entry.Synced); err != nil {
			continue
		}
		if err := json.Unmarshal(data, &entry.OrderData); err != nil {
			continue
		}
		queued = append(queued, entry)
	}
	return queued, nil
}

// MarkOrderSynced flips one outbox entry to synced. Unknown ids are a no-op.
func (c *PostgresCache) MarkOrderSynced(localID int64) error {
	_, err := c.DB.Exec(`UPDATE queued_orders SET synced = TRUE WHERE id = $1`, localID)
	return err
}

// ClearAll empties every collection, for logout/reset flows.
func (c *PostgresCache) ClearAll() error {
	tables := []string{"queued_orders", "payments", "orders", "products", "categories", "restaurants"}
	for _, table := range tables {
		if _, err := c.DB.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	return nil
}
