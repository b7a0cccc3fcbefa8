package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	pkgpostgres "github.com/dwikikusuma/storefront/pkg/postgres"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Ping())
	require.NoError(t, pkgpostgres.Migrate(db, "../../../../migrations"))
	return db
}

// seedOrder inserts a store, a product and one pending order with a
// single snapshotted line, returning the order id and its customer.
func seedOrder(t *testing.T, db *sql.DB) (orderID, customerID string) {
	t.Helper()
	ctx := context.Background()
	customerID = uuid.NewString()

	var storeID, productID string
	err := db.QueryRowContext(ctx,
		`INSERT INTO stores (name, slug, latitude, longitude)
		 VALUES ('Pizzaria', $1, -23.5505, -46.6333) RETURNING id`,
		"pizzaria-"+uuid.NewString()).Scan(&storeID)
	require.NoError(t, err)

	err = db.QueryRowContext(ctx,
		`INSERT INTO products (store_id, name, price_amount) VALUES ($1, 'Margherita', 4500) RETURNING id`,
		storeID).Scan(&productID)
	require.NoError(t, err)

	err = db.QueryRowContext(ctx,
		`INSERT INTO orders (store_id, customer_id, subtotal_amount, delivery_fee_amount,
		                     total_amount, delivery_address, delivery_city, delivery_zip_code)
		 VALUES ($1, $2, 9000, 700, 9700, 'Av. Paulista 1000', 'Sao Paulo', '01310-100')
		 RETURNING id`,
		storeID, customerID).Scan(&orderID)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO order_items (order_id, product_id, name, unit_amount, quantity, line_total_amount)
		 VALUES ($1, $2, 'Margherita', 4500, 2, 9000)`,
		orderID, productID)
	require.NoError(t, err)

	return orderID, customerID
}

func TestOrderRepoGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepo(db)
	ctx := context.Background()

	orderID, customerID := seedOrder(t, db)

	got, err := repo.Get(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, customerID, got.CustomerID)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, int64(9700), got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(4500), got.Items[0].UnitAmount)

	_, err = repo.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestOrderRepoListByCustomer(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepo(db)
	ctx := context.Background()

	orderID, customerID := seedOrder(t, db)

	orders, err := repo.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	require.Len(t, orders[0].Items, 1, "listing must attach each order's items")
	assert.Equal(t, int32(2), orders[0].Items[0].Quantity)
}

func TestOrderRepoUpdateStatusGuarded(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepo(db)
	ctx := context.Background()

	orderID, _ := seedOrder(t, db)

	ok, err := repo.UpdateStatus(ctx, orderID, domain.StatusPending, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, ok)

	// Stale expectation matches zero rows.
	ok, err = repo.UpdateStatus(ctx, orderID, domain.StatusPending, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.Get(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
}
