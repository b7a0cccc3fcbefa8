package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	pkgpostgres "github.com/dwikikusuma/storefront/pkg/postgres"
)

// openTestDB connects to the database named by TEST_DATABASE_URL and
// applies migrations. Tests are skipped when the variable is unset so
// the suite stays runnable without infrastructure.
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

func seedStoreAndProduct(t *testing.T, db *sql.DB) (storeID, productID string) {
	t.Helper()
	ctx := context.Background()

	err := db.QueryRowContext(ctx,
		`INSERT INTO stores (name, slug, latitude, longitude)
		 VALUES ('Pizzaria', $1, -23.5505, -46.6333) RETURNING id`,
		"pizzaria-"+uuid.NewString()).Scan(&storeID)
	require.NoError(t, err)

	err = db.QueryRowContext(ctx,
		`INSERT INTO products (store_id, name, price_amount) VALUES ($1, 'Margherita', 4500) RETURNING id`,
		storeID).Scan(&productID)
	require.NoError(t, err)
	return storeID, productID
}

func TestCartRepoGetOrCreateConcurrent(t *testing.T) {
	db := openTestDB(t)
	repo := NewCartRepo(db)
	storeID, _ := seedStoreAndProduct(t, db)
	customerID := uuid.NewString()

	const workers = 8
	ids := make([]string, workers)
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			cart, err := repo.GetOrCreate(ctx, customerID, storeID)
			if err != nil {
				return err
			}
			ids[i] = cart.ID
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id, "all callers must share one cart")
	}
}

func TestCartRepoAddItemConcurrentIncrements(t *testing.T) {
	db := openTestDB(t)
	repo := NewCartRepo(db)
	storeID, productID := seedStoreAndProduct(t, db)

	cart, err := repo.GetOrCreate(context.Background(), uuid.NewString(), storeID)
	require.NoError(t, err)

	const adds = 10
	g, ctx := errgroup.WithContext(context.Background())
	for n := 0; n < adds; n++ {
		g.Go(func() error {
			return repo.AddItem(ctx, cart.ID, domain.CartItem{ProductID: productID, Quantity: 1})
		})
	}
	require.NoError(t, g.Wait())

	got, err := repo.Get(context.Background(), cart.CustomerID, cart.StoreID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1, "one line per product")
	assert.Equal(t, int32(adds), got.Items[0].Quantity)
}

func TestCartRepoSetItemQuantity(t *testing.T) {
	db := openTestDB(t)
	repo := NewCartRepo(db)
	storeID, productID := seedStoreAndProduct(t, db)
	ctx := context.Background()

	cart, err := repo.GetOrCreate(ctx, uuid.NewString(), storeID)
	require.NoError(t, err)

	t.Run("missing line", func(t *testing.T) {
		err := repo.SetItemQuantity(ctx, cart.ID, domain.CartItem{ProductID: productID, Quantity: 3})
		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("overwrites quantity", func(t *testing.T) {
		require.NoError(t, repo.AddItem(ctx, cart.ID, domain.CartItem{ProductID: productID, Quantity: 1}))
		require.NoError(t, repo.SetItemQuantity(ctx, cart.ID, domain.CartItem{ProductID: productID, Quantity: 5}))

		got, err := repo.Get(ctx, cart.CustomerID, cart.StoreID)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, int32(5), got.Items[0].Quantity)
	})
}

func TestCartRepoRemoveAndClear(t *testing.T) {
	db := openTestDB(t)
	repo := NewCartRepo(db)
	storeID, productID := seedStoreAndProduct(t, db)
	ctx := context.Background()

	cart, err := repo.GetOrCreate(ctx, uuid.NewString(), storeID)
	require.NoError(t, err)
	require.NoError(t, repo.AddItem(ctx, cart.ID, domain.CartItem{ProductID: productID, Quantity: 2}))

	require.NoError(t, repo.RemoveItem(ctx, cart.ID, productID))
	got, err := repo.Get(ctx, cart.CustomerID, cart.StoreID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	// Clearing an already-empty cart is a no-op, and the row survives.
	require.NoError(t, repo.Clear(ctx, cart.ID))
	got, err = repo.Get(ctx, cart.CustomerID, cart.StoreID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, got.ID)
}
