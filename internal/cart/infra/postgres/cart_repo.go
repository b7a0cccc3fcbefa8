package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) Get(ctx context.Context, customerID, storeID string) (domain.Cart, error) {
	customerUUID, storeUUID, err := parsePair(customerID, storeID)
	if err != nil {
		return domain.Cart{}, err
	}

	var (
		cartID uuid.UUID
		cart   domain.Cart
	)
	err = r.db.QueryRowContext(ctx,
		`SELECT id, created_at, updated_at FROM carts WHERE customer_id = $1 AND store_id = $2`,
		customerUUID, storeUUID).Scan(&cartID, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Cart{}, err
	}

	cart.ID = cartID.String()
	cart.CustomerID = customerID
	cart.StoreID = storeID
	cart.Items, err = r.listItems(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// GetOrCreate is idempotent under concurrent calls: the (customer, store)
// unique constraint makes the losing insert fail, after which the winner's
// row is re-read.
func (r *CartRepo) GetOrCreate(ctx context.Context, customerID, storeID string) (domain.Cart, error) {
	cart, err := r.Get(ctx, customerID, storeID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, app.ErrNotFound) {
		return domain.Cart{}, err
	}

	customerUUID, storeUUID, err := parsePair(customerID, storeID)
	if err != nil {
		return domain.Cart{}, err
	}

	_, createErr := r.db.ExecContext(ctx,
		`INSERT INTO carts (customer_id, store_id) VALUES ($1, $2)`,
		customerUUID, storeUUID)
	if createErr == nil || isUniqueViolation(createErr) {
		return r.Get(ctx, customerID, storeID)
	}
	return domain.Cart{}, createErr
}

func (r *CartRepo) AddItem(ctx context.Context, cartID string, item domain.CartItem) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	productUUID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return err
	}

	// Atomic increment: two concurrent adds for the same product both land.
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity, notes)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (cart_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		               updated_at = now()`,
		cartUUID, productUUID, item.Quantity, item.Notes)
	return err
}

func (r *CartRepo) SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	productUUID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now()
		  WHERE cart_id = $1 AND product_id = $2`,
		cartUUID, productUUID, item.Quantity)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartUUID, productUUID)
	return err
}

func (r *CartRepo) Clear(ctx context.Context, cartID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartUUID)
	return err
}

func (r *CartRepo) listItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, quantity, notes FROM cart_items WHERE cart_id = $1 ORDER BY created_at`,
		cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var (
			productID uuid.UUID
			it        domain.CartItem
		)
		if err := rows.Scan(&productID, &it.Quantity, &it.Notes); err != nil {
			return nil, err
		}
		it.ProductID = productID.String()
		items = append(items, it)
	}
	return items, rows.Err()
}

func parsePair(customerID, storeID string) (uuid.UUID, uuid.UUID, error) {
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return customerUUID, storeUUID, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
