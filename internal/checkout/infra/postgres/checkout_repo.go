package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CheckoutRepo struct {
	db *sql.DB
}

func NewCheckoutRepo(db *sql.DB) *CheckoutRepo {
	return &CheckoutRepo{db: db}
}

func (r *CheckoutRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

type snapshotLine struct {
	productID  uuid.UUID
	name       string
	unitAmount int64
	quantity   int32
	notes      string
}

// CreateFromCart runs the whole checkout write as one transaction. The
// cart row is locked FOR UPDATE for the duration, so a second concurrent
// checkout waits, then reads an already-emptied cart and fails with
// ErrEmptyCart instead of producing a duplicate order.
func (r *CheckoutRepo) CreateFromCart(ctx context.Context, draft app.OrderDraft) (app.CreatedOrder, error) {
	customerUUID, err := uuid.Parse(draft.CustomerID)
	if err != nil {
		return app.CreatedOrder{}, err
	}
	storeUUID, err := uuid.Parse(draft.StoreID)
	if err != nil {
		return app.CreatedOrder{}, err
	}
	zoneUUID, err := uuid.Parse(draft.ZoneID)
	if err != nil {
		return app.CreatedOrder{}, err
	}

	var created app.CreatedOrder
	err = r.execTX(ctx, func(tx *sql.Tx) error {
		var cartID uuid.UUID
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM carts WHERE customer_id = $1 AND store_id = $2 FOR UPDATE`,
			customerUUID, storeUUID).Scan(&cartID)
		if errors.Is(err, sql.ErrNoRows) {
			return app.ErrEmptyCart
		}
		if err != nil {
			return fmt.Errorf("failed to lock cart: %w", err)
		}

		lines, err := snapshotCart(ctx, tx, cartID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return app.ErrEmptyCart
		}

		var subtotal int64
		for _, ln := range lines {
			subtotal += ln.unitAmount * int64(ln.quantity)
		}
		total := subtotal + draft.FeeAmount

		var orderID uuid.UUID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO orders (store_id, customer_id, status, currency,
			                     subtotal_amount, delivery_fee_amount, total_amount,
			                     delivery_address, delivery_city, delivery_state, delivery_zip_code,
			                     delivery_zone_id, customer_notes)
			 VALUES ($1, $2, 'pending', $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 RETURNING id, status, created_at`,
			storeUUID, customerUUID, draft.Currency,
			subtotal, draft.FeeAmount, total,
			draft.Address.Street, draft.Address.City, draft.Address.State, draft.Address.ZipCode,
			zoneUUID, draft.CustomerNotes,
		).Scan(&orderID, &created.Status, &created.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		snapshotted := make([]uuid.UUID, 0, len(lines))
		for i, ln := range lines {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, product_id, name, unit_amount, quantity, line_total_amount, notes)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				orderID, ln.productID, ln.name, ln.unitAmount, ln.quantity,
				ln.unitAmount*int64(ln.quantity), ln.notes)
			if err != nil {
				return fmt.Errorf("failed to insert item %d: %w", i, err)
			}
			snapshotted = append(snapshotted, ln.productID)
		}

		// Only the snapshotted lines are cleared; an item slipping in
		// concurrently stays in the cart for the next order.
		_, err = tx.ExecContext(ctx,
			`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = ANY($2)`,
			cartID, pq.Array(snapshotted))
		if err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		created.ID = orderID.String()
		created.Subtotal = subtotal
		created.Fee = draft.FeeAmount
		created.Total = total
		return nil
	})
	if err != nil {
		return app.CreatedOrder{}, err
	}
	return created, nil
}

func snapshotCart(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) ([]snapshotLine, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT ci.product_id, p.name, p.price_amount, ci.quantity, ci.notes
		   FROM cart_items ci
		   JOIN products p ON p.id = ci.product_id AND p.active
		  WHERE ci.cart_id = $1
		  ORDER BY ci.created_at`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot cart: %w", err)
	}
	defer rows.Close()

	var lines []snapshotLine
	for rows.Next() {
		var ln snapshotLine
		if err := rows.Scan(&ln.productID, &ln.name, &ln.unitAmount, &ln.quantity, &ln.notes); err != nil {
			return nil, err
		}
		lines = append(lines, ln)
	}
	return lines, rows.Err()
}
