package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/google/uuid"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

const orderColumns = `id, store_id, customer_id, status, currency, subtotal_amount,
	delivery_fee_amount, total_amount, delivery_address, delivery_city,
	delivery_state, delivery_zip_code, delivery_zone_id, customer_notes,
	created_at, updated_at`

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	orderUUID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, app.ErrInvalidInput
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderUUID)

	order, _, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	order.Items, err = r.listItems(ctx, orderUUID)
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, app.ErrInvalidInput
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out []domain.Order
		ids []uuid.UUID
	)
	for rows.Next() {
		order, orderUUID, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
		ids = append(ids, orderUUID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].Items, err = r.listItems(ctx, ids[i])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to domain.Status) (bool, error) {
	orderUUID, err := uuid.Parse(id)
	if err != nil {
		return false, app.ErrInvalidInput
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $3, updated_at = now()
		  WHERE id = $1 AND status = $2`,
		orderUUID, from, to)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *OrderRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, name, unit_amount, quantity, line_total_amount, notes
		   FROM order_items WHERE order_id = $1 ORDER BY created_at`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			id, oid, pid uuid.UUID
			it           domain.OrderItem
		)
		if err := rows.Scan(&id, &oid, &pid, &it.Name, &it.UnitAmount, &it.Quantity, &it.LineTotal, &it.Notes); err != nil {
			return nil, err
		}
		it.ID = id.String()
		it.OrderID = oid.String()
		it.ProductID = pid.String()
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(scan func(dest ...any) error) (domain.Order, uuid.UUID, error) {
	var (
		id, storeID, customerID uuid.UUID
		zoneID                  uuid.NullUUID
		o                       domain.Order
	)
	err := scan(&id, &storeID, &customerID, &o.Status, &o.Currency, &o.Subtotal,
		&o.DeliveryFee, &o.Total, &o.Address.Street, &o.Address.City,
		&o.Address.State, &o.Address.ZipCode, &zoneID, &o.CustomerNotes,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, uuid.Nil, err
	}
	o.ID = id.String()
	o.StoreID = storeID.String()
	o.CustomerID = customerID.String()
	if zoneID.Valid {
		o.ZoneID = zoneID.UUID.String()
	}
	return o, id, nil
}
