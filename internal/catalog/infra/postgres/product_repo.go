package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/google/uuid"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, store_id, name, description, price_amount, currency, active, category, created_at, updated_at`

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	storeUUID, err := uuid.Parse(p.StoreID)
	if err != nil {
		return domain.Product{}, app.ErrInvalidInput
	}

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO products (store_id, name, description, price_amount, currency, active, category)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+productColumns,
		storeUUID, p.Name, p.Description, p.Price.Amount, p.Price.Currency, p.Active, p.Category)
	return scanProduct(row)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	prodUUID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrInvalidInput
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, prodUUID)
	return scanProduct(row)
}

func (r *ProductRepo) ListActive(ctx context.Context, storeID string) ([]domain.Product, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return nil, app.ErrInvalidInput
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+`
		   FROM products
		  WHERE store_id = $1 AND active
		  ORDER BY category, name`, storeUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProductRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFields(sc rowScanner) (domain.Product, error) {
	var (
		id, storeID uuid.UUID
		p           domain.Product
	)
	err := sc.Scan(&id, &storeID, &p.Name, &p.Description, &p.Price.Amount, &p.Price.Currency,
		&p.Active, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = id.String()
	p.StoreID = storeID.String()
	return p, nil
}

func scanProduct(row *sql.Row) (domain.Product, error) {
	p, err := scanFields(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return p, err
}

func scanProductRows(rows *sql.Rows) (domain.Product, error) {
	return scanFields(rows)
}
