package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type OrderRepo interface {
	Get(ctx context.Context, id string) (domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	// UpdateStatus transitions id from `from` to `to` and reports whether
	// a row matched, so a stale caller loses cleanly.
	UpdateStatus(ctx context.Context, id string, from, to domain.Status) (bool, error)
}
