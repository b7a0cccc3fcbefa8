package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("order not found")
	ErrIllegalTransition = errors.New("illegal order status transition")
	ErrStatusConflict    = errors.New("order status changed concurrently")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

// Advance moves an order one step along pending -> confirmed -> delivered.
// Skips and reversals are rejected before touching storage; a concurrent
// status change surfaces as ErrStatusConflict.
func (s *Service) Advance(ctx context.Context, id string, next domain.Status) (domain.Order, error) {
	if !next.Valid() {
		return domain.Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, next)
	}

	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	if !order.Status.CanTransitionTo(next) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.Status, next)
	}

	ok, err := s.repo.UpdateStatus(ctx, id, order.Status, next)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		return domain.Order{}, ErrStatusConflict
	}

	return s.repo.Get(ctx, id)
}
