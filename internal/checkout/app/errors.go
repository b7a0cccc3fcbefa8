package app

import "errors"

var (
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrPersistence covers unreachable or timed-out storage. The failed
	// attempt commits nothing, so a caller may retry once with the same
	// inputs without risking a duplicate order.
	ErrPersistence = errors.New("order could not be persisted")
)
