package domain

import "time"

// CartItem is a single line of a cart. There is at most one row per
// (cart, product); repeated adds increment Quantity.
type CartItem struct {
	ProductID string
	Quantity  int32
	Notes     string
}

// Cart is the mutable pre-order basket of one (customer, store) pair.
// It is created lazily and survives checkout: checkout clears the
// items, never the row.
type Cart struct {
	ID         string
	CustomerID string
	StoreID    string
	Items      []CartItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
