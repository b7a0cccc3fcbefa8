package domain

import "time"

type Money struct {
	Currency string
	Amount   int64
}

type DeliveryAddress struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

// Order is the immutable purchase record produced by checkout. Only its
// status ever changes, and only forward.
type Order struct {
	ID            string
	StoreID       string
	CustomerID    string
	Status        Status
	Currency      string
	Subtotal      int64
	DeliveryFee   int64
	Total         int64
	Address       DeliveryAddress
	ZoneID        string
	CustomerNotes string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem is a price-snapshotted line: UnitAmount is copied from the
// product at checkout time and never re-read.
type OrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Name       string
	UnitAmount int64
	Quantity   int32
	LineTotal  int64
	Notes      string
}
