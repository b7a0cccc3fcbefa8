package domain

import "time"

type Money struct {
	Currency string
	Amount   int64
}

type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

type QuoteLine struct {
	ProductID string
	Name      string
	Quantity  int64
	UnitPrice Money
	LineTotal Money
}

// Quote is a live-priced cart summary for pre-submit display. Prices are
// only snapshotted later, inside the checkout transaction.
type Quote struct {
	Lines []QuoteLine
	Total Money
}

type CheckoutRequest struct {
	CustomerID     string
	StoreSlug      string
	Address        Address
	CustomerNotes  string
	IdempotencyKey string
}

type CheckoutResult struct {
	OrderID     string
	Status      string
	Subtotal    Money
	DeliveryFee Money
	Total       Money
	ZoneID      string
	CreatedAt   time.Time
}
