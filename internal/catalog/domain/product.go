package domain

import "time"

type Money struct {
	Currency string
	Amount   int64
}

type Product struct {
	ID          string
	StoreID     string
	Name        string
	Description string
	Price       Money
	Active      bool
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
