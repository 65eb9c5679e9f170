package product

import "time"

// Product represents a catalog item with a mutable stock counter.
type Product struct {
	ID            int64
	Name          string
	PriceCents    int64
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockItem is one (product, quantity) pair in a reservation or release.
type StockItem struct {
	ProductID int64
	Quantity  int
}
