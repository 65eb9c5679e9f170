package testutil

import (
	"time"

	"github.com/abilic/ordergate/internal/domain/product"
)

// CatalogProducts returns the standard product fixtures used across tests:
// product 1 is a 1299.99 laptop with 10 in stock, product 2 a 199.99 pair of
// headphones with 50.
func CatalogProducts() []*product.Product {
	now := time.Now()
	return []*product.Product{
		{ID: 1, Name: "Laptop", PriceCents: 129999, StockQuantity: 10, CreatedAt: now, UpdatedAt: now},
		{ID: 2, Name: "Headphones", PriceCents: 19999, StockQuantity: 50, CreatedAt: now, UpdatedAt: now},
	}
}
