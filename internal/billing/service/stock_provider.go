package service

import (
	"context"

	"github.com/shopspring/decimal"
	invDomain "github.com/spicevault/traders-billing/internal/inventory/domain"
)

// StockProvider is the slice of the inventory service the billing engine
// needs: resolving live products and committing stock decrements. The
// inventory service satisfies it directly.
type StockProvider interface {
	GetProduct(ctx context.Context, id string) (*invDomain.Product, error)
	DecrementStock(ctx context.Context, changes map[string]decimal.Decimal) error
}
