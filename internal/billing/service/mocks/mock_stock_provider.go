package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	invDomain "github.com/spicevault/traders-billing/internal/inventory/domain"
	"github.com/stretchr/testify/mock"
)

type MockStockProvider struct {
	mock.Mock
}

func (m *MockStockProvider) GetProduct(ctx context.Context, id string) (*invDomain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*invDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStockProvider) DecrementStock(ctx context.Context, changes map[string]decimal.Decimal) error {
	args := m.Called(ctx, changes)
	return args.Error(0)
}
