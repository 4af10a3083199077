package mocks

import (
	"context"

	"github.com/spicevault/traders-billing/internal/billing/domain"
	"github.com/stretchr/testify/mock"
)

type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) ListBills(ctx context.Context) ([]domain.Bill, error) {
	args := m.Called(ctx)
	if b := args.Get(0); b != nil {
		return b.([]domain.Bill), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBillRepository) GetBillByID(ctx context.Context, id int64) (*domain.Bill, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Bill), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBillRepository) InsertBill(ctx context.Context, b *domain.Bill) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil && b.ID == 0 {
		b.ID = 1001
	}
	return args.Error(0)
}

func (m *MockBillRepository) UpdateBill(ctx context.Context, b *domain.Bill) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
