package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spicevault/traders-billing/internal/inventory/domain"
	"github.com/spicevault/traders-billing/internal/inventory/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func TestInventoryService_AddProduct(t *testing.T) {
	ctx := context.TODO()

	validReq := domain.AddProductRequest{
		Name:       "Turmeric",
		Quantity:   dec("10"),
		Unit:       "KG",
		BuyingRate: dec("100"),
	}

	t.Run("Successful add with defaulted selling rate", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("InsertProduct", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()

		product, err := svc.AddProduct(ctx, validReq)

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, "Turmeric", product.Name)
		assert.True(t, product.SellingRate.Equal(dec("120")), "selling rate should default to 1.2x buying rate")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Explicit selling rate wins over the default", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("InsertProduct", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()

		rate := dec("150")
		req := validReq
		req.SellingRate = &rate

		product, err := svc.AddProduct(ctx, req)

		assert.NoError(t, err)
		assert.True(t, product.SellingRate.Equal(dec("150")))
	})

	t.Run("Identity is unique and time ordered", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("InsertProduct", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Twice()

		first, err := svc.AddProduct(ctx, validReq)
		assert.NoError(t, err)
		second, err := svc.AddProduct(ctx, validReq)
		assert.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Less(t, first.ID, second.ID, "UUIDv7 ids should sort by creation time")
	})

	t.Run("Validation failures", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewInventoryService(mockRepo)

		cases := []struct {
			name   string
			mutate func(*domain.AddProductRequest)
		}{
			{"empty name", func(r *domain.AddProductRequest) { r.Name = "" }},
			{"negative quantity", func(r *domain.AddProductRequest) { r.Quantity = dec("-1") }},
			{"negative buying rate", func(r *domain.AddProductRequest) { r.BuyingRate = dec("-10") }},
		}
		for _, tc := range cases {
			req := validReq
			tc.mutate(&req)

			product, err := svc.AddProduct(ctx, req)
			assert.Error(t, err, tc.name)
			assert.Nil(t, product, tc.name)
			assert.ErrorIs(t, err, ErrInvalidProduct, tc.name)
		}
		mockRepo.AssertNotCalled(t, "InsertProduct", mock.Anything, mock.Anything)
	})

	t.Run("Zero quantity is allowed", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("InsertProduct", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()

		req := validReq
		req.Quantity = decimal.Zero

		product, err := svc.AddProduct(ctx, req)
		assert.NoError(t, err)
		assert.True(t, product.Quantity.IsZero())
	})
}

func TestInventoryService_DecrementStock(t *testing.T) {
	ctx := context.TODO()

	t.Run("Delegates to the repository", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewInventoryService(mockRepo)

		changes := map[string]decimal.Decimal{"p1": dec("3")}
		mockRepo.On("ApplyDecrements", ctx, changes).Return(nil).Once()

		assert.NoError(t, svc.DecrementStock(ctx, changes))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Non-positive decrement is rejected before the repository", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewInventoryService(mockRepo)

		err := svc.DecrementStock(ctx, map[string]decimal.Decimal{"p1": decimal.Zero})

		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidProduct)
		mockRepo.AssertNotCalled(t, "ApplyDecrements", mock.Anything, mock.Anything)
	})
}
