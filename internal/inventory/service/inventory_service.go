package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicevault/traders-billing/internal/inventory/domain"
	"github.com/spicevault/traders-billing/internal/inventory/repository"
	"github.com/spicevault/traders-billing/internal/platform/logger"
)

var ErrInvalidProduct = errors.New("invalid product")

// sellingRateMarkup is applied to the buying rate when no selling rate is
// supplied on creation.
var sellingRateMarkup = decimal.NewFromFloat(1.2)

type InventoryService interface {
	AddProduct(ctx context.Context, req domain.AddProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	// DecrementStock is the billing engine's commit step: all listed
	// quantities are reduced together or not at all.
	DecrementStock(ctx context.Context, changes map[string]decimal.Decimal) error
}

type inventoryServiceImpl struct {
	repo repository.ProductRepository
}

func NewInventoryService(repo repository.ProductRepository) InventoryService {
	return &inventoryServiceImpl{repo: repo}
}

func (s *inventoryServiceImpl) AddProduct(ctx context.Context, req domain.AddProductRequest) (*domain.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidProduct)
	}
	if req.BuyingRate.IsNegative() {
		return nil, fmt.Errorf("%w: buying rate must not be negative", ErrInvalidProduct)
	}

	sellingRate := req.BuyingRate.Mul(sellingRateMarkup)
	if req.SellingRate != nil {
		if req.SellingRate.IsNegative() {
			return nil, fmt.Errorf("%w: selling rate must not be negative", ErrInvalidProduct)
		}
		sellingRate = *req.SellingRate
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to assign product id: %w", err)
	}

	p := &domain.Product{
		ID:          id.String(),
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		BuyingRate:  req.BuyingRate,
		SellingRate: sellingRate,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.InsertProduct(ctx, p); err != nil {
		logger.Error("AddProduct: failed to persist product "+p.Name, err)
		return nil, err
	}
	logger.Info("Product added: %s (%s %s)", p.Name, p.Quantity, p.Unit)
	return p, nil
}

func (s *inventoryServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *inventoryServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *inventoryServiceImpl) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *inventoryServiceImpl) DecrementStock(ctx context.Context, changes map[string]decimal.Decimal) error {
	for id, amount := range changes {
		if !amount.IsPositive() {
			return fmt.Errorf("%w: decrement for product %s must be positive", ErrInvalidProduct, id)
		}
	}
	return s.repo.ApplyDecrements(ctx, changes)
}
