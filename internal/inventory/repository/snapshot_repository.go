package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/spicevault/traders-billing/internal/inventory/domain"
	"github.com/spicevault/traders-billing/internal/platform/logger"
	"github.com/spicevault/traders-billing/internal/platform/storage"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

const bucketInventory = "inventory"

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	InsertProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	// ApplyDecrements reduces stock for every listed product in one step.
	// If any product is missing or short on stock, nothing changes.
	ApplyDecrements(ctx context.Context, changes map[string]decimal.Decimal) error
}

// snapshotProductRepository keeps the full product list in memory, in
// insertion order, and rewrites the inventory snapshot after every mutation.
type snapshotProductRepository struct {
	store *storage.SnapshotStore

	mu       sync.Mutex
	products []domain.Product
}

func NewSnapshotProductRepository(store *storage.SnapshotStore) (ProductRepository, error) {
	r := &snapshotProductRepository{store: store}
	found, err := store.Load(bucketInventory, &r.products)
	if err != nil {
		return nil, err
	}
	if !found {
		r.products = []domain.Product{}
	}
	logger.Info("Inventory loaded: %d products", len(r.products))
	return r, nil
}

func (r *snapshotProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *snapshotProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *snapshotProductRepository) InsertProduct(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, *p)
	return r.persist()
}

// DeleteProduct removes the product if present. Deleting an absent product is
// a no-op; past bills keep their denormalized copies either way.
func (r *snapshotProductRepository) DeleteProduct(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return r.persist()
		}
	}
	return nil
}

func (r *snapshotProductRepository) ApplyDecrements(ctx context.Context, changes map[string]decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate every line before touching any quantity.
	idx := make(map[string]int, len(changes))
	for id, amount := range changes {
		pos := -1
		for i := range r.products {
			if r.products[i].ID == id {
				pos = i
				break
			}
		}
		if pos == -1 {
			return fmt.Errorf("%w: id %s", ErrProductNotFound, id)
		}
		if amount.GreaterThan(r.products[pos].Quantity) {
			return fmt.Errorf("%w: %s has %s available, %s requested",
				ErrInsufficientStock, r.products[pos].Name, r.products[pos].Quantity, amount)
		}
		idx[id] = pos
	}

	for id, amount := range changes {
		pos := idx[id]
		r.products[pos].Quantity = r.products[pos].Quantity.Sub(amount)
	}
	return r.persist()
}

func (r *snapshotProductRepository) persist() error {
	if err := r.store.Save(bucketInventory, r.products); err != nil {
		logger.Error("Inventory snapshot write failed", err)
		return err
	}
	return nil
}
