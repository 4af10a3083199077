package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/spicevault/traders-billing/internal/billing/domain"
	"github.com/spicevault/traders-billing/internal/platform/logger"
	"github.com/spicevault/traders-billing/internal/platform/storage"
)

var ErrBillNotFound = errors.New("bill not found")

const (
	bucketBills = "bills"

	// firstBillID seeds the sequential counter for an empty collection.
	firstBillID int64 = 1001
)

type BillRepository interface {
	ListBills(ctx context.Context) ([]domain.Bill, error)
	GetBillByID(ctx context.Context, id int64) (*domain.Bill, error)
	// InsertBill assigns the next sequential id, appends and persists.
	InsertBill(ctx context.Context, b *domain.Bill) error
	// UpdateBill replaces the stored bill with the same id and persists.
	UpdateBill(ctx context.Context, b *domain.Bill) error
}

// snapshotBillRepository mirrors the bill collection to a single snapshot in
// durable storage. Insertion order is creation order and is preserved across
// restarts; the id counter restarts at max existing id + 1.
type snapshotBillRepository struct {
	store *storage.SnapshotStore

	mu     sync.Mutex
	bills  []domain.Bill
	nextID int64
}

func NewSnapshotBillRepository(store *storage.SnapshotStore) (BillRepository, error) {
	r := &snapshotBillRepository{store: store, nextID: firstBillID}
	found, err := store.Load(bucketBills, &r.bills)
	if err != nil {
		return nil, err
	}
	if !found {
		r.bills = []domain.Bill{}
	}
	for _, b := range r.bills {
		if b.ID >= r.nextID {
			r.nextID = b.ID + 1
		}
	}
	logger.Info("Bills loaded: %d, next bill id %d", len(r.bills), r.nextID)
	return r, nil
}

func (r *snapshotBillRepository) ListBills(ctx context.Context) ([]domain.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Bill, len(r.bills))
	copy(out, r.bills)
	return out, nil
}

func (r *snapshotBillRepository) GetBillByID(ctx context.Context, id int64) (*domain.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bills {
		if r.bills[i].ID == id {
			b := r.bills[i]
			return &b, nil
		}
	}
	return nil, ErrBillNotFound
}

func (r *snapshotBillRepository) InsertBill(ctx context.Context, b *domain.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	r.bills = append(r.bills, *b)
	return r.persist()
}

func (r *snapshotBillRepository) UpdateBill(ctx context.Context, b *domain.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bills {
		if r.bills[i].ID == b.ID {
			r.bills[i] = *b
			return r.persist()
		}
	}
	return ErrBillNotFound
}

func (r *snapshotBillRepository) persist() error {
	if err := r.store.Save(bucketBills, r.bills); err != nil {
		logger.Error("Bill snapshot write failed", err)
		return err
	}
	return nil
}
