package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spicevault/traders-billing/internal/billing/domain"
	"github.com/spicevault/traders-billing/internal/billing/repository"
	invRepo "github.com/spicevault/traders-billing/internal/inventory/repository"
	"github.com/spicevault/traders-billing/internal/platform/logger"
)

var (
	ErrInvalidBill       = errors.New("invalid bill")
	ErrUnknownProduct    = errors.New("unknown product in bill")
	ErrInsufficientStock = errors.New("insufficient stock for bill")
	ErrInvalidPayment    = errors.New("invalid payment")
	ErrOverpayment       = errors.New("payment exceeds pending balance")
	ErrDuplicatePayment  = errors.New("duplicate payment")
)

type BillingService interface {
	CreateBill(ctx context.Context, req domain.CreateBillRequest) (*domain.Bill, error)
	RecordPayment(ctx context.Context, billID int64, req domain.RecordPaymentRequest) (*domain.Bill, error)
	ListBills(ctx context.Context) ([]domain.Bill, error)
	GetBill(ctx context.Context, id int64) (*domain.Bill, error)
}

type billingServiceImpl struct {
	billRepo repository.BillRepository
	stock    StockProvider
}

func NewBillingService(br repository.BillRepository, sp StockProvider) BillingService {
	return &billingServiceImpl{billRepo: br, stock: sp}
}

// CreateBill validates the whole draft against current inventory before any
// side effect: either every line resolves and fits the available stock and
// the bill is committed, or nothing changes.
func (s *billingServiceImpl) CreateBill(ctx context.Context, req domain.CreateBillRequest) (*domain.Bill, error) {
	if req.Customer == "" {
		return nil, fmt.Errorf("%w: customer is required", ErrInvalidBill)
	}
	if _, err := time.Parse(time.DateOnly, req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be a valid YYYY-MM-DD date", ErrInvalidBill)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one line item is required", ErrInvalidBill)
	}
	if req.AmountPaid.IsNegative() {
		return nil, fmt.Errorf("%w: amount paid must not be negative", ErrInvalidBill)
	}

	// Resolve every draft line against the CURRENT store state. A product
	// deleted mid-edit invalidates the whole submission.
	items := make([]domain.BillLineItem, 0, len(req.Items))
	changes := make(map[string]decimal.Decimal, len(req.Items))
	total := decimal.Zero
	for _, draft := range req.Items {
		if !draft.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: line quantity must be positive", ErrInvalidBill)
		}
		if draft.Rate.IsNegative() {
			return nil, fmt.Errorf("%w: line rate must not be negative", ErrInvalidBill)
		}

		product, err := s.stock.GetProduct(ctx, draft.ProductID)
		if err != nil {
			if errors.Is(err, invRepo.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: id %s", ErrUnknownProduct, draft.ProductID)
			}
			return nil, err
		}

		requested := draft.Quantity
		if prev, ok := changes[product.ID]; ok {
			requested = requested.Add(prev)
		}
		if requested.GreaterThan(product.Quantity) {
			return nil, fmt.Errorf("%w: %s has %s %s available, %s requested",
				ErrInsufficientStock, product.Name, product.Quantity, product.Unit, requested)
		}
		changes[product.ID] = requested

		lineTotal := draft.Quantity.Mul(draft.Rate)
		total = total.Add(lineTotal)
		items = append(items, domain.BillLineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Unit:      product.Unit,
			Quantity:  draft.Quantity,
			Rate:      draft.Rate, // caller-supplied, may differ from the selling rate
			LineTotal: lineTotal,
		})
	}

	// Commit: one atomic decrement across all lines, then append the bill.
	if err := s.stock.DecrementStock(ctx, changes); err != nil {
		logger.Error("CreateBill: stock decrement failed", err)
		if errors.Is(err, invRepo.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %v", ErrInsufficientStock, err)
		}
		return nil, err
	}

	// Amount paid at creation is deliberately not checked against the total;
	// only later payments are bounded by the pending balance.
	bill := &domain.Bill{
		Customer: req.Customer,
		Date:     req.Date,
		Items:    items,
		Total:    total,
		Paid:     req.AmountPaid,
		Pending:  total.Sub(req.AmountPaid),
		Status:   domain.StatusFor(req.AmountPaid, total),
	}
	if err := s.billRepo.InsertBill(ctx, bill); err != nil {
		// Stock is already decremented; the snapshot write is the only thing
		// that can fail here and the caller may retry it.
		logger.Error("CreateBill: failed to persist bill", err)
		return nil, err
	}

	logger.Info("Bill %d created for %s, total %s", bill.ID, bill.Customer, bill.Total)
	return bill, nil
}

func (s *billingServiceImpl) RecordPayment(ctx context.Context, billID int64, req domain.RecordPaymentRequest) (*domain.Bill, error) {
	bill, err := s.billRepo.GetBillByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidPayment)
	}
	if _, err := time.Parse(time.DateOnly, req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be a valid YYYY-MM-DD date", ErrInvalidPayment)
	}
	if bill.HasPaymentKey(req.IdempotencyKey) {
		return nil, fmt.Errorf("%w: key %s already applied to bill %d", ErrDuplicatePayment, req.IdempotencyKey, billID)
	}
	if req.Amount.GreaterThan(bill.Pending) {
		return nil, fmt.Errorf("%w: %s pending, %s offered", ErrOverpayment, bill.Pending, req.Amount)
	}

	bill.Paid = bill.Paid.Add(req.Amount)
	bill.Pending = bill.Total.Sub(bill.Paid)
	bill.Status = domain.StatusFor(bill.Paid, bill.Total)
	bill.Payments = append(bill.Payments, domain.Payment{
		Amount:         req.Amount,
		Date:           req.Date,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
	})

	if err := s.billRepo.UpdateBill(ctx, bill); err != nil {
		logger.Error(fmt.Sprintf("RecordPayment: failed to persist bill %d", billID), err)
		return nil, err
	}

	logger.Info("Payment of %s recorded on bill %d, status %s", req.Amount, billID, bill.Status)
	return bill, nil
}

func (s *billingServiceImpl) ListBills(ctx context.Context) ([]domain.Bill, error) {
	return s.billRepo.ListBills(ctx)
}

func (s *billingServiceImpl) GetBill(ctx context.Context, id int64) (*domain.Bill, error) {
	return s.billRepo.GetBillByID(ctx, id)
}
