package domain

import (
	"github.com/shopspring/decimal"
)

type BillStatus string

const (
	StatusPending BillStatus = "PENDING"
	StatusPartial BillStatus = "PARTIAL"
	StatusPaid    BillStatus = "PAID"
)

// StatusFor derives the payment status from the paid/total pair. It is the
// single source of the status rule: no payment yet is PENDING, anything in
// between is PARTIAL, and paid >= total is PAID.
func StatusFor(paid, total decimal.Decimal) BillStatus {
	switch {
	case paid.IsZero():
		return StatusPending
	case paid.LessThan(total):
		return StatusPartial
	default:
		return StatusPaid
	}
}

// BillLineItem is a denormalized copy of the product at bill time. ProductID
// is a weak back-reference: the product may be deleted later and the line
// stays valid.
type BillLineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Payment is one recorded installment against a bill.
type Payment struct {
	Amount         decimal.Decimal `json:"amount"`
	Date           string          `json:"date"`
	Notes          string          `json:"notes,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

type Bill struct {
	ID       int64           `json:"id"`
	Customer string          `json:"customer"`
	Date     string          `json:"date"` // calendar date, YYYY-MM-DD
	Items    []BillLineItem  `json:"items"`
	Total    decimal.Decimal `json:"total"` // fixed at creation
	Paid     decimal.Decimal `json:"paid"`
	Pending  decimal.Decimal `json:"pending"` // kept equal to total - paid by every mutator
	Status   BillStatus      `json:"status"`
	Payments []Payment       `json:"payments,omitempty"`
}

// HasPaymentKey reports whether a payment with the given idempotency key has
// already been recorded. Empty keys never match.
func (b *Bill) HasPaymentKey(key string) bool {
	if key == "" {
		return false
	}
	for _, p := range b.Payments {
		if p.IdempotencyKey == key {
			return true
		}
	}
	return false
}

type DraftLineItem struct {
	ProductID string          `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
}

type CreateBillRequest struct {
	Customer   string          `json:"customer" binding:"required"`
	Date       string          `json:"date" binding:"required"`
	Items      []DraftLineItem `json:"items" binding:"required"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

type RecordPaymentRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Date           string          `json:"date" binding:"required"`
	Notes          string          `json:"notes"`
	IdempotencyKey string          `json:"idempotency_key"`
}
