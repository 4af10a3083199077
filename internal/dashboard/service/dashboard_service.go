package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	billDomain "github.com/spicevault/traders-billing/internal/billing/domain"
	invDomain "github.com/spicevault/traders-billing/internal/inventory/domain"
)

const recentTransactionLimit = 5

// ProductLister and BillLister are the read-only slices of the two stores the
// dashboard aggregates over.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]invDomain.Product, error)
}

type BillLister interface {
	ListBills(ctx context.Context) ([]billDomain.Bill, error)
}

type Summary struct {
	TotalProducts      int               `json:"total_products"`
	MonthlySales       decimal.Decimal   `json:"monthly_sales"`
	PendingTotal       decimal.Decimal   `json:"pending_total"`
	RecentTransactions []billDomain.Bill `json:"recent_transactions"`
}

type DashboardService interface {
	Summarize(ctx context.Context) (*Summary, error)
}

// dashboardServiceImpl recomputes every figure from current state on each
// call; nothing is cached.
type dashboardServiceImpl struct {
	products ProductLister
	bills    BillLister
	now      func() time.Time
}

func NewDashboardService(products ProductLister, bills BillLister) DashboardService {
	return &dashboardServiceImpl{products: products, bills: bills, now: time.Now}
}

func (s *dashboardServiceImpl) Summarize(ctx context.Context) (*Summary, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	bills, err := s.bills.ListBills(ctx)
	if err != nil {
		return nil, err
	}

	monthPrefix := s.now().Format("2006-01")
	monthlySales := decimal.Zero
	pendingTotal := decimal.Zero
	for _, b := range bills {
		if len(b.Date) >= len(monthPrefix) && b.Date[:len(monthPrefix)] == monthPrefix {
			monthlySales = monthlySales.Add(b.Total)
		}
		pendingTotal = pendingTotal.Add(b.Pending)
	}

	// Stable sort keeps creation order among bills sharing a date.
	recent := make([]billDomain.Bill, len(bills))
	copy(recent, bills)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date > recent[j].Date
	})
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}

	return &Summary{
		TotalProducts:      len(products),
		MonthlySales:       monthlySales,
		PendingTotal:       pendingTotal,
		RecentTransactions: recent,
	}, nil
}
