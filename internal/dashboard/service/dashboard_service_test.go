package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	billDomain "github.com/spicevault/traders-billing/internal/billing/domain"
	billMocks "github.com/spicevault/traders-billing/internal/billing/repository/mocks"
	invDomain "github.com/spicevault/traders-billing/internal/inventory/domain"
	invMocks "github.com/spicevault/traders-billing/internal/inventory/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func fixedNow(date string) func() time.Time {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func summaryBill(id int64, date, total, pending string) billDomain.Bill {
	return billDomain.Bill{
		ID:      id,
		Date:    date,
		Total:   dec(total),
		Pending: dec(pending),
	}
}

func TestDashboardService_Summarize(t *testing.T) {
	ctx := context.TODO()

	products := []invDomain.Product{
		{ID: "p1", Name: "Turmeric"},
		{ID: "p2", Name: "Cumin"},
	}
	bills := []billDomain.Bill{
		summaryBill(1001, "2026-08-10", "450", "450"),
		summaryBill(1002, "2026-08-20", "200", "0"),
		summaryBill(1003, "2026-07-31", "100", "50"), // previous month
	}

	mockProducts := new(invMocks.MockProductRepository)
	mockBills := new(billMocks.MockBillRepository)
	mockProducts.On("ListProducts", ctx).Return(products, nil)
	mockBills.On("ListBills", ctx).Return(bills, nil)

	svc := NewDashboardService(mockProducts, mockBills)
	svc.(*dashboardServiceImpl).now = fixedNow("2026-08-23")

	summary, err := svc.Summarize(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalProducts)
	assert.True(t, summary.MonthlySales.Equal(dec("650")), "only bills in the current month count")
	assert.True(t, summary.PendingTotal.Equal(dec("500")), "pending sums across all months")
}

func TestDashboardService_RecentTransactions(t *testing.T) {
	ctx := context.TODO()

	// Seven bills; 1003 and 1004 share a date to exercise stable ordering.
	bills := []billDomain.Bill{
		summaryBill(1001, "2026-08-01", "10", "0"),
		summaryBill(1002, "2026-08-02", "10", "0"),
		summaryBill(1003, "2026-08-03", "10", "0"),
		summaryBill(1004, "2026-08-03", "10", "0"),
		summaryBill(1005, "2026-08-04", "10", "0"),
		summaryBill(1006, "2026-08-05", "10", "0"),
		summaryBill(1007, "2026-08-06", "10", "0"),
	}

	mockProducts := new(invMocks.MockProductRepository)
	mockBills := new(billMocks.MockBillRepository)
	mockProducts.On("ListProducts", ctx).Return([]invDomain.Product{}, nil)
	mockBills.On("ListBills", ctx).Return(bills, nil)

	svc := NewDashboardService(mockProducts, mockBills)
	svc.(*dashboardServiceImpl).now = fixedNow("2026-08-23")

	summary, err := svc.Summarize(ctx)

	require.NoError(t, err)
	require.Len(t, summary.RecentTransactions, 5)

	gotIDs := make([]int64, 0, 5)
	for _, b := range summary.RecentTransactions {
		gotIDs = append(gotIDs, b.ID)
	}
	// Newest first; within 2026-08-03, creation order (1003 before 1004).
	assert.Equal(t, []int64{1007, 1006, 1005, 1003, 1004}, gotIDs)
}

func TestDashboardService_EmptyState(t *testing.T) {
	ctx := context.TODO()

	mockProducts := new(invMocks.MockProductRepository)
	mockBills := new(billMocks.MockBillRepository)
	mockProducts.On("ListProducts", ctx).Return([]invDomain.Product{}, nil)
	mockBills.On("ListBills", ctx).Return([]billDomain.Bill{}, nil)

	svc := NewDashboardService(mockProducts, mockBills)

	summary, err := svc.Summarize(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalProducts)
	assert.True(t, summary.MonthlySales.IsZero())
	assert.True(t, summary.PendingTotal.IsZero())
	assert.Empty(t, summary.RecentTransactions)
}
