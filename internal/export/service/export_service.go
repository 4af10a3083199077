package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	billDomain "github.com/spicevault/traders-billing/internal/billing/domain"
	"github.com/spicevault/traders-billing/internal/platform/logger"
)

var (
	ErrNoData        = errors.New("no bills found for the requested month")
	ErrInvalidPeriod = errors.New("invalid export period")
	ErrWriteFailed   = errors.New("spreadsheet write failed")
)

const (
	businessName  = "Spice Vault Traders"
	itemSeparator = "; "
)

// exportHeader is the fixed second row of every monthly sheet. Column order
// is part of the export contract.
var exportHeader = []string{"S.no", "Product", "Customer", "Quantity", "Date", "Total", "Pending"}

// exportColWidths are cosmetic hints per column A-G.
var exportColWidths = []float64{6, 32, 22, 26, 12, 12, 12}

// Grid is the in-memory sheet handed to the spreadsheet writer: a title
// merged across the full width, a fixed header row, and one row per bill.
type Grid struct {
	SheetName string
	Title     string
	Header    []string
	Rows      []BillRow
	ColWidths []float64
}

// BillRow projects one bill into the fixed column layout. Total and Pending
// stay numeric; the writer must emit them as numbers, not strings.
type BillRow struct {
	Index    int
	Products string
	Customer string
	Quantity string
	Date     string
	Total    decimal.Decimal
	Pending  decimal.Decimal
}

// Writer is the spreadsheet collaborator. Styling and width hints inside the
// grid are best effort; only a failed file write is an error.
type Writer interface {
	Write(filename string, grid Grid) error
}

type BillLister interface {
	ListBills(ctx context.Context) ([]billDomain.Bill, error)
}

type ExportService interface {
	// ExportMonth writes the workbook for the given month and returns its
	// logical filename.
	ExportMonth(ctx context.Context, month time.Month, year int) (string, error)
}

type exportServiceImpl struct {
	bills  BillLister
	writer Writer
}

func NewExportService(bills BillLister, writer Writer) ExportService {
	return &exportServiceImpl{bills: bills, writer: writer}
}

func (s *exportServiceImpl) ExportMonth(ctx context.Context, month time.Month, year int) (string, error) {
	if month < time.January || month > time.December {
		return "", fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	if year < 1 {
		return "", fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}

	bills, err := s.bills.ListBills(ctx)
	if err != nil {
		return "", err
	}

	prefix := fmt.Sprintf("%04d-%02d", year, month)
	var matched []billDomain.Bill
	for _, b := range bills {
		if strings.HasPrefix(b.Date, prefix) {
			matched = append(matched, b)
		}
	}
	if len(matched) == 0 {
		return "", fmt.Errorf("%w: %s %d", ErrNoData, month, year)
	}

	title := fmt.Sprintf("(%s / %d) - %s", month, year, businessName)
	grid := Grid{
		SheetName: month.String(),
		Title:     title,
		Header:    exportHeader,
		Rows:      make([]BillRow, 0, len(matched)),
		ColWidths: exportColWidths,
	}
	for i, b := range matched {
		grid.Rows = append(grid.Rows, BillRow{
			Index:    i + 1,
			Products: joinProductNames(b.Items),
			Customer: b.Customer,
			Quantity: joinQuantities(b.Items),
			Date:     b.Date,
			Total:    b.Total,
			Pending:  b.Pending,
		})
	}

	filename := title + ".xlsx"
	if err := s.writer.Write(filename, grid); err != nil {
		logger.Error("ExportMonth: writer failed for "+filename, err)
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	logger.Info("Exported %d bills to %s", len(matched), filename)
	return filename, nil
}

// joinProductNames renders the Product cell: names only, no units or
// quantities.
func joinProductNames(items []billDomain.BillLineItem) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return strings.Join(names, itemSeparator)
}

// joinQuantities renders the Quantity cell as "<quantity> <unit>" per item.
func joinQuantities(items []billDomain.BillLineItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s %s", it.Quantity, it.Unit)
	}
	return strings.Join(parts, itemSeparator)
}
