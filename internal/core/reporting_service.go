package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ReportingService derives read-only summaries from stored records. All
// reports recompute from the invoices themselves so they stay honest
// even if an incremental balance has drifted.
type ReportingService interface {
	GSTSummary(ctx context.Context, period ReportPeriod) (*GSTSummaryReport, error)
	SalesSummary(ctx context.Context, period ReportPeriod) (*TradeSummaryReport, error)
	PurchaseSummary(ctx context.Context, period ReportPeriod) (*TradeSummaryReport, error)
	StockReport(ctx context.Context) (*StockReport, error)
	OutstandingReport(ctx context.Context) (*OutstandingReport, error)
}

// ReportPeriod bounds a report by invoice date; nil ends are open.
type ReportPeriod struct {
	Start *time.Time
	End   *time.Time
}

// GSTRateSummary is one row of the GST summary, keyed by bracket rate.
type GSTRateSummary struct {
	Rate          decimal.Decimal `json:"rate"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	TotalTax      decimal.Decimal `json:"totalTax"`
}

// GSTSummaryReport splits tax into output (collected on sales) and input
// (paid on purchases); NetLiability is output minus input.
type GSTSummaryReport struct {
	OutputTax    []GSTRateSummary `json:"outputTax"`
	InputTax     []GSTRateSummary `json:"inputTax"`
	TotalOutput  decimal.Decimal  `json:"totalOutput"`
	TotalInput   decimal.Decimal  `json:"totalInput"`
	NetLiability decimal.Decimal  `json:"netLiability"`
}

type TradeSummaryReport struct {
	InvoiceCount int             `json:"invoiceCount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TotalGST     decimal.Decimal `json:"totalGst"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	BalanceDue   decimal.Decimal `json:"balanceDue"`
}

type StockReportLine struct {
	ItemID   string          `json:"item"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Weight   decimal.Decimal `json:"weight"`
	Bags     decimal.Decimal `json:"bags"`
	LowStock bool            `json:"lowStock"`
}

type StockReport struct {
	Lines         []StockReportLine `json:"lines"`
	LowStockCount int               `json:"lowStockCount"`
}

type OutstandingEntry struct {
	CustomerID string          `json:"customer"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
}

type OutstandingReport struct {
	Entries []OutstandingEntry `json:"entries"`
	Total   decimal.Decimal    `json:"total"`
}

type reportingService struct {
	store Store
}

func NewReportingService(store Store) ReportingService {
	return &reportingService{store: store}
}

func (s *reportingService) invoicesIn(ctx context.Context, t InvoiceType, period ReportPeriod) ([]*Invoice, error) {
	invoices, err := s.store.ListInvoices(ctx, InvoiceFilter{
		Type:      t,
		StartDate: period.Start,
		EndDate:   period.End,
	})
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func summarizeRates(invoices []*Invoice) ([]GSTRateSummary, decimal.Decimal) {
	byRate := make(map[string]*GSTRateSummary)
	for _, inv := range invoices {
		for _, line := range inv.Items {
			key := line.GST.Rate.String()
			row, ok := byRate[key]
			if !ok {
				row = &GSTRateSummary{Rate: line.GST.Rate}
				byRate[key] = row
			}
			row.TaxableAmount = row.TaxableAmount.Add(line.Amount)
			row.CGST = row.CGST.Add(line.GST.CGSTAmount)
			row.SGST = row.SGST.Add(line.GST.SGSTAmount)
			row.IGST = row.IGST.Add(line.GST.IGSTAmount)
			row.TotalTax = row.TotalTax.Add(line.GST.TotalGSTAmount)
		}
	}

	rows := make([]GSTRateSummary, 0, len(byRate))
	total := decimal.Zero
	for _, row := range byRate {
		rows = append(rows, *row)
		total = total.Add(row.TotalTax)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Rate.LessThan(rows[j].Rate)
	})
	return rows, total
}

func (s *reportingService) GSTSummary(ctx context.Context, period ReportPeriod) (*GSTSummaryReport, error) {
	sales, err := s.invoicesIn(ctx, InvoiceTypeSale, period)
	if err != nil {
		return nil, err
	}
	purchases, err := s.invoicesIn(ctx, InvoiceTypePurchase, period)
	if err != nil {
		return nil, err
	}

	output, totalOutput := summarizeRates(sales)
	input, totalInput := summarizeRates(purchases)

	return &GSTSummaryReport{
		OutputTax:    output,
		InputTax:     input,
		TotalOutput:  totalOutput,
		TotalInput:   totalInput,
		NetLiability: totalOutput.Sub(totalInput),
	}, nil
}

func summarizeTrade(invoices []*Invoice) *TradeSummaryReport {
	report := &TradeSummaryReport{InvoiceCount: len(invoices)}
	for _, inv := range invoices {
		report.Subtotal = report.Subtotal.Add(inv.Subtotal)
		report.TotalGST = report.TotalGST.Add(inv.TotalGST.Total)
		report.GrandTotal = report.GrandTotal.Add(inv.GrandTotal)
		report.AmountPaid = report.AmountPaid.Add(inv.AmountPaid)
		report.BalanceDue = report.BalanceDue.Add(inv.BalanceDue)
	}
	return report
}

func (s *reportingService) SalesSummary(ctx context.Context, period ReportPeriod) (*TradeSummaryReport, error) {
	invoices, err := s.invoicesIn(ctx, InvoiceTypeSale, period)
	if err != nil {
		return nil, err
	}
	return summarizeTrade(invoices), nil
}

func (s *reportingService) PurchaseSummary(ctx context.Context, period ReportPeriod) (*TradeSummaryReport, error) {
	invoices, err := s.invoicesIn(ctx, InvoiceTypePurchase, period)
	if err != nil {
		return nil, err
	}
	return summarizeTrade(invoices), nil
}

func (s *reportingService) StockReport(ctx context.Context) (*StockReport, error) {
	items, err := s.store.ListItems(ctx, ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	report := &StockReport{}
	for _, item := range items {
		low := item.Stock.MinStockLevel.IsPositive() &&
			item.Stock.Quantity.LessThanOrEqual(item.Stock.MinStockLevel)
		if low {
			report.LowStockCount++
		}
		report.Lines = append(report.Lines, StockReportLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: item.Stock.Quantity,
			Weight:   item.Stock.Weight,
			Bags:     item.Stock.Bags,
			LowStock: low,
		})
	}
	return report, nil
}

func (s *reportingService) OutstandingReport(ctx context.Context) (*OutstandingReport, error) {
	customers, err := s.store.ListCustomers(ctx, CustomerFilter{})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	report := &OutstandingReport{}
	for _, c := range customers {
		if c.OutstandingBalance.IsZero() {
			continue
		}
		report.Entries = append(report.Entries, OutstandingEntry{
			CustomerID: c.ID,
			Name:       c.Name,
			Balance:    c.OutstandingBalance,
		})
		report.Total = report.Total.Add(c.OutstandingBalance)
	}
	sort.Slice(report.Entries, func(i, j int) bool {
		return report.Entries[i].Balance.GreaterThan(report.Entries[j].Balance)
	})
	return report, nil
}
