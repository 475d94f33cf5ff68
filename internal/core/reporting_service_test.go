package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ugusta/chaibooks-backend/internal/core"
	"github.com/4ugusta/chaibooks-backend/internal/store"
)

func TestGSTSummary(t *testing.T) {
	ctx := context.Background()
	st, customer, item := newFixture(t)
	invoices := core.NewInvoiceService(st)
	reports := core.NewReportingService(st)

	_, err := invoices.CreateInvoice(ctx, saleInput(customer.ID, item.ID))
	require.NoError(t, err)

	purchase := saleInput(customer.ID, item.ID)
	purchase.Type = core.InvoiceTypePurchase
	purchase.Lines[0].Quantity = dec("5")
	_, err = invoices.CreateInvoice(ctx, purchase)
	require.NoError(t, err)

	report, err := reports.GSTSummary(ctx, core.ReportPeriod{})
	require.NoError(t, err)

	require.Len(t, report.OutputTax, 1)
	assertDecimal(t, dec("18"), report.OutputTax[0].Rate, "output rate")
	assertDecimal(t, dec("1000"), report.OutputTax[0].TaxableAmount, "output taxable")
	assertDecimal(t, dec("180"), report.TotalOutput, "output tax")

	require.Len(t, report.InputTax, 1)
	assertDecimal(t, dec("90"), report.TotalInput, "input tax")

	assertDecimal(t, dec("90"), report.NetLiability, "net liability")
}

func TestSalesSummary(t *testing.T) {
	ctx := context.Background()
	st, customer, item := newFixture(t)
	invoices := core.NewInvoiceService(st)
	payments := core.NewPaymentService(st)
	reports := core.NewReportingService(st)

	inv, err := invoices.CreateInvoice(ctx, saleInput(customer.ID, item.ID))
	require.NoError(t, err)
	_, err = payments.RecordPayment(ctx, inv.ID, core.RecordPaymentInput{Amount: dec("180")})
	require.NoError(t, err)

	report, err := reports.SalesSummary(ctx, core.ReportPeriod{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.InvoiceCount)
	assertDecimal(t, dec("1000"), report.Subtotal, "subtotal")
	assertDecimal(t, dec("1180"), report.GrandTotal, "grand total")
	assertDecimal(t, dec("180"), report.AmountPaid, "paid")
	assertDecimal(t, dec("1000"), report.BalanceDue, "due")

	purchases, err := reports.PurchaseSummary(ctx, core.ReportPeriod{})
	require.NoError(t, err)
	assert.Equal(t, 0, purchases.InvoiceCount)
}

func TestStockReportFlagsLowStock(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	reports := core.NewReportingService(st)

	require.NoError(t, st.PutItem(ctx, &core.Item{
		ID: "low", Name: "Dust Grade",
		Stock: core.Stock{Quantity: dec("5"), MinStockLevel: dec("10")},
	}))
	require.NoError(t, st.PutItem(ctx, &core.Item{
		ID: "ok", Name: "Leaf Grade",
		Stock: core.Stock{Quantity: dec("50"), MinStockLevel: dec("10")},
	}))
	require.NoError(t, st.PutItem(ctx, &core.Item{
		ID: "unset", Name: "No Threshold",
		Stock: core.Stock{Quantity: dec("0")},
	}))

	report, err := reports.StockReport(ctx)
	require.NoError(t, err)
	require.Len(t, report.Lines, 3)
	assert.Equal(t, 1, report.LowStockCount)

	for _, line := range report.Lines {
		switch line.ItemID {
		case "low":
			assert.True(t, line.LowStock)
		default:
			assert.False(t, line.LowStock, "item %s", line.ItemID)
		}
	}
}

func TestOutstandingReport(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	reports := core.NewReportingService(st)

	require.NoError(t, st.PutCustomer(ctx, &core.Customer{
		ID: "a", Name: "Big Debtor", OutstandingBalance: dec("5000"),
	}))
	require.NoError(t, st.PutCustomer(ctx, &core.Customer{
		ID: "b", Name: "Small Debtor", OutstandingBalance: dec("100"),
	}))
	require.NoError(t, st.PutCustomer(ctx, &core.Customer{
		ID: "c", Name: "Settled", OutstandingBalance: dec("0"),
	}))

	report, err := reports.OutstandingReport(ctx)
	require.NoError(t, err)

	require.Len(t, report.Entries, 2)
	assert.Equal(t, "Big Debtor", report.Entries[0].Name)
	assert.Equal(t, "Small Debtor", report.Entries[1].Name)
	assertDecimal(t, dec("5100"), report.Total, "total outstanding")
}
