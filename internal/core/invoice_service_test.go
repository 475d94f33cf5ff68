package core_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ugusta/chaibooks-backend/internal/core"
	"github.com/4ugusta/chaibooks-backend/internal/store"
)

// newFixture seeds an in-memory store with one customer and one 18% item
// holding 100 units of stock.
func newFixture(t *testing.T) (core.Store, *core.Customer, *core.Item) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()

	customer := &core.Customer{
		ID:     "cust-1",
		Name:   "Sharma Tea Traders",
		Status: "active",
	}
	require.NoError(t, st.PutCustomer(ctx, customer))

	item := &core.Item{
		ID:      "item-1",
		Name:    "Assam CTC BP",
		HSNCode: "0902",
		Unit:    "kg",
		GST:     core.ItemGST{Rate: dec("18"), CGST: dec("9"), SGST: dec("9"), IGST: dec("18")},
		Stock:   core.Stock{Quantity: dec("100"), Weight: dec("100"), Bags: dec("4")},
		Status:  "active",
	}
	require.NoError(t, st.PutItem(ctx, item))

	return st, customer, item
}

func saleInput(customerID, itemID string) core.CreateInvoiceInput {
	return core.CreateInvoiceInput{
		Type:       core.InvoiceTypeSale,
		CustomerID: customerID,
		Lines: []core.CreateLineInput{{
			ItemID:   itemID,
			Quantity: dec("10"),
			Weight:   dec("10"),
			Bags:     dec("1"),
			Rate:     dec("100"),
		}},
	}
}

func TestCreateInvoiceSale(t *testing.T) {
	ctx := context.Background()
	st, customer, item := newFixture(t)
	svc := core.NewInvoiceService(st)

	inv, err := svc.CreateInvoice(ctx, saleInput(customer.ID, item.ID))
	require.NoError(t, err)

	wantNumber := fmt.Sprintf("INV%02d00001", time.Now().Year()%100)
	assert.Equal(t, wantNumber, inv.InvoiceNumber)
	assertDecimal(t, dec("1000"), inv.Subtotal, "subtotal")
	assertDecimal(t, dec("90"), inv.TotalGST.CGST, "cgst")
	assertDecimal(t, dec("90"), inv.TotalGST.SGST, "sgst")
	assertDecimal(t, dec("1180"), inv.GrandTotal, "grand total")
	assert.Equal(t, "One Thousand One Hundred and Eighty Rupees Only", inv.AmountInWords)
	assert.Equal(t, core.PaymentStatusUnpaid, inv.PaymentStatus)
	assertDecimal(t, dec("1180"), inv.BalanceDue, "balance due")

	// Line snapshot captures the item state at issuance.
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Assam CTC BP", inv.Items[0].ItemName)
	assert.Equal(t, "0902", inv.Items[0].HSNCode)
	assertDecimal(t, dec("18"), inv.Items[0].GST.Rate, "line rate")

	// Stock consumed.
	got, err := st.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assertDecimal(t, dec("90"), got.Stock.Quantity, "stock quantity")
	assertDecimal(t, dec("90"), got.Stock.Weight, "stock weight")
	assertDecimal(t, dec("3"), got.Stock.Bags, "stock bags")

	// Customer owes the full grand total.
	c, err := st.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assertDecimal(t, dec("1180"), c.OutstandingBalance, "outstanding balance")
}

func TestCreateInvoiceSequencePerTypeAndYear(t *testing.T) {
	ctx := context.Background()
	st, customer, item := newFixture(t)
	svc := core.NewInvoiceService(st)

	first, err := svc.CreateInvoice(ctx, saleInput(customer.ID, item.ID))
	require.NoError(t, err)
	second, err := svc.CreateInvoice(ctx, saleInput(customer.ID, item.ID))
	require.NoError(t, err)

	purchase := saleInput(customer.ID, item.ID)
	purchase.Type = core.InvoiceTypePurchase
	third, err := svc.CreateInvoice(ctx, purchase)
	require.NoError(t, err)

	yy := time.Now().Year() % 100
	assert.Equal(t, fmt.Sprintf("INV%02d00001", yy), first.InvoiceNumber)
	assert.Equal(t, fmt.Sprintf("INV%02d00002", yy), second.InvoiceNumber)
	// Purchases draw from their own counter.
	assert.Equal(t, fmt.Sprintf("PUR%02d00001", yy), third.InvoiceNumber)
}

func TestCreateInvoicePurchaseLeavesStockAndBalanceAlone(t *testing.T) {
	ctx := context.Background()
	st, customer, item := newFixture(t)
	svc := core.NewInvoiceService(st)

	in := saleInput(customer.ID, item.ID)
	in.Type = core.InvoiceTypePurchase
	_, err := svc.CreateInvoice(ctx, in)
	require.NoError(t, err)

	got, err := st.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assertDecimal(t, dec("100"), got.Stock.Quantity, "purchase must not consume stock")

	c, err := st.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assertDecimal(t, dec("0"), c.OutstandingBalance, "purchase must not move balance")
}

func TestCreateInvoiceValidation(t *testing.T) {
	ctx := context.Background()
	st, customer, item := newFixture(t)
	svc := core.NewInvoiceService(st)

	in := saleInput(customer.ID, item.ID)
	in.Type = "refund"
	_, err := svc.CreateInvoice(ctx, in)
	assert.ErrorIs(t, err, core.ErrValidation)

	in = saleInput(customer.ID, item.ID)
	in.CustomerID = ""
	_, err = svc.CreateInvoice(ctx, in)
	assert.ErrorIs(t, err, core.ErrValidation)

	in = saleInput(customer.ID, item.ID)
	in.Discount = dec("-1")
	_, err = svc.CreateInvoice(ctx, in)
	assert.ErrorIs(t, err, core.ErrValidation)

	in = saleInput(customer.ID, item.ID)
	in.Lines[0].ItemID = "ghost"
	_, err = svc.CreateInvoice(ctx, in)
	assert.ErrorIs(t, err, core.ErrNotFound)

	// A failed create leaves no partial state behind.
	got, err := st.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assertDecimal(t, dec("100"), got.Stock.Quantity, "stock untouched after rejects")
}

func TestCreateInvoiceEmptyLines(t *testing.T) {
	ctx := context.Background()
	st, customer, _ := newFixture(t)
	svc := core.NewInvoiceService(st)

	inv, err := svc.CreateInvoice(ctx, core.CreateInvoiceInput{
		Type:       core.InvoiceTypeSale,
		CustomerID: customer.ID,
	})
	require.NoError(t, err)
	assertDecimal(t, dec("0"), inv.GrandTotal, "empty invoice totals to zero")
	assert.Equal(t, core.PaymentStatusPaid, inv.PaymentStatus)
}

func TestDeleteInvoiceReversesEverything(t *testing.T) {
	ctx := context.Background()
	st, customer, item := newFixture(t)
	invoices := core.NewInvoiceService(st)
	payments := core.NewPaymentService(st)

	inv, err := invoices.CreateInvoice(ctx, saleInput(customer.ID, item.ID))
	require.NoError(t, err)

	inv, err = payments.RecordPayment(ctx, inv.ID, core.RecordPaymentInput{
		Amount: dec("500"),
		Method: core.PaymentMethodUPI,
	})
	require.NoError(t, err)
	txnID := inv.Payments[0].TransactionID
	require.NotEmpty(t, txnID)

	require.NoError(t, invoices.DeleteInvoice(ctx, inv.ID))

	_, err = st.GetInvoice(ctx, inv.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	// Mirrored transaction removed with the invoice.
	_, err = st.GetTransaction(ctx, txnID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	got, err := st.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assertDecimal(t, dec("100"), got.Stock.Quantity, "stock restored")
	assertDecimal(t, dec("4"), got.Stock.Bags, "bags restored")

	// +1180 on issue, -500 on payment, -680 unpaid remainder on delete.
	c, err := st.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assertDecimal(t, dec("0"), c.OutstandingBalance, "balance back to zero")
}

func TestDeleteInvoiceSurvivesMissingItem(t *testing.T) {
	ctx := context.Background()
	st, customer, item := newFixture(t)
	svc := core.NewInvoiceService(st)

	inv, err := svc.CreateInvoice(ctx, saleInput(customer.ID, item.ID))
	require.NoError(t, err)

	require.NoError(t, st.DeleteItem(ctx, item.ID))
	require.NoError(t, svc.DeleteInvoice(ctx, inv.ID))

	_, err = st.GetInvoice(ctx, inv.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV2400042", core.FormatInvoiceNumber(core.InvoiceTypeSale, 2024, 42))
	assert.Equal(t, "PUR2500001", core.FormatInvoiceNumber(core.InvoiceTypePurchase, 2025, 1))
}
