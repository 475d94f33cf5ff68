package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/4ugusta/chaibooks-backend/internal/app"
	"github.com/4ugusta/chaibooks-backend/internal/store"
)

// Walks the full invoice lifecycle against the in-memory store: create
// masters, issue a sale invoice, settle it partially, undo the payment,
// then delete the invoice and show that stock and balances return to
// their starting state.
func main() {
	ctx := context.Background()
	svc := app.NewAppService(store.NewMemory())

	item, err := svc.CreateItem(ctx, app.SaveItemRequest{
		Name:         "Assam CTC BP",
		Category:     "tea",
		HSNCode:      "0902",
		Unit:         "kg",
		SellingPrice: decimal.NewFromInt(250),
		GSTRate:      decimal.NewFromInt(5),
		Quantity:     decimal.NewFromInt(500),
		Weight:       decimal.NewFromInt(500),
		Bags:         decimal.NewFromInt(20),
	})
	if err != nil {
		log.Fatalf("create item: %v", err)
	}

	customer, err := svc.CreateCustomer(ctx, app.SaveCustomerRequest{
		Name:  "Sharma Tea Traders",
		GSTIN: "22AAAAA0000A1Z5",
		Phone: "9800000000",
	})
	if err != nil {
		log.Fatalf("create customer: %v", err)
	}

	inv, err := svc.CreateInvoice(ctx, app.CreateInvoiceRequest{
		Type:       "sale",
		CustomerID: customer.ID,
		Lines: []app.InvoiceLineRequest{{
			ItemID:   item.ID,
			Quantity: decimal.NewFromInt(100),
			Weight:   decimal.NewFromInt(100),
			Bags:     decimal.NewFromInt(4),
			Rate:     decimal.NewFromInt(250),
		}},
	})
	if err != nil {
		log.Fatalf("create invoice: %v", err)
	}
	fmt.Printf("issued %s: subtotal %s, gst %s, grand total %s\n",
		inv.InvoiceNumber, inv.Subtotal, inv.TotalGST.Total, inv.GrandTotal)
	fmt.Printf("  in words: %s\n", inv.AmountInWords)

	item, _ = svc.GetItem(ctx, item.ID)
	fmt.Printf("stock after sale: %s kg\n", item.Stock.Quantity)

	inv, err = svc.RecordPayment(ctx, inv.ID, app.RecordPaymentRequest{
		Amount: decimal.NewFromInt(10000),
		Method: "upi",
	})
	if err != nil {
		log.Fatalf("record payment: %v", err)
	}
	fmt.Printf("after payment: paid %s, due %s, status %s\n",
		inv.AmountPaid, inv.BalanceDue, inv.PaymentStatus)

	inv, err = svc.RemovePayment(ctx, inv.ID, inv.Payments[0].ID)
	if err != nil {
		log.Fatalf("remove payment: %v", err)
	}
	fmt.Printf("after removal: paid %s, due %s, status %s\n",
		inv.AmountPaid, inv.BalanceDue, inv.PaymentStatus)

	if err := svc.DeleteInvoice(ctx, inv.ID); err != nil {
		log.Fatalf("delete invoice: %v", err)
	}
	item, _ = svc.GetItem(ctx, item.ID)
	customer, _ = svc.GetCustomer(ctx, customer.ID)
	fmt.Printf("after delete: stock %s kg, customer balance %s\n",
		item.Stock.Quantity, customer.OutstandingBalance)
}
