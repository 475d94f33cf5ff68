package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// balanceReconciler keeps Customer.OutstandingBalance in step with the
// net effect of invoice and payment activity. Every step is a signed
// delta on the stored balance, not a recomputation from a full scan —
// cheap, but it can drift if a sequence fails partway; the services order
// their steps to keep that window small.
type balanceReconciler struct {
	store Store
}

// adjust applies a signed delta to the customer's outstanding balance.
// A missing customer is not an error here: the referenced customer may
// have been deleted after the invoice was issued, and reconciliation is
// best-effort by design.
func (r balanceReconciler) adjust(ctx context.Context, customerID string, delta decimal.Decimal) error {
	if customerID == "" || delta.IsZero() {
		return nil
	}
	customer, err := r.store.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("reconcile balance: %w", err)
	}
	customer.OutstandingBalance = customer.OutstandingBalance.Add(delta)
	if err := r.store.PutCustomer(ctx, customer); err != nil {
		return fmt.Errorf("reconcile balance: %w", err)
	}
	return nil
}

// InvoiceIssued adds the full grand total for a new sale invoice,
// regardless of payment status at creation: payments recorded afterwards
// are netted out by their own reconciliation step, never double-counted
// here. Purchase invoices do not move this balance (payables are a
// separate concept).
func (r balanceReconciler) InvoiceIssued(ctx context.Context, inv *Invoice) error {
	if inv.Type != InvoiceTypeSale {
		return nil
	}
	return r.adjust(ctx, inv.CustomerID, inv.GrandTotal)
}

// InvoiceDeleted subtracts only the unpaid remainder: amounts already
// paid were netted out when each payment was recorded.
func (r balanceReconciler) InvoiceDeleted(ctx context.Context, inv *Invoice) error {
	if inv.Type != InvoiceTypeSale {
		return nil
	}
	return r.adjust(ctx, inv.CustomerID, inv.BalanceDue.Neg())
}

// PaymentRecorded subtracts the payment amount. The same sign policy
// applies on every path and for both invoice directions, so recording
// and removing a payment are exact inverses.
func (r balanceReconciler) PaymentRecorded(ctx context.Context, customerID string, amount decimal.Decimal) error {
	return r.adjust(ctx, customerID, amount.Neg())
}

// PaymentRemoved adds the payment amount back.
func (r balanceReconciler) PaymentRemoved(ctx context.Context, customerID string, amount decimal.Decimal) error {
	return r.adjust(ctx, customerID, amount)
}
