package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService maintains the payment sub-ledger of an invoice and its
// mirrored Transaction records. The state machine is
// unpaid → partial → paid, with the reverse direction reachable only by
// removing entries: payments are editable history, and every transition
// is recomputed from the full entry list rather than toggled.
type PaymentService interface {
	// RecordPayment appends a payment entry, creates the mirrored
	// Transaction, links the two, and recomputes the invoice's payment
	// state. Rejects non-positive amounts and overpayment.
	RecordPayment(ctx context.Context, invoiceID string, in RecordPaymentInput) (*Invoice, error)
	// RemovePayment is the exact compensating inverse of RecordPayment.
	RemovePayment(ctx context.Context, invoiceID, paymentID string) (*Invoice, error)
}

type RecordPaymentInput struct {
	Amount    decimal.Decimal
	Method    PaymentMethod
	Date      time.Time // zero value means now
	Reference string
	Notes     string
}

type paymentService struct {
	store      Store
	reconciler balanceReconciler
}

func NewPaymentService(store Store) PaymentService {
	return &paymentService{store: store, reconciler: balanceReconciler{store: store}}
}

func (s *paymentService) RecordPayment(ctx context.Context, invoiceID string, in RecordPaymentInput) (*Invoice, error) {
	inv, err := s.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundf("invoice %s", invoiceID)
		}
		return nil, fmt.Errorf("fetch invoice: %w", err)
	}

	// Derive the current balance from the entries themselves before
	// validating against it.
	inv.RecomputePayments()

	if !in.Amount.IsPositive() {
		return nil, validationf("payment amount must be greater than 0")
	}
	if in.Amount.GreaterThan(inv.BalanceDue) {
		return nil, validationf("payment amount (%s) cannot exceed balance due (%s)",
			in.Amount.String(), inv.BalanceDue.String())
	}

	method := in.Method
	if method == "" {
		method = PaymentMethodCash
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	txnType := TransactionPaymentReceived
	if inv.Type == InvoiceTypePurchase {
		txnType = TransactionPaymentMade
	}
	description := fmt.Sprintf("Payment for invoice %s", inv.InvoiceNumber)
	if in.Notes != "" {
		description += ": " + in.Notes
	}

	now := time.Now()
	txn := &Transaction{
		ID:             uuid.NewString(),
		Type:           txnType,
		Reference:      ReferenceInvoice,
		ReferenceID:    inv.ID,
		ReferenceModel: "Invoice",
		CustomerID:     inv.CustomerID,
		Date:           date,
		Amount:         in.Amount,
		PaymentMethod:  method,
		Description:    description,
		Category:       DefaultCategory(txnType),
		Status:         TransactionCompleted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.PutTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("save payment transaction: %w", err)
	}

	inv.Payments = append(inv.Payments, PaymentEntry{
		ID:            uuid.NewString(),
		Amount:        in.Amount,
		Method:        method,
		Date:          date,
		Reference:     in.Reference,
		Notes:         in.Notes,
		TransactionID: txn.ID,
	})
	inv.RecomputePayments()
	inv.UpdatedAt = now

	if err := s.reconciler.PaymentRecorded(ctx, inv.CustomerID, in.Amount); err != nil {
		return nil, err
	}

	if err := s.store.PutInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("save invoice: %w", err)
	}
	return inv, nil
}

func (s *paymentService) RemovePayment(ctx context.Context, invoiceID, paymentID string) (*Invoice, error) {
	inv, err := s.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundf("invoice %s", invoiceID)
		}
		return nil, fmt.Errorf("fetch invoice: %w", err)
	}

	idx := inv.FindPayment(paymentID)
	if idx < 0 {
		return nil, notFoundf("payment %s on invoice %s", paymentID, invoiceID)
	}
	payment := inv.Payments[idx]

	if payment.TransactionID != "" {
		if err := s.store.DeleteTransaction(ctx, payment.TransactionID); err != nil && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("delete payment transaction %s: %w", payment.TransactionID, err)
		}
	}

	if err := s.reconciler.PaymentRemoved(ctx, inv.CustomerID, payment.Amount); err != nil {
		return nil, err
	}

	inv.Payments = append(inv.Payments[:idx], inv.Payments[idx+1:]...)
	inv.RecomputePayments()
	inv.UpdatedAt = time.Now()

	if err := s.store.PutInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("save invoice: %w", err)
	}
	return inv, nil
}
