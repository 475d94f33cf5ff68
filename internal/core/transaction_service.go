package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService manages standalone financial activity records and
// the transaction-side half of the payment lockstep: a transaction that
// references an invoice mirrors itself as a payment entry on that
// invoice, and deleting it removes the mirrored entry again.
type TransactionService interface {
	CreateTransaction(ctx context.Context, in CreateTransactionInput) (*Transaction, error)
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	ListTransactions(ctx context.Context, f TransactionFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	// Summary aggregates total amount and count per transaction type.
	Summary(ctx context.Context, f TransactionFilter) ([]TransactionSummary, error)
}

type CreateTransactionInput struct {
	Type           TransactionType
	Reference      TransactionReference // default "direct"
	ReferenceID    string
	ReferenceModel string
	CustomerID     string
	Date           time.Time // zero value means now
	Amount         decimal.Decimal
	PaymentMethod  PaymentMethod
	PaymentDetails PaymentDetails
	Description    string
	Category       TransactionCategory // defaulted from Type when empty
	Status         TransactionStatus   // default "completed"
}

type TransactionSummary struct {
	Type        TransactionType `json:"transactionType"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
}

type transactionService struct {
	store      Store
	reconciler balanceReconciler
}

func NewTransactionService(store Store) TransactionService {
	return &transactionService{store: store, reconciler: balanceReconciler{store: store}}
}

func isPaymentKind(t TransactionType) bool {
	return t == TransactionPaymentReceived || t == TransactionPaymentMade
}

func (s *transactionService) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*Transaction, error) {
	switch in.Type {
	case TransactionSale, TransactionPurchase, TransactionPaymentReceived, TransactionPaymentMade, TransactionExpense:
	default:
		return nil, validationf("unknown transaction type %q", in.Type)
	}
	if in.Amount.IsNegative() {
		return nil, validationf("transaction amount cannot be negative")
	}
	if in.PaymentMethod == "" {
		return nil, validationf("payment method is required")
	}

	reference := in.Reference
	if reference == "" {
		reference = ReferenceDirect
	}
	category := in.Category
	if category == "" {
		category = DefaultCategory(in.Type)
	}
	status := in.Status
	if status == "" {
		status = TransactionCompleted
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	now := time.Now()
	txn := &Transaction{
		ID:             uuid.NewString(),
		Type:           in.Type,
		Reference:      reference,
		ReferenceID:    in.ReferenceID,
		ReferenceModel: in.ReferenceModel,
		CustomerID:     in.CustomerID,
		Date:           date,
		Amount:         in.Amount,
		PaymentMethod:  in.PaymentMethod,
		PaymentDetails: in.PaymentDetails,
		Description:    in.Description,
		Category:       category,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.PutTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("save transaction: %w", err)
	}

	// Mirror invoice-referenced transactions as payment entries so the
	// two records stay a single logical ledger event.
	if txn.Reference == ReferenceInvoice && txn.ReferenceID != "" {
		inv, err := s.store.GetInvoice(ctx, txn.ReferenceID)
		switch {
		case err == nil:
			inv.Payments = append(inv.Payments, PaymentEntry{
				ID:            uuid.NewString(),
				Amount:        txn.Amount,
				Method:        txn.PaymentMethod,
				Date:          txn.Date,
				Notes:         txn.Description,
				TransactionID: txn.ID,
			})
			inv.RecomputePayments()
			inv.UpdatedAt = now
			if err := s.store.PutInvoice(ctx, inv); err != nil {
				return nil, fmt.Errorf("mirror payment onto invoice %s: %w", inv.ID, err)
			}
		case errors.Is(err, ErrNotFound):
			// Referenced invoice gone; the transaction stands alone.
		default:
			return nil, fmt.Errorf("fetch referenced invoice: %w", err)
		}
	}

	if isPaymentKind(txn.Type) {
		if err := s.reconciler.PaymentRecorded(ctx, txn.CustomerID, txn.Amount); err != nil {
			return nil, err
		}
	}

	return txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	txn, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundf("transaction %s", id)
		}
		return nil, fmt.Errorf("fetch transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, f TransactionFilter) ([]*Transaction, error) {
	return s.store.ListTransactions(ctx, f)
}

// DeleteTransaction is the compensating inverse of CreateTransaction:
// remove the mirrored payment entry (if any), give the payment amount
// back to the customer balance, then delete the record itself last.
func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	txn, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundf("transaction %s", id)
		}
		return fmt.Errorf("fetch transaction: %w", err)
	}

	if txn.Reference == ReferenceInvoice && txn.ReferenceID != "" {
		inv, err := s.store.GetInvoice(ctx, txn.ReferenceID)
		switch {
		case err == nil:
			if idx := inv.FindPaymentByTransaction(txn.ID); idx >= 0 {
				inv.Payments = append(inv.Payments[:idx], inv.Payments[idx+1:]...)
				inv.RecomputePayments()
				inv.UpdatedAt = time.Now()
				if err := s.store.PutInvoice(ctx, inv); err != nil {
					return fmt.Errorf("unmirror payment from invoice %s: %w", inv.ID, err)
				}
			}
		case errors.Is(err, ErrNotFound):
		default:
			return fmt.Errorf("fetch referenced invoice: %w", err)
		}
	}

	if isPaymentKind(txn.Type) {
		if err := s.reconciler.PaymentRemoved(ctx, txn.CustomerID, txn.Amount); err != nil {
			return err
		}
	}

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *transactionService) Summary(ctx context.Context, f TransactionFilter) ([]TransactionSummary, error) {
	txns, err := s.store.ListTransactions(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	order := []TransactionType{
		TransactionSale, TransactionPurchase,
		TransactionPaymentReceived, TransactionPaymentMade, TransactionExpense,
	}
	byType := make(map[TransactionType]*TransactionSummary)
	for _, txn := range txns {
		row, ok := byType[txn.Type]
		if !ok {
			row = &TransactionSummary{Type: txn.Type}
			byType[txn.Type] = row
		}
		row.TotalAmount = row.TotalAmount.Add(txn.Amount)
		row.Count++
	}

	var out []TransactionSummary
	for _, t := range order {
		if row, ok := byType[t]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}
