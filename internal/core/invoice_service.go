package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceService owns the invoice lifecycle: creation with processed line
// snapshots and computed totals in one step, and whole-document deletion
// with stock and balance reversal. There is no partial update of an
// issued invoice; only its payment sub-ledger changes (PaymentService).
type InvoiceService interface {
	CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*Invoice, error)
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	ListInvoices(ctx context.Context, f InvoiceFilter) ([]*Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
}

type CreateLineInput struct {
	ItemID   string
	Quantity decimal.Decimal
	Weight   decimal.Decimal
	Bags     decimal.Decimal
	Rate     decimal.Decimal
}

type CreateInvoiceInput struct {
	Type               InvoiceType
	CustomerID         string
	InvoiceDate        time.Time // zero value means now
	DueDate            *time.Time
	InterState         bool
	Lines              []CreateLineInput
	Discount           decimal.Decimal
	Notes              string
	TermsAndConditions string
}

type invoiceService struct {
	store      Store
	reconciler balanceReconciler
}

func NewInvoiceService(store Store) InvoiceService {
	return &invoiceService{store: store, reconciler: balanceReconciler{store: store}}
}

// FormatInvoiceNumber renders the human-readable document number:
// type prefix, two-digit year, five-digit zero-padded sequence. The
// layout is a compatibility contract with existing records.
func FormatInvoiceNumber(t InvoiceType, year int, seq int64) string {
	prefix := "INV"
	if t == InvoiceTypePurchase {
		prefix = "PUR"
	}
	return fmt.Sprintf("%s%02d%05d", prefix, year%100, seq)
}

// CreateInvoice runs the forward sequence: validate everything, snapshot
// and tax-split each line, aggregate totals, consume stock per line,
// assign the sequence number, persist the invoice, then reconcile the
// customer balance. Steps are individually persisted; ordering keeps the
// most recoverable state behind on partial failure (an invoice that
// exists without its balance delta beats a balance delta without its
// invoice).
func (s *invoiceService) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*Invoice, error) {
	if in.Type != InvoiceTypeSale && in.Type != InvoiceTypePurchase {
		return nil, validationf("invoice type must be %q or %q", InvoiceTypeSale, InvoiceTypePurchase)
	}
	if in.CustomerID == "" {
		return nil, validationf("customer is required")
	}
	if in.Discount.IsNegative() {
		return nil, validationf("discount cannot be negative")
	}
	for i, l := range in.Lines {
		if l.Quantity.IsNegative() {
			return nil, validationf("line %d: quantity cannot be negative", i+1)
		}
		if l.Rate.IsNegative() {
			return nil, validationf("line %d: rate cannot be negative", i+1)
		}
	}

	if _, err := s.store.GetCustomer(ctx, in.CustomerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundf("customer %s", in.CustomerID)
		}
		return nil, fmt.Errorf("fetch customer: %w", err)
	}

	// Resolve all items before the first write so a bad reference leaves
	// no partial state behind.
	items := make([]*Item, len(in.Lines))
	for i, l := range in.Lines {
		item, err := s.store.GetItem(ctx, l.ItemID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, notFoundf("item %s", l.ItemID)
			}
			return nil, fmt.Errorf("fetch item %s: %w", l.ItemID, err)
		}
		items[i] = item
	}

	lines := make([]LineItem, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = buildLine(items[i], l, in.InterState)
	}

	totals := CalculateInvoiceTotals(lines, in.Discount)

	// Consume stock line by line. Each item save is its own commit.
	for i, item := range items {
		ApplyStock(item, lines[i], in.Type)
		if in.Type == InvoiceTypeSale {
			if err := s.store.PutItem(ctx, item); err != nil {
				return nil, fmt.Errorf("update stock for item %s: %w", item.ID, err)
			}
		}
	}

	invoiceDate := in.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}

	seq, err := s.store.NextInvoiceSequence(ctx, in.Type, invoiceDate.Year())
	if err != nil {
		return nil, fmt.Errorf("next invoice sequence: %w", err)
	}

	now := time.Now()
	inv := &Invoice{
		ID:                 uuid.NewString(),
		InvoiceNumber:      FormatInvoiceNumber(in.Type, invoiceDate.Year(), seq),
		Type:               in.Type,
		CustomerID:         in.CustomerID,
		InvoiceDate:        invoiceDate,
		DueDate:            in.DueDate,
		InterState:         in.InterState,
		Items:              lines,
		Subtotal:           totals.Subtotal,
		TotalGST:           totals.TotalGST,
		Discount:           totals.Discount,
		RoundOff:           totals.RoundOff,
		GrandTotal:         totals.GrandTotal,
		AmountInWords:      AmountInWords(totals.GrandTotal),
		Payments:           []PaymentEntry{},
		Notes:              in.Notes,
		TermsAndConditions: in.TermsAndConditions,
		Status:             InvoiceStatusDraft,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	inv.RecomputePayments()

	if err := s.store.PutInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("save invoice: %w", err)
	}

	if err := s.reconciler.InvoiceIssued(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// buildLine captures the item state at issuance and computes the line's
// tax split.
func buildLine(item *Item, l CreateLineInput, interState bool) LineItem {
	amount := l.Quantity.Mul(l.Rate)
	split := SplitTax(amount, item.GST.Rate, interState)

	gst := LineGST{
		Rate:           item.GST.Rate,
		CGSTAmount:     split.CGST,
		SGSTAmount:     split.SGST,
		IGSTAmount:     split.IGST,
		TotalGSTAmount: split.Total,
	}
	if interState {
		gst.IGST = item.GST.Rate
	} else {
		half := item.GST.Rate.Div(decimal.NewFromInt(2))
		gst.CGST = half
		gst.SGST = half
	}

	return LineItem{
		ItemID:   item.ID,
		ItemName: item.Name,
		HSNCode:  item.HSNCode,
		Quantity: l.Quantity,
		Weight:   l.Weight,
		Bags:     l.Bags,
		Unit:     item.Unit,
		Rate:     l.Rate,
		Amount:   amount,
		GST:      gst,
		Total:    split.GrandTotal,
	}
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	inv, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundf("invoice %s", id)
		}
		return nil, fmt.Errorf("fetch invoice: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, f InvoiceFilter) ([]*Invoice, error) {
	return s.store.ListInvoices(ctx, f)
}

// DeleteInvoice runs the compensating sequence for CreateInvoice plus
// any recorded payments: restore stock from the line snapshots, pull the
// unpaid remainder out of the customer balance, delete the mirrored
// payment transactions, and delete the invoice document last. A failure
// after the reversals but before the final delete leaves an invoice that
// is already refunded but still visible for manual cleanup — preferable
// to a vanished invoice with live side effects.
func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	inv, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundf("invoice %s", id)
		}
		return fmt.Errorf("fetch invoice: %w", err)
	}

	if inv.Type == InvoiceTypeSale {
		for _, line := range inv.Items {
			item, err := s.store.GetItem(ctx, line.ItemID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					// Item deleted since issuance; nothing to restore.
					continue
				}
				return fmt.Errorf("fetch item %s: %w", line.ItemID, err)
			}
			ReverseStock(item, line, inv.Type)
			if err := s.store.PutItem(ctx, item); err != nil {
				return fmt.Errorf("restore stock for item %s: %w", item.ID, err)
			}
		}
	}

	if err := s.reconciler.InvoiceDeleted(ctx, inv); err != nil {
		return err
	}

	for _, p := range inv.Payments {
		if p.TransactionID == "" {
			continue
		}
		if err := s.store.DeleteTransaction(ctx, p.TransactionID); err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("delete payment transaction %s: %w", p.TransactionID, err)
		}
	}

	if err := s.store.DeleteInvoice(ctx, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}
