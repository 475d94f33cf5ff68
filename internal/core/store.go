package core

import (
	"context"
	"time"
)

type ItemFilter struct {
	Category string
	Status   string
	Search   string // matches name or HSN code, case-insensitive substring
}

type CustomerFilter struct {
	Status string
	Search string // matches name, GSTIN or phone
}

type InvoiceFilter struct {
	Type          InvoiceType
	PaymentStatus PaymentStatus
	CustomerID    string
	StartDate     *time.Time
	EndDate       *time.Time
	Search        string // matches invoice number
}

type TransactionFilter struct {
	Type       TransactionType
	Category   TransactionCategory
	Status     TransactionStatus
	CustomerID string
	StartDate  *time.Time
	EndDate    *time.Time
}

// Store is the persistence boundary the engine consumes. Each call is an
// independent commit: no transaction spans two Store calls, which is why
// every multi-record operation in this package is an ordered sequence of
// forward steps with explicit compensating inverses.
//
// Put semantics are optimistic full-record saves: a record with Version 0
// is inserted at Version 1; otherwise the write succeeds only if the
// stored version still matches, bumping it by one, and fails with
// ErrConflict when it does not. Get and Delete fail with ErrNotFound for
// absent IDs.
type Store interface {
	GetItem(ctx context.Context, id string) (*Item, error)
	PutItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, f ItemFilter) ([]*Item, error)

	GetCustomer(ctx context.Context, id string) (*Customer, error)
	PutCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id string) error
	ListCustomers(ctx context.Context, f CustomerFilter) ([]*Customer, error)

	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	PutInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context, f InvoiceFilter) ([]*Invoice, error)

	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	PutTransaction(ctx context.Context, t *Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, f TransactionFilter) ([]*Transaction, error)

	// NextInvoiceSequence atomically increments and returns the invoice
	// counter for the given document type and two-digit year. Implemented
	// by the persistence layer so concurrent creators can never observe
	// the same value.
	NextInvoiceSequence(ctx context.Context, t InvoiceType, year int) (int64, error)
}
