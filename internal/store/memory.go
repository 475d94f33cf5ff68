package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/4ugusta/chaibooks-backend/internal/core"
)

// Memory is a mutex-guarded in-process implementation of core.Store. It
// honors the same optimistic versioning contract as the Postgres store
// and hands out deep copies, so service code cannot tell the two apart.
// Used by the demo binary and by unit tests.
type Memory struct {
	mu           sync.Mutex
	items        map[string]*core.Item
	customers    map[string]*core.Customer
	invoices     map[string]*core.Invoice
	transactions map[string]*core.Transaction
	sequences    map[string]int64
}

func NewMemory() *Memory {
	return &Memory{
		items:        make(map[string]*core.Item),
		customers:    make(map[string]*core.Customer),
		invoices:     make(map[string]*core.Invoice),
		transactions: make(map[string]*core.Transaction),
		sequences:    make(map[string]int64),
	}
}

func cloneItem(in *core.Item) *core.Item {
	out := *in
	return &out
}

func cloneCustomer(in *core.Customer) *core.Customer {
	out := *in
	return &out
}

func cloneInvoice(in *core.Invoice) *core.Invoice {
	out := *in
	out.Items = append([]core.LineItem(nil), in.Items...)
	out.Payments = append([]core.PaymentEntry(nil), in.Payments...)
	if in.DueDate != nil {
		due := *in.DueDate
		out.DueDate = &due
	}
	return &out
}

func cloneTransaction(in *core.Transaction) *core.Transaction {
	out := *in
	return &out
}

// checkVersion enforces the optimistic save contract against the stored
// version and returns the version the new record should carry.
func checkVersion(stored int64, exists bool, incoming int64) (int64, error) {
	if incoming == 0 {
		if exists {
			return 0, core.ErrConflict
		}
		return 1, nil
	}
	if !exists {
		return 0, core.ErrNotFound
	}
	if stored != incoming {
		return 0, core.ErrConflict
	}
	return incoming + 1, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func inPeriod(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

func (m *Memory) GetItem(_ context.Context, id string) (*core.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return cloneItem(item), nil
}

func (m *Memory) PutItem(_ context.Context, item *core.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.items[item.ID]
	var storedVersion int64
	if exists {
		storedVersion = stored.Version
	}
	next, err := checkVersion(storedVersion, exists, item.Version)
	if err != nil {
		return err
	}
	item.Version = next
	m.items[item.ID] = cloneItem(item)
	return nil
}

func (m *Memory) DeleteItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *Memory) ListItems(_ context.Context, f core.ItemFilter) ([]*core.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*core.Item
	for _, item := range m.items {
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		if f.Search != "" && !containsFold(item.Name, f.Search) && !containsFold(item.HSNCode, f.Search) {
			continue
		}
		out = append(out, cloneItem(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetCustomer(_ context.Context, id string) (*core.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return cloneCustomer(c), nil
}

func (m *Memory) PutCustomer(_ context.Context, c *core.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.customers[c.ID]
	var storedVersion int64
	if exists {
		storedVersion = stored.Version
	}
	next, err := checkVersion(storedVersion, exists, c.Version)
	if err != nil {
		return err
	}
	c.Version = next
	m.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (m *Memory) DeleteCustomer(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m *Memory) ListCustomers(_ context.Context, f core.CustomerFilter) ([]*core.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*core.Customer
	for _, c := range m.customers {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Search != "" &&
			!containsFold(c.Name, f.Search) &&
			!containsFold(c.GSTIN, f.Search) &&
			!containsFold(c.Contact.Phone, f.Search) {
			continue
		}
		out = append(out, cloneCustomer(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetInvoice(_ context.Context, id string) (*core.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return cloneInvoice(inv), nil
}

func (m *Memory) PutInvoice(_ context.Context, inv *core.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.invoices[inv.ID]
	var storedVersion int64
	if exists {
		storedVersion = stored.Version
	}
	next, err := checkVersion(storedVersion, exists, inv.Version)
	if err != nil {
		return err
	}
	inv.Version = next
	m.invoices[inv.ID] = cloneInvoice(inv)
	return nil
}

func (m *Memory) DeleteInvoice(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.invoices[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.invoices, id)
	return nil
}

func (m *Memory) ListInvoices(_ context.Context, f core.InvoiceFilter) ([]*core.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*core.Invoice
	for _, inv := range m.invoices {
		if f.Type != "" && inv.Type != f.Type {
			continue
		}
		if f.PaymentStatus != "" && inv.PaymentStatus != f.PaymentStatus {
			continue
		}
		if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
			continue
		}
		if !inPeriod(inv.InvoiceDate, f.StartDate, f.EndDate) {
			continue
		}
		if f.Search != "" && !containsFold(inv.InvoiceNumber, f.Search) {
			continue
		}
		out = append(out, cloneInvoice(inv))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].InvoiceDate.Equal(out[j].InvoiceDate) {
			return out[i].InvoiceDate.After(out[j].InvoiceDate)
		}
		return out[i].InvoiceNumber > out[j].InvoiceNumber
	})
	return out, nil
}

func (m *Memory) GetTransaction(_ context.Context, id string) (*core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return cloneTransaction(t), nil
}

func (m *Memory) PutTransaction(_ context.Context, t *core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.transactions[t.ID]
	var storedVersion int64
	if exists {
		storedVersion = stored.Version
	}
	next, err := checkVersion(storedVersion, exists, t.Version)
	if err != nil {
		return err
	}
	t.Version = next
	m.transactions[t.ID] = cloneTransaction(t)
	return nil
}

func (m *Memory) DeleteTransaction(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *Memory) ListTransactions(_ context.Context, f core.TransactionFilter) ([]*core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*core.Transaction
	for _, t := range m.transactions {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.CustomerID != "" && t.CustomerID != f.CustomerID {
			continue
		}
		if !inPeriod(t.Date, f.StartDate, f.EndDate) {
			continue
		}
		out = append(out, cloneTransaction(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) NextInvoiceSequence(_ context.Context, t core.InvoiceType, year int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := fmt.Sprintf("%s:%02d", t, year%100)
	m.sequences[key]++
	return m.sequences[key], nil
}
