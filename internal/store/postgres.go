package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/4ugusta/chaibooks-backend/internal/core"
)

// Postgres persists each record as a JSONB document plus a handful of
// plain columns for filtering. Optimistic versioning rides on a version
// column: inserts require version 0, updates match the stored version
// and bump it. Every statement is its own commit.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id       TEXT PRIMARY KEY,
	category TEXT NOT NULL DEFAULT '',
	status   TEXT NOT NULL DEFAULT '',
	name     TEXT NOT NULL DEFAULT '',
	hsn_code TEXT NOT NULL DEFAULT '',
	version  BIGINT NOT NULL,
	payload  JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
	id      TEXT PRIMARY KEY,
	status  TEXT NOT NULL DEFAULT '',
	name    TEXT NOT NULL DEFAULT '',
	gstin   TEXT NOT NULL DEFAULT '',
	phone   TEXT NOT NULL DEFAULT '',
	version BIGINT NOT NULL,
	payload JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS invoices (
	id             TEXT PRIMARY KEY,
	invoice_number TEXT NOT NULL,
	invoice_type   TEXT NOT NULL,
	payment_status TEXT NOT NULL DEFAULT '',
	customer_id    TEXT NOT NULL DEFAULT '',
	invoice_date   TIMESTAMPTZ NOT NULL,
	version        BIGINT NOT NULL,
	payload        JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invoices_customer ON invoices (customer_id);
CREATE INDEX IF NOT EXISTS idx_invoices_date ON invoices (invoice_date);

CREATE TABLE IF NOT EXISTS transactions (
	id          TEXT PRIMARY KEY,
	txn_type    TEXT NOT NULL,
	category    TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT '',
	customer_id TEXT NOT NULL DEFAULT '',
	txn_date    TIMESTAMPTZ NOT NULL,
	version     BIGINT NOT NULL,
	payload     JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions (customer_id);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (txn_date);

CREATE TABLE IF NOT EXISTS invoice_sequences (
	doc_type TEXT NOT NULL,
	year     INT NOT NULL,
	seq      BIGINT NOT NULL,
	PRIMARY KEY (doc_type, year)
);
`

// Migrate creates the schema if it does not exist yet.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func getDoc[T any](ctx context.Context, pool *pgxpool.Pool, table, id string) (*T, error) {
	var payload []byte
	err := pool.QueryRow(ctx, fmt.Sprintf(`SELECT payload FROM %s WHERE id = $1`, table), id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	var doc T
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", table, err)
	}
	return &doc, nil
}

func deleteDoc(ctx context.Context, pool *pgxpool.Pool, table, id string) error {
	tag, err := pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// putDoc runs the optimistic save. extraCols/extraVals are the filter
// columns kept alongside the payload; the caller passes them already
// ordered.
func putDoc(ctx context.Context, pool *pgxpool.Pool, table, id string, version *int64, payload []byte, extraCols []string, extraVals []any) error {
	setClauses := make([]string, 0, len(extraCols)+2)
	insertCols := append([]string{"id", "version", "payload"}, extraCols...)
	args := append([]any{id, payload}, extraVals...)

	placeholders := make([]string, len(insertCols))
	for i := range insertCols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	if *version == 0 {
		// args: id, version, payload, extras...
		insertArgs := append([]any{id, int64(1), payload}, extraVals...)
		tag, err := pool.Exec(ctx, fmt.Sprintf(
			`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO NOTHING`,
			table, strings.Join(insertCols, ", "), strings.Join(placeholders, ", "),
		), insertArgs...)
		if err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
		if tag.RowsAffected() == 0 {
			return core.ErrConflict
		}
		*version = 1
		return nil
	}

	setClauses = append(setClauses, "version = version + 1", "payload = $2")
	for i, col := range extraCols {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i+3))
	}
	tag, err := pool.Exec(ctx, fmt.Sprintf(
		`UPDATE %s SET %s WHERE id = $1 AND version = $%d`,
		table, strings.Join(setClauses, ", "), len(args)+1,
	), append(args, *version)...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a stale version from a vanished row.
		var exists bool
		if err := pool.QueryRow(ctx, fmt.Sprintf(
			`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table), id).Scan(&exists); err != nil {
			return fmt.Errorf("check %s existence: %w", table, err)
		}
		if !exists {
			return core.ErrNotFound
		}
		return core.ErrConflict
	}
	*version++
	return nil
}

func listDocs[T any](ctx context.Context, pool *pgxpool.Pool, query string, args ...any) ([]*T, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan payload: %w", err)
		}
		var doc T
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		out = append(out, &doc)
	}
	return out, rows.Err()
}

func (p *Postgres) GetItem(ctx context.Context, id string) (*core.Item, error) {
	return getDoc[core.Item](ctx, p.pool, "items", id)
}

func (p *Postgres) PutItem(ctx context.Context, item *core.Item) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}
	return putDoc(ctx, p.pool, "items", item.ID, &item.Version, payload,
		[]string{"category", "status", "name", "hsn_code"},
		[]any{item.Category, item.Status, item.Name, item.HSNCode})
}

func (p *Postgres) DeleteItem(ctx context.Context, id string) error {
	return deleteDoc(ctx, p.pool, "items", id)
}

func (p *Postgres) ListItems(ctx context.Context, f core.ItemFilter) ([]*core.Item, error) {
	query := `SELECT payload FROM items WHERE 1=1`
	var args []any
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR hsn_code ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY name"
	return listDocs[core.Item](ctx, p.pool, query, args...)
}

func (p *Postgres) GetCustomer(ctx context.Context, id string) (*core.Customer, error) {
	return getDoc[core.Customer](ctx, p.pool, "customers", id)
}

func (p *Postgres) PutCustomer(ctx context.Context, c *core.Customer) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode customer: %w", err)
	}
	return putDoc(ctx, p.pool, "customers", c.ID, &c.Version, payload,
		[]string{"status", "name", "gstin", "phone"},
		[]any{c.Status, c.Name, c.GSTIN, c.Contact.Phone})
}

func (p *Postgres) DeleteCustomer(ctx context.Context, id string) error {
	return deleteDoc(ctx, p.pool, "customers", id)
}

func (p *Postgres) ListCustomers(ctx context.Context, f core.CustomerFilter) ([]*core.Customer, error) {
	query := `SELECT payload FROM customers WHERE 1=1`
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR gstin ILIKE $%d OR phone ILIKE $%d)",
			len(args), len(args), len(args))
	}
	query += " ORDER BY name"
	return listDocs[core.Customer](ctx, p.pool, query, args...)
}

func (p *Postgres) GetInvoice(ctx context.Context, id string) (*core.Invoice, error) {
	return getDoc[core.Invoice](ctx, p.pool, "invoices", id)
}

func (p *Postgres) PutInvoice(ctx context.Context, inv *core.Invoice) error {
	payload, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encode invoice: %w", err)
	}
	return putDoc(ctx, p.pool, "invoices", inv.ID, &inv.Version, payload,
		[]string{"invoice_number", "invoice_type", "payment_status", "customer_id", "invoice_date"},
		[]any{inv.InvoiceNumber, string(inv.Type), string(inv.PaymentStatus), inv.CustomerID, inv.InvoiceDate})
}

func (p *Postgres) DeleteInvoice(ctx context.Context, id string) error {
	return deleteDoc(ctx, p.pool, "invoices", id)
}

func (p *Postgres) ListInvoices(ctx context.Context, f core.InvoiceFilter) ([]*core.Invoice, error) {
	query := `SELECT payload FROM invoices WHERE 1=1`
	var args []any
	if f.Type != "" {
		args = append(args, string(f.Type))
		query += fmt.Sprintf(" AND invoice_type = $%d", len(args))
	}
	if f.PaymentStatus != "" {
		args = append(args, string(f.PaymentStatus))
		query += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		query += fmt.Sprintf(" AND invoice_date >= $%d", len(args))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		query += fmt.Sprintf(" AND invoice_date <= $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND invoice_number ILIKE $%d", len(args))
	}
	query += " ORDER BY invoice_date DESC, invoice_number DESC"
	return listDocs[core.Invoice](ctx, p.pool, query, args...)
}

func (p *Postgres) GetTransaction(ctx context.Context, id string) (*core.Transaction, error) {
	return getDoc[core.Transaction](ctx, p.pool, "transactions", id)
}

func (p *Postgres) PutTransaction(ctx context.Context, t *core.Transaction) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}
	return putDoc(ctx, p.pool, "transactions", t.ID, &t.Version, payload,
		[]string{"txn_type", "category", "status", "customer_id", "txn_date"},
		[]any{string(t.Type), string(t.Category), string(t.Status), t.CustomerID, t.Date})
}

func (p *Postgres) DeleteTransaction(ctx context.Context, id string) error {
	return deleteDoc(ctx, p.pool, "transactions", id)
}

func (p *Postgres) ListTransactions(ctx context.Context, f core.TransactionFilter) ([]*core.Transaction, error) {
	query := `SELECT payload FROM transactions WHERE 1=1`
	var args []any
	if f.Type != "" {
		args = append(args, string(f.Type))
		query += fmt.Sprintf(" AND txn_type = $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, string(f.Category))
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		query += fmt.Sprintf(" AND txn_date >= $%d", len(args))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		query += fmt.Sprintf(" AND txn_date <= $%d", len(args))
	}
	query += " ORDER BY txn_date DESC, id"
	return listDocs[core.Transaction](ctx, p.pool, query, args...)
}

// NextInvoiceSequence bumps and returns the per-type, per-year counter in
// a single upsert so two concurrent creators can never draw the same
// number.
func (p *Postgres) NextInvoiceSequence(ctx context.Context, t core.InvoiceType, year int) (int64, error) {
	var seq int64
	err := p.pool.QueryRow(ctx, `
		INSERT INTO invoice_sequences (doc_type, year, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, year) DO UPDATE SET seq = invoice_sequences.seq + 1
		RETURNING seq
	`, string(t), year%100).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return seq, nil
}

var _ core.Store = (*Postgres)(nil)
var _ core.Store = (*Memory)(nil)
