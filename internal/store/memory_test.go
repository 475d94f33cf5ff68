package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ugusta/chaibooks-backend/internal/core"
	"github.com/4ugusta/chaibooks-backend/internal/store"
)

func TestMemoryOptimisticVersioning(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	item := &core.Item{ID: "i1", Name: "Assam CTC"}
	require.NoError(t, st.PutItem(ctx, item))
	assert.Equal(t, int64(1), item.Version)

	// Inserting again at version 0 loses.
	dup := &core.Item{ID: "i1", Name: "Duplicate"}
	assert.ErrorIs(t, st.PutItem(ctx, dup), core.ErrConflict)

	// A matching version wins and bumps.
	item.Name = "Assam CTC BP"
	require.NoError(t, st.PutItem(ctx, item))
	assert.Equal(t, int64(2), item.Version)

	// A stale version loses.
	stale := &core.Item{ID: "i1", Version: 1}
	assert.ErrorIs(t, st.PutItem(ctx, stale), core.ErrConflict)

	// Updating a vanished record reports not found.
	ghost := &core.Item{ID: "ghost", Version: 3}
	assert.ErrorIs(t, st.PutItem(ctx, ghost), core.ErrNotFound)
}

func TestMemoryHandsOutCopies(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	inv := &core.Invoice{
		ID:       "inv1",
		Payments: []core.PaymentEntry{{ID: "p1", Amount: decimal.NewFromInt(100)}},
	}
	require.NoError(t, st.PutInvoice(ctx, inv))

	got, err := st.GetInvoice(ctx, "inv1")
	require.NoError(t, err)
	got.Payments[0].Amount = decimal.NewFromInt(999)
	got.Payments = append(got.Payments, core.PaymentEntry{ID: "p2"})

	again, err := st.GetInvoice(ctx, "inv1")
	require.NoError(t, err)
	require.Len(t, again.Payments, 1)
	assert.True(t, again.Payments[0].Amount.Equal(decimal.NewFromInt(100)),
		"stored record mutated through a handed-out copy")
}

func TestMemoryGetDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	_, err := st.GetCustomer(ctx, "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, st.DeleteCustomer(ctx, "nope"), core.ErrNotFound)
	_, err = st.GetTransaction(ctx, "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestMemoryNextInvoiceSequence(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	for want := int64(1); want <= 3; want++ {
		got, err := st.NextInvoiceSequence(ctx, core.InvoiceTypeSale, 2026)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Separate counters per type and per year.
	got, err := st.NextInvoiceSequence(ctx, core.InvoiceTypePurchase, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	got, err = st.NextInvoiceSequence(ctx, core.InvoiceTypeSale, 2027)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestMemoryListFilters(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	require.NoError(t, st.PutItem(ctx, &core.Item{ID: "a", Name: "Assam CTC", Category: "tea", Status: "active", HSNCode: "0902"}))
	require.NoError(t, st.PutItem(ctx, &core.Item{ID: "b", Name: "Jute Bag", Category: "packing", Status: "active", HSNCode: "5310"}))
	require.NoError(t, st.PutItem(ctx, &core.Item{ID: "c", Name: "Old Stock", Category: "tea", Status: "inactive", HSNCode: "0902"}))

	tea, err := st.ListItems(ctx, core.ItemFilter{Category: "tea", Status: "active"})
	require.NoError(t, err)
	require.Len(t, tea, 1)
	assert.Equal(t, "a", tea[0].ID)

	byHSN, err := st.ListItems(ctx, core.ItemFilter{Search: "531"})
	require.NoError(t, err)
	require.Len(t, byHSN, 1)
	assert.Equal(t, "b", byHSN[0].ID)

	byName, err := st.ListItems(ctx, core.ItemFilter{Search: "assam"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "a", byName[0].ID)
}
