package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ugusta/chaibooks-backend/internal/core"
	"github.com/4ugusta/chaibooks-backend/internal/store"
)

func TestCreateCustomerNormalizesGSTIN(t *testing.T) {
	ctx := context.Background()
	svc := core.NewCustomerService(store.NewMemory())

	c, err := svc.CreateCustomer(ctx, &core.Customer{
		Name:  "Gupta Beverages",
		GSTIN: " 22aaaaa0000a1z5 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "22AAAAA0000A1Z5", c.GSTIN)
	assert.Equal(t, "active", c.Status)
}

func TestCreateCustomerValidation(t *testing.T) {
	ctx := context.Background()
	svc := core.NewCustomerService(store.NewMemory())

	_, err := svc.CreateCustomer(ctx, &core.Customer{GSTIN: "22AAAAA0000A1Z5"})
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = svc.CreateCustomer(ctx, &core.Customer{Name: "Bad GSTIN", GSTIN: "NOPE"})
	assert.ErrorIs(t, err, core.ErrValidation)

	// GSTIN is optional for unregistered customers.
	_, err = svc.CreateCustomer(ctx, &core.Customer{Name: "Cash Customer"})
	require.NoError(t, err)
}

func TestUpdateCustomerPreservesBalance(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := core.NewCustomerService(st)

	c, err := svc.CreateCustomer(ctx, &core.Customer{Name: "Sharma Tea Traders"})
	require.NoError(t, err)

	// Simulate reconciliation writing a balance between reads.
	stored, err := st.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	stored.OutstandingBalance = dec("4200")
	require.NoError(t, st.PutCustomer(ctx, stored))

	updated, err := svc.UpdateCustomer(ctx, &core.Customer{
		ID:                 c.ID,
		Name:               "Sharma Tea Traders Pvt Ltd",
		OutstandingBalance: dec("9999"), // must be ignored
	})
	require.NoError(t, err)

	assert.Equal(t, "Sharma Tea Traders Pvt Ltd", updated.Name)
	assertDecimal(t, dec("4200"), updated.OutstandingBalance, "balance carried forward")
}

func TestDeleteCustomerNotFound(t *testing.T) {
	ctx := context.Background()
	svc := core.NewCustomerService(store.NewMemory())
	assert.ErrorIs(t, svc.DeleteCustomer(ctx, "ghost"), core.ErrNotFound)
}
