package web_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ugusta/chaibooks-backend/internal/adapters/web"
	"github.com/4ugusta/chaibooks-backend/internal/app"
	"github.com/4ugusta/chaibooks-backend/internal/core"
	"github.com/4ugusta/chaibooks-backend/internal/store"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestServer() http.Handler {
	return web.NewHandler(app.NewAppService(store.NewMemory()), "")
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestItemCRUDOverHTTP(t *testing.T) {
	h := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/api/items", map[string]any{
		"name":    "Assam CTC BP",
		"hsnCode": "0902",
		"gstRate": "18",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var item core.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.NotEmpty(t, item.ID)
	assert.True(t, item.GST.CGST.Equal(dec("9")))

	rec = doJSON(t, h, http.MethodGet, "/api/items/"+item.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/items/"+item.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/items/"+item.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	h := newTestServer()

	// Validation failure → 400 with structured body.
	rec := doJSON(t, h, http.MethodPost, "/api/customers", map[string]any{
		"name":  "Bad GSTIN",
		"gstin": "NOPE",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")

	// Unknown record → 404.
	rec = doJSON(t, h, http.MethodGet, "/api/invoices/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")

	// Malformed body → 400.
	req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewBufferString("{not json"))
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestInvoiceAndPaymentOverHTTP(t *testing.T) {
	h := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/api/items", map[string]any{
		"name": "Assam CTC BP", "hsnCode": "0902", "gstRate": "18", "quantity": "100",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var item core.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	rec = doJSON(t, h, http.MethodPost, "/api/customers", map[string]any{"name": "Sharma Tea Traders"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var customer core.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))

	rec = doJSON(t, h, http.MethodPost, "/api/invoices", map[string]any{
		"invoiceType": "sale",
		"customer":    customer.ID,
		"items": []map[string]any{{
			"item": item.ID, "quantity": "10", "rate": "100",
		}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var inv core.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inv))
	assert.True(t, inv.GrandTotal.Equal(dec("1180")), "grand total %s", inv.GrandTotal)

	rec = doJSON(t, h, http.MethodPost, "/api/invoices/"+inv.ID+"/payments", map[string]any{
		"amount": "1180", "method": "upi",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inv))
	assert.Equal(t, core.PaymentStatusPaid, inv.PaymentStatus)

	// Overpayment after settlement → 400.
	rec = doJSON(t, h, http.MethodPost, "/api/invoices/"+inv.ID+"/payments", map[string]any{
		"amount": "1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/invoices/"+inv.ID+"/payments/"+inv.Payments[0].ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/api/reports/gst", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
