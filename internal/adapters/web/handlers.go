package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/4ugusta/chaibooks-backend/internal/app"
	"github.com/4ugusta/chaibooks-backend/internal/core"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: splitAndTrim(allowedOrigins),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/api/health", h.health)

	r.Route("/api/items", func(r chi.Router) {
		r.Get("/", h.listItems)
		r.Post("/", h.createItem)
		r.Get("/{id}", h.getItem)
		r.Put("/{id}", h.updateItem)
		r.Delete("/{id}", h.deleteItem)
		r.Patch("/{id}/stock", h.updateStock)
	})

	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", h.listCustomers)
		r.Post("/", h.createCustomer)
		r.Get("/{id}", h.getCustomer)
		r.Put("/{id}", h.updateCustomer)
		r.Delete("/{id}", h.deleteCustomer)
	})

	r.Route("/api/invoices", func(r chi.Router) {
		r.Get("/", h.listInvoices)
		r.Post("/", h.createInvoice)
		r.Get("/{id}", h.getInvoice)
		r.Delete("/{id}", h.deleteInvoice)
		r.Post("/{id}/payments", h.recordPayment)
		r.Delete("/{id}/payments/{paymentID}", h.removePayment)
	})

	r.Route("/api/transactions", func(r chi.Router) {
		r.Get("/", h.listTransactions)
		r.Post("/", h.createTransaction)
		r.Get("/summary", h.transactionSummary)
		r.Get("/{id}", h.getTransaction)
		r.Delete("/{id}", h.deleteTransaction)
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/gst", h.gstSummary)
		r.Get("/sales", h.salesSummary)
		r.Get("/purchases", h.purchaseSummary)
		r.Get("/stock", h.stockReport)
		r.Get("/outstanding", h.outstandingReport)
	})

	h.router = r
	return r
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func decode(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}

// parseDate accepts either a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func datePtr(r *http.Request, key string) *time.Time {
	if s := r.URL.Query().Get(key); s != "" {
		if t, ok := parseDate(s); ok {
			return &t
		}
	}
	return nil
}

func periodFromQuery(r *http.Request) core.ReportPeriod {
	return core.ReportPeriod{
		Start: datePtr(r, "startDate"),
		End:   datePtr(r, "endDate"),
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req app.SaveItemRequest
	if !decode(r, &req) {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	item, err := h.svc.CreateItem(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.ListItems(r.Context(), core.ItemFilter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req app.SaveItemRequest
	if !decode(r, &req) {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	item, err := h.svc.UpdateItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	var req app.UpdateStockRequest
	if !decode(r, &req) {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	item, err := h.svc.UpdateStock(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req app.SaveCustomerRequest
	if !decode(r, &req) {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	customer, err := h.svc.CreateCustomer(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.svc.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	customers, err := h.svc.ListCustomers(r.Context(), core.CustomerFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var req app.SaveCustomerRequest
	if !decode(r, &req) {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	customer, err := h.svc.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.CreateInvoiceRequest
	if !decode(r, &req) {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	inv, err := h.svc.CreateInvoice(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	invoices, err := h.svc.ListInvoices(r.Context(), core.InvoiceFilter{
		Type:          core.InvoiceType(q.Get("invoiceType")),
		PaymentStatus: core.PaymentStatus(q.Get("paymentStatus")),
		CustomerID:    q.Get("customer"),
		StartDate:     datePtr(r, "startDate"),
		EndDate:       datePtr(r, "endDate"),
		Search:        q.Get("search"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteInvoice(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req app.RecordPaymentRequest
	if !decode(r, &req) {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	inv, err := h.svc.RecordPayment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handler) removePayment(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.RemovePayment(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "paymentID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req app.CreateTransactionRequest
	if !decode(r, &req) {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	txn, err := h.svc.CreateTransaction(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := h.svc.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func transactionFilterFromQuery(r *http.Request) core.TransactionFilter {
	q := r.URL.Query()
	return core.TransactionFilter{
		Type:       core.TransactionType(q.Get("transactionType")),
		Category:   core.TransactionCategory(q.Get("category")),
		Status:     core.TransactionStatus(q.Get("status")),
		CustomerID: q.Get("customer"),
		StartDate:  datePtr(r, "startDate"),
		EndDate:    datePtr(r, "endDate"),
	}
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.svc.ListTransactions(r.Context(), transactionFilterFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) transactionSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.TransactionSummary(r.Context(), transactionFilterFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) gstSummary(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.GSTSummary(r.Context(), periodFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) salesSummary(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.SalesSummary(r.Context(), periodFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) purchaseSummary(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.PurchaseSummary(r.Context(), periodFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) stockReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.StockReport(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) outstandingReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.OutstandingReport(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
