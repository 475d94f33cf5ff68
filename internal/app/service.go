package app

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/4ugusta/chaibooks-backend/internal/core"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic: implementations validate
// wire-shaped requests, map them to core inputs and delegate, with no
// HTTP or display concerns of any kind.
type ApplicationService interface {
	CreateItem(ctx context.Context, req SaveItemRequest) (*core.Item, error)
	GetItem(ctx context.Context, id string) (*core.Item, error)
	ListItems(ctx context.Context, f core.ItemFilter) ([]*core.Item, error)
	UpdateItem(ctx context.Context, id string, req SaveItemRequest) (*core.Item, error)
	DeleteItem(ctx context.Context, id string) error
	UpdateStock(ctx context.Context, id string, req UpdateStockRequest) (*core.Item, error)

	CreateCustomer(ctx context.Context, req SaveCustomerRequest) (*core.Customer, error)
	GetCustomer(ctx context.Context, id string) (*core.Customer, error)
	ListCustomers(ctx context.Context, f core.CustomerFilter) ([]*core.Customer, error)
	UpdateCustomer(ctx context.Context, id string, req SaveCustomerRequest) (*core.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*core.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*core.Invoice, error)
	ListInvoices(ctx context.Context, f core.InvoiceFilter) ([]*core.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error

	RecordPayment(ctx context.Context, invoiceID string, req RecordPaymentRequest) (*core.Invoice, error)
	RemovePayment(ctx context.Context, invoiceID, paymentID string) (*core.Invoice, error)

	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*core.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*core.Transaction, error)
	ListTransactions(ctx context.Context, f core.TransactionFilter) ([]*core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	TransactionSummary(ctx context.Context, f core.TransactionFilter) ([]core.TransactionSummary, error)

	GSTSummary(ctx context.Context, period core.ReportPeriod) (*core.GSTSummaryReport, error)
	SalesSummary(ctx context.Context, period core.ReportPeriod) (*core.TradeSummaryReport, error)
	PurchaseSummary(ctx context.Context, period core.ReportPeriod) (*core.TradeSummaryReport, error)
	StockReport(ctx context.Context) (*core.StockReport, error)
	OutstandingReport(ctx context.Context) (*core.OutstandingReport, error)
}

type appService struct {
	items        core.ItemService
	customers    core.CustomerService
	invoices     core.InvoiceService
	payments     core.PaymentService
	transactions core.TransactionService
	reports      core.ReportingService
	validate     *validator.Validate
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(store core.Store) ApplicationService {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return core.ValidGSTIN(core.NormalizeGSTIN(fl.Field().String()))
	})

	return &appService{
		items:        core.NewItemService(store),
		customers:    core.NewCustomerService(store),
		invoices:     core.NewInvoiceService(store),
		payments:     core.NewPaymentService(store),
		transactions: core.NewTransactionService(store),
		reports:      core.NewReportingService(store),
		validate:     v,
	}
}

func (s *appService) check(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", core.ErrValidation, err)
	}
	return nil
}

func itemFromRequest(req SaveItemRequest) *core.Item {
	return &core.Item{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		HSNCode:     req.HSNCode,
		Unit:        req.Unit,
		Pricing: core.Pricing{
			BasePrice:     req.BasePrice,
			SellingPrice:  req.SellingPrice,
			PurchasePrice: req.PurchasePrice,
		},
		GST: core.ItemGST{Rate: req.GSTRate},
		Stock: core.Stock{
			Quantity:      req.Quantity,
			Weight:        req.Weight,
			Bags:          req.Bags,
			MinStockLevel: req.MinStockLevel,
		},
		Status: req.Status,
	}
}

func (s *appService) CreateItem(ctx context.Context, req SaveItemRequest) (*core.Item, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	return s.items.CreateItem(ctx, itemFromRequest(req))
}

func (s *appService) GetItem(ctx context.Context, id string) (*core.Item, error) {
	return s.items.GetItem(ctx, id)
}

func (s *appService) ListItems(ctx context.Context, f core.ItemFilter) ([]*core.Item, error) {
	return s.items.ListItems(ctx, f)
}

func (s *appService) UpdateItem(ctx context.Context, id string, req SaveItemRequest) (*core.Item, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	current, err := s.items.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item := itemFromRequest(req)
	item.ID = id
	item.Version = current.Version
	item.CreatedAt = current.CreatedAt
	if item.Status == "" {
		item.Status = current.Status
	}
	return s.items.UpdateItem(ctx, item)
}

func (s *appService) DeleteItem(ctx context.Context, id string) error {
	return s.items.DeleteItem(ctx, id)
}

func (s *appService) UpdateStock(ctx context.Context, id string, req UpdateStockRequest) (*core.Item, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	return s.items.UpdateStock(ctx, id, core.StockUpdateInput{
		Operation: req.Operation,
		Quantity:  req.Quantity,
		Weight:    req.Weight,
		Bags:      req.Bags,
	})
}

func customerFromRequest(req SaveCustomerRequest) *core.Customer {
	return &core.Customer{
		Name:            req.Name,
		GSTIN:           req.GSTIN,
		Contact:         core.Contact{Phone: req.Phone, Email: req.Email},
		Address:         req.Address,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
		CreditLimit:     req.CreditLimit,
		Status:          req.Status,
	}
}

func (s *appService) CreateCustomer(ctx context.Context, req SaveCustomerRequest) (*core.Customer, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	return s.customers.CreateCustomer(ctx, customerFromRequest(req))
}

func (s *appService) GetCustomer(ctx context.Context, id string) (*core.Customer, error) {
	return s.customers.GetCustomer(ctx, id)
}

func (s *appService) ListCustomers(ctx context.Context, f core.CustomerFilter) ([]*core.Customer, error) {
	return s.customers.ListCustomers(ctx, f)
}

func (s *appService) UpdateCustomer(ctx context.Context, id string, req SaveCustomerRequest) (*core.Customer, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	customer := customerFromRequest(req)
	customer.ID = id
	return s.customers.UpdateCustomer(ctx, customer)
}

func (s *appService) DeleteCustomer(ctx context.Context, id string) error {
	return s.customers.DeleteCustomer(ctx, id)
}

func (s *appService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*core.Invoice, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	lines := make([]core.CreateLineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = core.CreateLineInput{
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			Weight:   l.Weight,
			Bags:     l.Bags,
			Rate:     l.Rate,
		}
	}
	return s.invoices.CreateInvoice(ctx, core.CreateInvoiceInput{
		Type:               core.InvoiceType(req.Type),
		CustomerID:         req.CustomerID,
		InvoiceDate:        req.InvoiceDate,
		DueDate:            req.DueDate,
		InterState:         req.InterState,
		Lines:              lines,
		Discount:           req.Discount,
		Notes:              req.Notes,
		TermsAndConditions: req.TermsAndConditions,
	})
}

func (s *appService) GetInvoice(ctx context.Context, id string) (*core.Invoice, error) {
	return s.invoices.GetInvoice(ctx, id)
}

func (s *appService) ListInvoices(ctx context.Context, f core.InvoiceFilter) ([]*core.Invoice, error) {
	return s.invoices.ListInvoices(ctx, f)
}

func (s *appService) DeleteInvoice(ctx context.Context, id string) error {
	return s.invoices.DeleteInvoice(ctx, id)
}

func (s *appService) RecordPayment(ctx context.Context, invoiceID string, req RecordPaymentRequest) (*core.Invoice, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	return s.payments.RecordPayment(ctx, invoiceID, core.RecordPaymentInput{
		Amount:    req.Amount,
		Method:    core.PaymentMethod(req.Method),
		Date:      req.Date,
		Reference: req.Reference,
		Notes:     req.Notes,
	})
}

func (s *appService) RemovePayment(ctx context.Context, invoiceID, paymentID string) (*core.Invoice, error) {
	return s.payments.RemovePayment(ctx, invoiceID, paymentID)
}

func (s *appService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*core.Transaction, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	return s.transactions.CreateTransaction(ctx, core.CreateTransactionInput{
		Type:           core.TransactionType(req.Type),
		Reference:      core.TransactionReference(req.Reference),
		ReferenceID:    req.ReferenceID,
		ReferenceModel: req.ReferenceModel,
		CustomerID:     req.CustomerID,
		Date:           req.Date,
		Amount:         req.Amount,
		PaymentMethod:  core.PaymentMethod(req.PaymentMethod),
		PaymentDetails: req.PaymentDetails,
		Description:    req.Description,
		Category:       core.TransactionCategory(req.Category),
		Status:         core.TransactionStatus(req.Status),
	})
}

func (s *appService) GetTransaction(ctx context.Context, id string) (*core.Transaction, error) {
	return s.transactions.GetTransaction(ctx, id)
}

func (s *appService) ListTransactions(ctx context.Context, f core.TransactionFilter) ([]*core.Transaction, error) {
	return s.transactions.ListTransactions(ctx, f)
}

func (s *appService) DeleteTransaction(ctx context.Context, id string) error {
	return s.transactions.DeleteTransaction(ctx, id)
}

func (s *appService) TransactionSummary(ctx context.Context, f core.TransactionFilter) ([]core.TransactionSummary, error) {
	return s.transactions.Summary(ctx, f)
}

func (s *appService) GSTSummary(ctx context.Context, period core.ReportPeriod) (*core.GSTSummaryReport, error) {
	return s.reports.GSTSummary(ctx, period)
}

func (s *appService) SalesSummary(ctx context.Context, period core.ReportPeriod) (*core.TradeSummaryReport, error) {
	return s.reports.SalesSummary(ctx, period)
}

func (s *appService) PurchaseSummary(ctx context.Context, period core.ReportPeriod) (*core.TradeSummaryReport, error) {
	return s.reports.PurchaseSummary(ctx, period)
}

func (s *appService) StockReport(ctx context.Context) (*core.StockReport, error) {
	return s.reports.StockReport(ctx)
}

func (s *appService) OutstandingReport(ctx context.Context) (*core.OutstandingReport, error) {
	return s.reports.OutstandingReport(ctx)
}
