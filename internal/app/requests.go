package app

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/4ugusta/chaibooks-backend/internal/core"
)

// SaveItemRequest is the input for creating or updating an item.
type SaveItemRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	HSNCode       string          `json:"hsnCode" validate:"required"`
	Unit          string          `json:"unit"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	GSTRate       decimal.Decimal `json:"gstRate"`
	Quantity      decimal.Decimal `json:"quantity"`
	Weight        decimal.Decimal `json:"weight"`
	Bags          decimal.Decimal `json:"bags"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
	Status        string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateStockRequest is the input for an explicit stock adjustment.
type UpdateStockRequest struct {
	Operation string           `json:"operation" validate:"required,oneof=add subtract set"`
	Quantity  *decimal.Decimal `json:"quantity"`
	Weight    *decimal.Decimal `json:"weight"`
	Bags      *decimal.Decimal `json:"bags"`
}

// SaveCustomerRequest is the input for creating or updating a customer.
type SaveCustomerRequest struct {
	Name            string          `json:"name" validate:"required"`
	GSTIN           string          `json:"gstin" validate:"omitempty,gstin"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email" validate:"omitempty,email"`
	Address         core.Address    `json:"address"`
	BillingAddress  core.Address    `json:"billingAddress"`
	ShippingAddress core.Address    `json:"shippingAddress"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	Status          string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// InvoiceLineRequest is a single line within a CreateInvoiceRequest.
type InvoiceLineRequest struct {
	ItemID   string          `json:"item" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Weight   decimal.Decimal `json:"weight"`
	Bags     decimal.Decimal `json:"bags"`
	Rate     decimal.Decimal `json:"rate"`
}

// CreateInvoiceRequest is the input for issuing a new invoice.
type CreateInvoiceRequest struct {
	Type               string               `json:"invoiceType" validate:"required,oneof=sale purchase"`
	CustomerID         string               `json:"customer" validate:"required"`
	InvoiceDate        time.Time            `json:"invoiceDate"`
	DueDate            *time.Time           `json:"dueDate"`
	InterState         bool                 `json:"interState"`
	Lines              []InvoiceLineRequest `json:"items" validate:"dive"`
	Discount           decimal.Decimal      `json:"discount"`
	Notes              string               `json:"notes"`
	TermsAndConditions string               `json:"termsAndConditions"`
}

// RecordPaymentRequest is the input for settling part of an invoice.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    string          `json:"method" validate:"omitempty,oneof=cash cheque upi neft rtgs card other"`
	Date      time.Time       `json:"date"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// CreateTransactionRequest is the input for a standalone activity record.
type CreateTransactionRequest struct {
	Type           string              `json:"transactionType" validate:"required,oneof=sale purchase payment_received payment_made expense"`
	Reference      string              `json:"reference" validate:"omitempty,oneof=invoice direct return"`
	ReferenceID    string              `json:"referenceId"`
	ReferenceModel string              `json:"referenceModel"`
	CustomerID     string              `json:"customer"`
	Date           time.Time           `json:"date"`
	Amount         decimal.Decimal     `json:"amount"`
	PaymentMethod  string              `json:"paymentMethod" validate:"required,oneof=cash cheque upi neft rtgs card other"`
	PaymentDetails core.PaymentDetails `json:"paymentDetails"`
	Description    string              `json:"description"`
	Category       string              `json:"category" validate:"omitempty,oneof=revenue expense asset liability"`
	Status         string              `json:"status" validate:"omitempty,oneof=completed pending cancelled failed"`
}
