package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceType string

const (
	InvoiceTypeSale     InvoiceType = "sale"
	InvoiceTypePurchase InvoiceType = "purchase"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	// PaymentStatusOverdue exists for wire compatibility with historical
	// records. The recompute logic never produces it: paymentStatus is a
	// pure function of amountPaid vs grandTotal, and due-date awareness
	// belongs to reporting.
	PaymentStatusOverdue PaymentStatus = "overdue"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCheque PaymentMethod = "cheque"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodNEFT   PaymentMethod = "neft"
	PaymentMethodRTGS   PaymentMethod = "rtgs"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodOther  PaymentMethod = "other"
)

type TransactionType string

const (
	TransactionSale            TransactionType = "sale"
	TransactionPurchase        TransactionType = "purchase"
	TransactionPaymentReceived TransactionType = "payment_received"
	TransactionPaymentMade     TransactionType = "payment_made"
	TransactionExpense         TransactionType = "expense"
)

type TransactionCategory string

const (
	CategoryRevenue   TransactionCategory = "revenue"
	CategoryExpense   TransactionCategory = "expense"
	CategoryAsset     TransactionCategory = "asset"
	CategoryLiability TransactionCategory = "liability"
)

type TransactionReference string

const (
	ReferenceInvoice TransactionReference = "invoice"
	ReferenceDirect  TransactionReference = "direct"
	ReferenceReturn  TransactionReference = "return"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionCancelled TransactionStatus = "cancelled"
	TransactionFailed    TransactionStatus = "failed"
)

// ItemGST holds the rate components of an item's GST bracket, expressed
// as percentages. The split fields are always derived from Rate on save
// (cgst = sgst = rate/2, igst = rate), never stored independently.
type ItemGST struct {
	Rate decimal.Decimal `json:"rate"`
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
	IGST decimal.Decimal `json:"igst"`
}

// GSTRates is the fixed set of legal GST brackets.
var GSTRates = []int64{0, 5, 12, 18, 28}

type Pricing struct {
	BasePrice     decimal.Decimal `json:"basePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
}

// Stock counters are signed: an oversold item legitimately goes negative
// (backordered) and is never clamped.
type Stock struct {
	Quantity      decimal.Decimal `json:"quantity"`
	Weight        decimal.Decimal `json:"weight"`
	Bags          decimal.Decimal `json:"bags"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
}

// Item is a stocked product or service.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	HSNCode     string    `json:"hsnCode"`
	Unit        string    `json:"unit"`
	Pricing     Pricing   `json:"pricing"`
	GST         ItemGST   `json:"gst"`
	Stock       Stock     `json:"stock"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Version     int64     `json:"version"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

type Contact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Customer is a counterparty. OutstandingBalance is a derived,
// incrementally maintained cache of what the customer owes (positive =
// customer owes us); only the balance reconciler mutates it.
type Customer struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	GSTIN              string          `json:"gstin"`
	Contact            Contact         `json:"contact"`
	Address            Address         `json:"address"`
	BillingAddress     Address         `json:"billingAddress"`
	ShippingAddress    Address         `json:"shippingAddress"`
	CreditLimit        decimal.Decimal `json:"creditLimit"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	Version            int64           `json:"version"`
}

// LineGST is the full per-line tax breakdown: component rates (percent)
// and component amounts.
type LineGST struct {
	Rate           decimal.Decimal `json:"rate"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	IGST           decimal.Decimal `json:"igst"`
	CGSTAmount     decimal.Decimal `json:"cgstAmount"`
	SGSTAmount     decimal.Decimal `json:"sgstAmount"`
	IGSTAmount     decimal.Decimal `json:"igstAmount"`
	TotalGSTAmount decimal.Decimal `json:"totalGstAmount"`
}

// LineItem is a value snapshot of an item at the moment the invoice was
// issued. It is never re-derived from the live Item, whose rate or price
// may change after issuance.
type LineItem struct {
	ItemID   string          `json:"item"`
	ItemName string          `json:"itemName"`
	HSNCode  string          `json:"hsnCode"`
	Quantity decimal.Decimal `json:"quantity"`
	Weight   decimal.Decimal `json:"weight"`
	Bags     decimal.Decimal `json:"bags"`
	Unit     string          `json:"unit"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
	GST      LineGST         `json:"gst"`
	Total    decimal.Decimal `json:"total"`
}

// PaymentEntry is one recorded settlement against an invoice's balance
// due. TransactionID back-references the mirrored Transaction record;
// empty means unlinked.
type PaymentEntry struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Date          time.Time       `json:"date"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
	TransactionID string          `json:"transactionId"`
}

// TaxTotals aggregates the three tax components over all lines of an
// invoice.
type TaxTotals struct {
	CGST  decimal.Decimal `json:"cgst"`
	SGST  decimal.Decimal `json:"sgst"`
	IGST  decimal.Decimal `json:"igst"`
	Total decimal.Decimal `json:"total"`
}

// Invoice is immutable once issued except for its payment sub-ledger.
// AmountPaid always equals the sum of payment entry amounts, BalanceDue
// is never negative, and PaymentStatus is always recomputed from amounts.
type Invoice struct {
	ID                 string          `json:"id"`
	InvoiceNumber      string          `json:"invoiceNumber"`
	Type               InvoiceType     `json:"invoiceType"`
	CustomerID         string          `json:"customer"`
	InvoiceDate        time.Time       `json:"invoiceDate"`
	DueDate            *time.Time      `json:"dueDate,omitempty"`
	InterState         bool            `json:"interState"`
	Items              []LineItem      `json:"items"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	TotalGST           TaxTotals       `json:"totalGst"`
	Discount           decimal.Decimal `json:"discount"`
	RoundOff           decimal.Decimal `json:"roundOff"`
	GrandTotal         decimal.Decimal `json:"grandTotal"`
	AmountInWords      string          `json:"amountInWords"`
	AmountPaid         decimal.Decimal `json:"amountPaid"`
	BalanceDue         decimal.Decimal `json:"balanceDue"`
	PaymentStatus      PaymentStatus   `json:"paymentStatus"`
	Payments           []PaymentEntry  `json:"payments"`
	Notes              string          `json:"notes"`
	TermsAndConditions string          `json:"termsAndConditions"`
	Status             InvoiceStatus   `json:"status"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	Version            int64           `json:"version"`
}

// RecomputePayments re-derives AmountPaid, BalanceDue and PaymentStatus
// from the payment entries. Always recomputed from scratch, never
// incrementally toggled, so a doubled retry of this step is harmless.
func (inv *Invoice) RecomputePayments() {
	paid := decimal.Zero
	for _, p := range inv.Payments {
		paid = paid.Add(p.Amount)
	}
	inv.AmountPaid = paid

	due := inv.GrandTotal.Sub(paid)
	if due.IsNegative() {
		due = decimal.Zero
	}
	inv.BalanceDue = due

	switch {
	case due.IsZero():
		inv.PaymentStatus = PaymentStatusPaid
	case paid.IsPositive():
		inv.PaymentStatus = PaymentStatusPartial
	default:
		inv.PaymentStatus = PaymentStatusUnpaid
	}
}

// FindPayment returns the index of the payment entry with the given ID,
// or -1 if absent.
func (inv *Invoice) FindPayment(paymentID string) int {
	for i, p := range inv.Payments {
		if p.ID == paymentID {
			return i
		}
	}
	return -1
}

// FindPaymentByTransaction returns the index of the payment entry linked
// to the given transaction, or -1 if absent.
func (inv *Invoice) FindPaymentByTransaction(transactionID string) int {
	for i, p := range inv.Payments {
		if p.TransactionID == transactionID {
			return i
		}
	}
	return -1
}

type PaymentDetails struct {
	TransactionID string `json:"transactionId"`
	ChequeNumber  string `json:"chequeNumber"`
	BankName      string `json:"bankName"`
	UPIID         string `json:"upiId"`
}

// Transaction is an append-only financial activity record, optionally
// back-linked to an invoice payment entry. When created as a side effect
// of a payment its amount and date mirror the payment entry exactly, and
// the two are kept in lockstep: deleting either removes the other half
// of the pair.
type Transaction struct {
	ID             string               `json:"id"`
	Type           TransactionType      `json:"transactionType"`
	Reference      TransactionReference `json:"reference"`
	ReferenceID    string               `json:"referenceId"`
	ReferenceModel string               `json:"referenceModel"`
	CustomerID     string               `json:"customer"`
	Date           time.Time            `json:"date"`
	Amount         decimal.Decimal      `json:"amount"`
	PaymentMethod  PaymentMethod        `json:"paymentMethod"`
	PaymentDetails PaymentDetails       `json:"paymentDetails"`
	Description    string               `json:"description"`
	Category       TransactionCategory  `json:"category"`
	Status         TransactionStatus    `json:"status"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
	Version        int64                `json:"version"`
}

// DefaultCategory maps a transaction type to its accounting category.
func DefaultCategory(t TransactionType) TransactionCategory {
	switch t {
	case TransactionPaymentReceived, TransactionSale:
		return CategoryRevenue
	case TransactionPaymentMade, TransactionPurchase, TransactionExpense:
		return CategoryExpense
	default:
		return CategoryRevenue
	}
}
