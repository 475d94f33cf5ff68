package core

import "github.com/shopspring/decimal"

// InvoiceTotals is the document-level aggregation of already tax-split
// line items.
type InvoiceTotals struct {
	Subtotal   decimal.Decimal
	TotalGST   TaxTotals
	Discount   decimal.Decimal
	RoundOff   decimal.Decimal
	GrandTotal decimal.Decimal
}

// CalculateInvoiceTotals sums line amounts and each tax component
// independently, applies the flat discount, and rounds the grand total
// half-away-from-zero to the nearest whole rupee. The rounding step is
// the only place fractional currency is discarded; RoundOff records the
// signed remainder for audit parity. An empty line list is valid:
// discount-only documents produce grandTotal = round(−discount).
func CalculateInvoiceTotals(items []LineItem, discount decimal.Decimal) InvoiceTotals {
	subtotal := decimal.Zero
	cgst := decimal.Zero
	sgst := decimal.Zero
	igst := decimal.Zero

	for _, it := range items {
		subtotal = subtotal.Add(it.Amount)
		cgst = cgst.Add(it.GST.CGSTAmount)
		sgst = sgst.Add(it.GST.SGSTAmount)
		igst = igst.Add(it.GST.IGSTAmount)
	}

	totalGST := cgst.Add(sgst).Add(igst)
	raw := subtotal.Add(totalGST).Sub(discount)
	// decimal.Round rounds half away from zero, the required mode.
	grand := raw.Round(0)

	return InvoiceTotals{
		Subtotal: subtotal,
		TotalGST: TaxTotals{
			CGST:  cgst,
			SGST:  sgst,
			IGST:  igst,
			Total: totalGST,
		},
		Discount:   discount,
		RoundOff:   grand.Sub(raw),
		GrandTotal: grand,
	}
}
