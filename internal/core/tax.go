package core

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// TaxSplit is the GST breakdown of a single taxable amount.
type TaxSplit struct {
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	IGST       decimal.Decimal
	Total      decimal.Decimal
	GrandTotal decimal.Decimal
}

// SplitTax computes the GST components for a base amount at the given
// percentage rate. Inter-state transactions attract IGST only; intra-state
// transactions split the same total evenly into CGST and SGST. No
// intermediate rounding: totals carry full precision until the invoice
// level round-off. Negative amounts propagate their sign unchanged
// (credit notes are not distinguished from sales).
func SplitTax(amount, rate decimal.Decimal, interState bool) TaxSplit {
	gst := amount.Mul(rate).Div(oneHundred)

	split := TaxSplit{
		Total:      gst,
		GrandTotal: amount.Add(gst),
	}
	if interState {
		split.IGST = gst
	} else {
		half := gst.Div(decimal.NewFromInt(2))
		split.CGST = half
		split.SGST = half
	}
	return split
}

// ReverseTax extracts the base amount and tax from a tax-inclusive total:
// base = total × 100 / (100 + rate).
func ReverseTax(totalInclusive, rate decimal.Decimal) (base, tax decimal.Decimal) {
	base = totalInclusive.Mul(oneHundred).Div(oneHundred.Add(rate))
	tax = totalInclusive.Sub(base)
	return base, tax
}
