package core

// ApplyStock applies the inventory effect of issuing one invoice line
// against an item. Sales consume stock; purchases have no automatic
// effect (goods inward is recorded through the explicit stock update
// operation, not inferred from the purchase document). Counters may go
// negative and are not clamped.
func ApplyStock(item *Item, line LineItem, invoiceType InvoiceType) {
	if invoiceType != InvoiceTypeSale {
		return
	}
	item.Stock.Quantity = item.Stock.Quantity.Sub(line.Quantity)
	item.Stock.Weight = item.Stock.Weight.Sub(line.Weight)
	item.Stock.Bags = item.Stock.Bags.Sub(line.Bags)
}

// ReverseStock is the exact additive inverse of ApplyStock. It must be
// called exactly once per line when a sale invoice is deleted, using the
// captured quantities from the invoice's line snapshot — never re-read
// from the live item.
func ReverseStock(item *Item, line LineItem, invoiceType InvoiceType) {
	if invoiceType != InvoiceTypeSale {
		return
	}
	item.Stock.Quantity = item.Stock.Quantity.Add(line.Quantity)
	item.Stock.Weight = item.Stock.Weight.Add(line.Weight)
	item.Stock.Bags = item.Stock.Bags.Add(line.Bags)
}
