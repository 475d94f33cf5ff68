package core_test

import (
	"testing"

	"github.com/4ugusta/chaibooks-backend/internal/core"
)

func TestApplyAndReverseStock(t *testing.T) {
	item := &core.Item{Stock: core.Stock{
		Quantity: dec("100"),
		Weight:   dec("100"),
		Bags:     dec("4"),
	}}
	line := core.LineItem{Quantity: dec("30"), Weight: dec("30"), Bags: dec("1")}

	core.ApplyStock(item, line, core.InvoiceTypeSale)
	assertDecimal(t, dec("70"), item.Stock.Quantity, "quantity after sale")
	assertDecimal(t, dec("70"), item.Stock.Weight, "weight after sale")
	assertDecimal(t, dec("3"), item.Stock.Bags, "bags after sale")

	core.ReverseStock(item, line, core.InvoiceTypeSale)
	assertDecimal(t, dec("100"), item.Stock.Quantity, "quantity restored")
	assertDecimal(t, dec("100"), item.Stock.Weight, "weight restored")
	assertDecimal(t, dec("4"), item.Stock.Bags, "bags restored")
}

func TestApplyStockAllowsNegative(t *testing.T) {
	item := &core.Item{Stock: core.Stock{Quantity: dec("10")}}
	line := core.LineItem{Quantity: dec("25")}

	core.ApplyStock(item, line, core.InvoiceTypeSale)
	assertDecimal(t, dec("-15"), item.Stock.Quantity, "oversold quantity")
}

func TestPurchaseLeavesStockUntouched(t *testing.T) {
	item := &core.Item{Stock: core.Stock{Quantity: dec("10")}}
	line := core.LineItem{Quantity: dec("5")}

	core.ApplyStock(item, line, core.InvoiceTypePurchase)
	core.ReverseStock(item, line, core.InvoiceTypePurchase)
	assertDecimal(t, dec("10"), item.Stock.Quantity, "purchase has no stock effect")
}
