package core_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ugusta/chaibooks-backend/internal/core"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDecimal(t *testing.T, want, got decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, want.Equal(got), "%s: want %s, got %s", label, want, got)
}

func TestSplitTax(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		rate       string
		interState bool
		cgst       string
		sgst       string
		igst       string
		total      string
		grand      string
	}{
		{
			name:   "intra-state splits evenly",
			amount: "1000", rate: "18",
			cgst: "90", sgst: "90", igst: "0", total: "180", grand: "1180",
		},
		{
			name:   "inter-state is IGST only",
			amount: "1000", rate: "18", interState: true,
			cgst: "0", sgst: "0", igst: "180", total: "180", grand: "1180",
		},
		{
			name:   "zero rate",
			amount: "500", rate: "0",
			cgst: "0", sgst: "0", igst: "0", total: "0", grand: "500",
		},
		{
			name:   "odd rate halves without rounding",
			amount: "100", rate: "5",
			cgst: "2.5", sgst: "2.5", igst: "0", total: "5", grand: "105",
		},
		{
			name:   "negative amount keeps its sign",
			amount: "-1000", rate: "18",
			cgst: "-90", sgst: "-90", igst: "0", total: "-180", grand: "-1180",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := core.SplitTax(dec(tt.amount), dec(tt.rate), tt.interState)
			assertDecimal(t, dec(tt.cgst), split.CGST, "cgst")
			assertDecimal(t, dec(tt.sgst), split.SGST, "sgst")
			assertDecimal(t, dec(tt.igst), split.IGST, "igst")
			assertDecimal(t, dec(tt.total), split.Total, "total")
			assertDecimal(t, dec(tt.grand), split.GrandTotal, "grand total")
		})
	}
}

func TestReverseTax(t *testing.T) {
	base, tax := core.ReverseTax(dec("1180"), dec("18"))
	assertDecimal(t, dec("1000"), base, "base")
	assertDecimal(t, dec("180"), tax, "tax")
}

func TestReverseTaxRoundTripsSplitTax(t *testing.T) {
	amount := dec("2487.35")
	rate := dec("12")

	split := core.SplitTax(amount, rate, false)
	base, tax := core.ReverseTax(split.GrandTotal, rate)

	require.True(t, base.Sub(amount).Abs().LessThan(dec("0.0000001")),
		"base drifted: %s", base)
	require.True(t, tax.Sub(split.Total).Abs().LessThan(dec("0.0000001")),
		"tax drifted: %s", tax)
}
