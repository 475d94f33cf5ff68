package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	wordOnes  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	wordTens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
	wordTeens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
)

func twoDigitWords(n int64) string {
	switch {
	case n < 10:
		return wordOnes[n]
	case n < 20:
		return wordTeens[n-10]
	default:
		s := wordTens[n/10]
		if n%10 != 0 {
			s += " " + wordOnes[n%10]
		}
		return s
	}
}

func threeDigitWords(n int64) string {
	if n == 0 {
		return ""
	}
	if n < 100 {
		return twoDigitWords(n)
	}
	s := wordOnes[n/100] + " Hundred"
	if n%100 != 0 {
		s += " and " + twoDigitWords(n%100)
	}
	return s
}

// AmountInWords renders an amount as Indian-system currency words, e.g.
// 125000 → "One Lakh Twenty Five Thousand Rupees Only". Paise are spoken
// when the fractional part is non-zero. The exact phrasing is a document
// rendering contract and must stay stable.
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "Zero Rupees Only"
	}

	prefix := ""
	if amount.IsNegative() {
		prefix = "Minus "
		amount = amount.Neg()
	}

	rupees := amount.Floor().IntPart()
	paise := amount.Sub(amount.Floor()).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if paise >= 100 {
		rupees++
		paise -= 100
	}

	var b strings.Builder
	b.WriteString(prefix)

	if crores := rupees / 10000000; crores > 0 {
		b.WriteString(threeDigitWords(crores))
		b.WriteString(" Crore ")
	}
	if lakhs := (rupees % 10000000) / 100000; lakhs > 0 {
		b.WriteString(twoDigitWords(lakhs))
		b.WriteString(" Lakh ")
	}
	if thousands := (rupees % 100000) / 1000; thousands > 0 {
		b.WriteString(twoDigitWords(thousands))
		b.WriteString(" Thousand ")
	}
	if remaining := rupees % 1000; remaining > 0 {
		b.WriteString(threeDigitWords(remaining))
		b.WriteString(" ")
	}

	b.WriteString("Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(twoDigitWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")

	return strings.TrimSpace(b.String())
}
