package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/4ugusta/chaibooks-backend/internal/core"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Rupees Only"},
		{"1", "One Rupees Only"},
		{"18", "Eighteen Rupees Only"},
		{"45", "Forty Five Rupees Only"},
		{"100", "One Hundred Rupees Only"},
		{"118", "One Hundred and Eighteen Rupees Only"},
		{"1180", "One Thousand One Hundred and Eighty Rupees Only"},
		{"125000", "One Lakh Twenty Five Thousand Rupees Only"},
		{"10000000", "One Crore Rupees Only"},
		{"12345678", "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred and Seventy Eight Rupees Only"},
		{"1234.56", "One Thousand Two Hundred and Thirty Four Rupees and Fifty Six Paise Only"},
		{"0.05", "Rupees and Five Paise Only"},
		{"-250", "Minus Two Hundred and Fifty Rupees Only"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, core.AmountInWords(dec(tt.amount)))
		})
	}
}

func TestAmountInWordsCarriesRoundedPaise(t *testing.T) {
	// 4.999 rounds to 100 paise, which must carry into the rupee part
	// instead of being spoken as "Hundred Paise".
	assert.Equal(t, "Five Rupees Only", core.AmountInWords(dec("4.999")))
}
