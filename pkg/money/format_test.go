package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gst-invoicing-api/pkg/money"
)

func TestAmountInWords(t *testing.T) {
	cases := map[string]string{
		"0":          "Rupees Zero Only",
		"7":          "Rupees Seven Only",
		"19":         "Rupees Nineteen Only",
		"40":         "Rupees Forty Only",
		"236":        "Rupees Two Hundred Thirty Six Only",
		"1050.50":    "Rupees One Thousand Fifty and Fifty Paise Only",
		"100000":     "Rupees One Lakh Only",
		"236000":     "Rupees Two Lakh Thirty Six Thousand Only",
		"12500000":   "Rupees One Crore Twenty Five Lakh Only",
		"0.05":       "Rupees Zero and Five Paise Only",
		"1000000000": "Rupees One Hundred Crore Only",
		"-12.5":      "Minus Rupees Twelve and Fifty Paise Only",
		"99.999":     "Rupees One Hundred Only",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, money.AmountInWords(decimal.RequireFromString(in)))
		})
	}
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹236.00", money.FormatINR(decimal.RequireFromString("236")))
	assert.Equal(t, "₹0.50", money.FormatINR(decimal.RequireFromString("0.5")))
	assert.Equal(t, "-₹12.50", money.FormatINR(decimal.RequireFromString("-12.5")))
	assert.Equal(t, "₹2,36,000.00", money.FormatINR(decimal.RequireFromString("236000")))
	assert.Equal(t, "₹1,000.00", money.FormatINR(decimal.RequireFromString("999.999")))
}

func TestFormatINR_KeepsPaiseOnLargeAmounts(t *testing.T) {
	assert.Equal(t, "₹9,99,99,99,99,99,999.99", money.FormatINR(decimal.RequireFromString("99999999999999.99")))
	assert.Equal(t, "₹1,23,45,67,89,01,23,456.78", money.FormatINR(decimal.RequireFromString("1234567890123456.78")))
	assert.Equal(t, "-₹1,23,45,67,89,01,23,456.78", money.FormatINR(decimal.RequireFromString("-1234567890123456.78")))
}
