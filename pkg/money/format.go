// Package money formats rupee amounts for invoices: grouped figures in the
// Indian numbering system and amounts in words.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale used for grouping (1,00,000).
var Locale = language.MustParse("en-IN")

var printer = message.NewPrinter(Locale)

// FormatINR renders amount with the rupee sign and two decimals,
// e.g. "₹2,36,000.00" or "-₹12.50".
func FormatINR(amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	paise := fixed[strings.IndexByte(fixed, '.'):]
	rupees := amount.IntPart()
	return sign + "₹" + printer.Sprintf("%v", number.Decimal(rupees, number.Scale(0))) + paise
}

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords spells amount in Indian English:
//
//	236      -> "Rupees Two Hundred Thirty Six Only"
//	1050.5   -> "Rupees One Thousand Fifty and Fifty Paise Only"
//	12500000 -> "Rupees One Crore Twenty Five Lakh Only"
func AmountInWords(amount decimal.Decimal) string {
	var b strings.Builder
	if amount.IsNegative() {
		b.WriteString("Minus ")
		amount = amount.Neg()
	}
	amount = amount.Round(2)
	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Shift(2).IntPart()

	b.WriteString("Rupees ")
	b.WriteString(IndianWords(rupees.IntPart()))
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(IndianWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// IndianWords spells a non-negative integer using crore, lakh and thousand.
func IndianWords(n int64) string {
	if n <= 0 {
		return "Zero"
	}
	var parts []string
	if n >= 10_000_000 {
		parts = append(parts, IndianWords(n/10_000_000)+" Crore")
		n %= 10_000_000
	}
	if n >= 100_000 {
		parts = append(parts, belowHundred(n/100_000)+" Lakh")
		n %= 100_000
	}
	if n >= 1000 {
		parts = append(parts, belowHundred(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, belowHundred(n))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
