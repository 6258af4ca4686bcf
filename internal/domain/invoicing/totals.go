package invoicing

import "github.com/shopspring/decimal"

// Decimal places stored for each kind of value.
const (
	MoneyScale    = 2
	GSTRateScale  = 2
	QuantityScale = 4
	RateScale     = 4
)

var hundred = decimal.NewFromInt(100)

// Line is an item as submitted by the caller. Client-computed amounts are
// not part of it: they are always derived here.
type Line struct {
	Name     string
	Quantity decimal.Decimal
	Rate     decimal.Decimal
}

// Totals are the authoritative monetary values of an invoice.
type Totals struct {
	SubTotal    decimal.Decimal
	GSTRate     decimal.Decimal
	GSTAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// LineAmount returns quantity * rate rounded to MoneyScale.
func LineAmount(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate).Round(MoneyScale)
}

// ComputeTotals returns the amount of every line (same order as lines) and
// the invoice totals:
//
//	sub_total    = sum(amount)
//	gst_amount   = sub_total * gst_rate / 100
//	total_amount = sub_total + gst_amount
//
// A zero gstRate means GST is disabled and yields a zero gst_amount.
func ComputeTotals(lines []Line, gstRate decimal.Decimal) ([]decimal.Decimal, Totals) {
	amounts := make([]decimal.Decimal, len(lines))
	subTotal := decimal.Zero
	for i, l := range lines {
		amounts[i] = LineAmount(l.Quantity, l.Rate)
		subTotal = subTotal.Add(amounts[i])
	}
	gstAmount := decimal.Zero
	if gstRate.IsPositive() {
		gstAmount = subTotal.Mul(gstRate).Div(hundred).Round(MoneyScale)
	}
	return amounts, Totals{
		SubTotal:    subTotal,
		GSTRate:     gstRate,
		GSTAmount:   gstAmount,
		TotalAmount: subTotal.Add(gstAmount),
	}
}

// Matches reports whether client-supplied totals agree with t. Callers use it
// only to log disagreements; t always wins.
func (t Totals) Matches(subTotal, gstAmount, totalAmount decimal.Decimal) bool {
	return t.SubTotal.Equal(subTotal.Round(MoneyScale)) &&
		t.GSTAmount.Equal(gstAmount.Round(MoneyScale)) &&
		t.TotalAmount.Equal(totalAmount.Round(MoneyScale))
}
