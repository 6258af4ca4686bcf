package entity

import "github.com/shopspring/decimal"

// InvoiceItem is a line of an invoice. Amount is always Quantity * Rate as
// computed when the invoice was saved.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	Position  int
	Name      string
	Quantity  decimal.Decimal
	Rate      decimal.Decimal
	Amount    decimal.Decimal
}
