package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice status values. Saving an invoice always leaves it PAID.
const (
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusPending   = "PENDING"
	InvoiceStatusCancelled = "CANCELLED"
)

// Invoice is the header of an invoice aggregate.
type Invoice struct {
	ID        string
	InvoiceNo string // free-form, unique per factory
	Date      time.Time
	FactoryID string
	OwnerID   string

	// Customer snapshot taken when the invoice was issued or last edited.
	CustomerName    string
	CustomerAddress string
	CustomerMobile  string
	CustomerTaxID   string

	SubTotal    decimal.Decimal
	GSTRate     decimal.Decimal // percentage, zero when GST is disabled
	GSTAmount   decimal.Decimal
	TotalAmount decimal.Decimal
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
