package entity

import "time"

// Customer is a billing contact of a user. Invoices copy its fields at issue
// time instead of referencing it.
type Customer struct {
	ID        string
	Name      string
	Address   string
	TaxID     string // GSTIN
	Mobile    string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
