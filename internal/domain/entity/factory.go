package entity

import "time"

// Factory is a business unit owned by a single user. Invoices are issued
// under a factory and are removed with it.
type Factory struct {
	ID        string
	Name      string
	Address   string
	TaxID     string // GSTIN, optional
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
