package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
)

// InvoiceFilter selects invoices of one factory for listing.
type InvoiceFilter struct {
	FactoryID string
	OwnerID   string
	From      *time.Time // inclusive, on invoice date
	To        *time.Time // inclusive, on invoice date
	Limit     int
	Offset    int
}

// InvoiceRepository is the persistence port for the invoice aggregate.
// Lookups return (nil, nil) when nothing matches.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	// CreateItems inserts all items in one statement. An empty slice is a no-op.
	CreateItems(ctx context.Context, items []*entity.InvoiceItem) error
	// Update overwrites the mutable header fields of the invoice with the same
	// ID and owner.
	Update(ctx context.Context, invoice *entity.Invoice) error
	DeleteItems(ctx context.Context, invoiceID string) error

	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Invoice, error)
	// GetItems returns the items in the order they were submitted.
	GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)

	// GetLatestByFactory returns the most recently created invoice of the
	// factory (insertion order, not invoice date).
	GetLatestByFactory(ctx context.Context, factoryID string) (*entity.Invoice, error)
	// NumberExists reports whether invoiceNo is used in the factory by an
	// invoice other than excludeID.
	NumberExists(ctx context.Context, factoryID, invoiceNo, excludeID string) (bool, error)

	// ListByFactory returns one page of invoices, newest first, and the total
	// number of matching rows.
	ListByFactory(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, int, error)
}
