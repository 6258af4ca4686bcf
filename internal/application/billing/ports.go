package billing

import (
	"context"

	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
)

// BillingTxRunner runs fn inside one storage transaction. The repositories
// passed to fn are bound to that transaction; returning an error rolls it back.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		factoryRepo repository.FactoryRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// ViewInvalidator drops cached renderings of the given view paths.
type ViewInvalidator interface {
	Invalidate(paths ...string)
}

// FactoryViewPath is the path of the factory detail view (its invoice list).
func FactoryViewPath(factoryID string) string {
	return "/factory/" + factoryID
}

// InvoiceViewPath is the path of the invoice display view.
func InvoiceViewPath(factoryID, invoiceID string) string {
	return "/factory/" + factoryID + "/invoices/" + invoiceID
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(...string) {}
