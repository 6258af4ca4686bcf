package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/gst-invoicing-api/internal/domain"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/invoicing"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
)

// NumberingConfig controls invoice numbering.
type NumberingConfig struct {
	// Seed is proposed for a factory without invoices. Empty means "001".
	Seed string
	// AutoRenumber saves a new invoice under the next free number when the
	// requested one is taken, instead of failing with domain.ErrDuplicate.
	AutoRenumber bool
}

func (c NumberingConfig) seed() string {
	if s := strings.TrimSpace(c.Seed); s != "" {
		return s
	}
	return invoicing.SeedNumber
}

// SequencerUseCase suggests the next invoice number of a factory.
// The suggestion is not reserved.
type SequencerUseCase struct {
	factoryRepo repository.FactoryRepository
	invoiceRepo repository.InvoiceRepository
	numbering   NumberingConfig
}

// NewSequencerUseCase builds the use case.
func NewSequencerUseCase(
	factoryRepo repository.FactoryRepository,
	invoiceRepo repository.InvoiceRepository,
	numbering NumberingConfig,
) *SequencerUseCase {
	return &SequencerUseCase{factoryRepo: factoryRepo, invoiceRepo: invoiceRepo, numbering: numbering}
}

// NextInvoiceNumber derives the number that follows the most recently created
// invoice of the factory, or the seed when there is none.
func (uc *SequencerUseCase) NextInvoiceNumber(ctx context.Context, userID, factoryID string) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthorized
	}
	if factoryID == "" {
		return "", fmt.Errorf("%w: factory_id is required", domain.ErrInvalidInput)
	}
	factory, err := uc.factoryRepo.GetByIDAndOwner(ctx, factoryID, userID)
	if err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	if factory == nil {
		return "", domain.ErrNotFound
	}
	return nextNumber(ctx, uc.invoiceRepo, factoryID, uc.numbering.seed())
}

func nextNumber(ctx context.Context, invoiceRepo repository.InvoiceRepository, factoryID, seed string) (string, error) {
	last, err := invoiceRepo.GetLatestByFactory(ctx, factoryID)
	if err != nil {
		return "", fmt.Errorf("latest invoice: %w", err)
	}
	if last == nil {
		return seed, nil
	}
	return invoicing.NextNumber(last.InvoiceNo), nil
}
