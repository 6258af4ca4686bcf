package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gst-invoicing-api/internal/application/dto"
	"github.com/jhoicas/gst-invoicing-api/internal/domain"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/invoicing"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
	"github.com/jhoicas/gst-invoicing-api/pkg/money"
)

// maxRenumberAttempts bounds the search for a free number when the
// requested one is taken.
const maxRenumberAttempts = 100

// DateLayout is the calendar date format of invoice dates on the wire.
const DateLayout = "2006-01-02"

// InvoiceUseCase saves and reads invoice aggregates (header + items).
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	factoryRepo  repository.FactoryRepository
	customerRepo repository.CustomerRepository
	invalidator  ViewInvalidator
	numbering    NumberingConfig
	log          zerolog.Logger
	now          func() time.Time
}

// NewInvoiceUseCase builds the use case. invalidator may be nil.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	factoryRepo repository.FactoryRepository,
	customerRepo repository.CustomerRepository,
	invalidator ViewInvalidator,
	numbering NumberingConfig,
	log zerolog.Logger,
) *InvoiceUseCase {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		factoryRepo:  factoryRepo,
		customerRepo: customerRepo,
		invalidator:  invalidator,
		numbering:    numbering,
		log:          log.With().Str("component", "invoice_usecase").Logger(),
		now:          time.Now,
	}
}

// prepared is a validated request with server-side totals.
type prepared struct {
	draft   invoicing.Draft
	amounts []decimal.Decimal
	totals  invoicing.Totals
}

// CreateInvoice validates the request, recomputes totals and persists the
// header and its items in one transaction, under a lock on the factory.
//
// A number already used in the factory is replaced by the next free one when
// auto-renumbering is enabled; otherwise domain.ErrDuplicate is returned.
// Storage failures are logged and reported as domain.ErrInvoiceCreateFailed.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.InvoiceRequest) (*dto.InvoiceSavedResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	in.FactoryID = strings.TrimSpace(in.FactoryID)
	p, err := uc.prepare(ctx, userID, in)
	if err != nil {
		if isClientError(err) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("user_id", userID).Msg("create invoice failed")
		return nil, domain.ErrInvoiceCreateFailed
	}

	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		FactoryID: in.FactoryID,
		OwnerID:   userID,
		Status:    entity.InvoiceStatusPaid,
	}
	p.apply(inv)
	requested := inv.InvoiceNo

	err = uc.txRunner.RunBilling(ctx, func(factoryRepo repository.FactoryRepository, invoiceRepo repository.InvoiceRepository) error {
		factory, err := factoryRepo.LockByIDAndOwner(ctx, in.FactoryID, userID)
		if err != nil {
			return fmt.Errorf("lock factory: %w", err)
		}
		if factory == nil {
			return domain.ErrNotFound
		}
		no, err := uc.freeNumber(ctx, invoiceRepo, in.FactoryID, inv.InvoiceNo)
		if err != nil {
			return err
		}
		inv.InvoiceNo = no
		now := uc.now().UTC()
		inv.CreatedAt, inv.UpdatedAt = now, now
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}
		if err := invoiceRepo.CreateItems(ctx, p.items(inv.ID)); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		return nil
	})
	if err != nil {
		if isClientError(err) {
			return nil, err
		}
		uc.log.Error().Err(err).
			Str("user_id", userID).
			Str("factory_id", in.FactoryID).
			Str("invoice_no", requested).
			Msg("create invoice failed")
		return nil, domain.ErrInvoiceCreateFailed
	}

	uc.invalidator.Invalidate(FactoryViewPath(inv.FactoryID), InvoiceViewPath(inv.FactoryID, inv.ID))
	if inv.InvoiceNo != requested {
		uc.log.Info().
			Str("invoice_id", inv.ID).
			Str("requested", requested).
			Str("invoice_no", inv.InvoiceNo).
			Msg("invoice number taken, renumbered")
	}
	return &dto.InvoiceSavedResponse{
		Success:    true,
		ID:         inv.ID,
		InvoiceNo:  inv.InvoiceNo,
		Renumbered: inv.InvoiceNo != requested,
	}, nil
}

// freeNumber returns want when it is unused in the factory. Otherwise it
// walks the sequence from the latest invoice until a free number is found,
// or fails with domain.ErrDuplicate when auto-renumbering is off.
func (uc *InvoiceUseCase) freeNumber(ctx context.Context, invoiceRepo repository.InvoiceRepository, factoryID, want string) (string, error) {
	taken, err := invoiceRepo.NumberExists(ctx, factoryID, want, "")
	if err != nil {
		return "", fmt.Errorf("check invoice number: %w", err)
	}
	if !taken {
		return want, nil
	}
	if !uc.numbering.AutoRenumber {
		return "", fmt.Errorf("%w: invoice number %q already exists", domain.ErrDuplicate, want)
	}
	candidate, err := nextNumber(ctx, invoiceRepo, factoryID, uc.numbering.seed())
	if err != nil {
		return "", err
	}
	for i := 0; i < maxRenumberAttempts; i++ {
		taken, err := invoiceRepo.NumberExists(ctx, factoryID, candidate, "")
		if err != nil {
			return "", fmt.Errorf("check invoice number: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = invoicing.NextNumber(candidate)
	}
	return "", fmt.Errorf("%w: no free invoice number after %q", domain.ErrDuplicate, want)
}

// UpdateInvoice replaces the header fields and the whole item set of an
// invoice owned by the caller, in one transaction. The factory view is
// invalidated whether or not the update succeeds.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, userID, invoiceID string, in dto.InvoiceRequest) (*dto.InvoiceSavedResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(invoiceID) == "" {
		return nil, fmt.Errorf("%w: invoice id is required", domain.ErrInvalidInput)
	}
	p, err := uc.prepare(ctx, userID, in)
	if err != nil {
		if isClientError(err) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("user_id", userID).Msg("update invoice failed")
		return nil, domain.ErrInvoiceUpdateFailed
	}

	factoryID := strings.TrimSpace(in.FactoryID)
	var inv *entity.Invoice
	err = uc.txRunner.RunBilling(ctx, func(factoryRepo repository.FactoryRepository, invoiceRepo repository.InvoiceRepository) error {
		current, err := invoiceRepo.GetByIDAndOwner(ctx, invoiceID, userID)
		if err != nil {
			return fmt.Errorf("load invoice: %w", err)
		}
		if current == nil {
			return domain.ErrNotFound
		}
		factoryID = current.FactoryID

		factory, err := factoryRepo.LockByIDAndOwner(ctx, current.FactoryID, userID)
		if err != nil {
			return fmt.Errorf("lock factory: %w", err)
		}
		if factory == nil {
			return domain.ErrNotFound
		}
		taken, err := invoiceRepo.NumberExists(ctx, current.FactoryID, p.draft.InvoiceNo, current.ID)
		if err != nil {
			return fmt.Errorf("check invoice number: %w", err)
		}
		if taken {
			return fmt.Errorf("%w: invoice number %q already exists", domain.ErrDuplicate, p.draft.InvoiceNo)
		}

		p.apply(current)
		current.Status = entity.InvoiceStatusPaid
		current.UpdatedAt = uc.now().UTC()
		if err := invoiceRepo.Update(ctx, current); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		if err := invoiceRepo.DeleteItems(ctx, current.ID); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if err := invoiceRepo.CreateItems(ctx, p.items(current.ID)); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		inv = current
		return nil
	})
	if err != nil {
		if factoryID != "" {
			uc.invalidator.Invalidate(FactoryViewPath(factoryID))
		}
		if isClientError(err) {
			return nil, err
		}
		uc.log.Error().Err(err).
			Str("user_id", userID).
			Str("invoice_id", invoiceID).
			Msg("update invoice failed")
		return nil, domain.ErrInvoiceUpdateFailed
	}

	uc.invalidator.Invalidate(FactoryViewPath(inv.FactoryID), InvoiceViewPath(inv.FactoryID, inv.ID))
	return &dto.InvoiceSavedResponse{Success: true, ID: inv.ID, InvoiceNo: inv.InvoiceNo}, nil
}

// GetInvoice loads an invoice and its items for display. The lookup is by id
// alone; CanEdit tells whether the caller owns the invoice.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, userID, invoiceID string) (*dto.InvoiceResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	return toInvoiceResponse(inv, items, inv.OwnerID == userID), nil
}

// ListInvoices returns one page of the invoices of a factory owned by the
// caller, newest first.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, userID, factoryID string, q dto.InvoiceListQuery) (*dto.InvoiceListResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	page := dto.PageRequest{Limit: q.Limit, Offset: q.Offset}
	page.DefaultPage()
	filter := repository.InvoiceFilter{
		FactoryID: factoryID,
		OwnerID:   userID,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	var err error
	if filter.From, err = parseOptionalDate("from", q.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseOptionalDate("to", q.To); err != nil {
		return nil, err
	}

	factory, err := uc.factoryRepo.GetByIDAndOwner(ctx, factoryID, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if factory == nil {
		return nil, domain.ErrNotFound
	}
	list, total, err := uc.invoiceRepo.ListByFactory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	out := make([]dto.InvoiceSummaryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.InvoiceSummaryResponse{
			ID:           inv.ID,
			InvoiceNo:    inv.InvoiceNo,
			Date:         inv.Date.Format(DateLayout),
			CustomerName: inv.CustomerName,
			TotalAmount:  inv.TotalAmount,
			Status:       inv.Status,
		})
	}
	return &dto.InvoiceListResponse{
		Invoices: out,
		Page:     dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// prepare parses and validates the request and computes its totals. The
// customer snapshot is completed from CustomerID when the caller owns it.
func (uc *InvoiceUseCase) prepare(ctx context.Context, userID string, in dto.InvoiceRequest) (*prepared, error) {
	var errs []error
	if strings.TrimSpace(in.FactoryID) == "" {
		errs = append(errs, errors.New("factory_id is required"))
	}
	date, err := ParseDate(in.Date)
	if err != nil && strings.TrimSpace(in.Date) != "" {
		errs = append(errs, err)
	}

	if in.CustomerID != "" {
		c, err := uc.customerRepo.GetByIDAndOwner(ctx, in.CustomerID, userID)
		if err != nil {
			return nil, fmt.Errorf("load customer: %w", err)
		}
		if c != nil {
			fillSnapshot(&in, c)
		}
	}

	lines := make([]invoicing.Line, len(in.Items))
	for i, it := range in.Items {
		lines[i] = invoicing.Line{Name: strings.TrimSpace(it.Name), Quantity: it.Quantity, Rate: it.Rate}
	}
	draft := invoicing.Draft{
		InvoiceNo:       strings.TrimSpace(in.InvoiceNo),
		Date:            date,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		CustomerMobile:  strings.TrimSpace(in.CustomerMobile),
		CustomerTaxID:   strings.TrimSpace(in.CustomerTaxID),
		GSTRate:         in.GSTRate,
		Lines:           lines,
	}
	if err := draft.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		if len(errs) == 1 && errors.Is(errs[0], domain.ErrInvalidInput) {
			return nil, errs[0]
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}

	amounts, totals := invoicing.ComputeTotals(lines, in.GSTRate)
	if !totals.Matches(in.SubTotal, in.GSTAmount, in.TotalAmount) {
		uc.log.Debug().
			Str("invoice_no", draft.InvoiceNo).
			Str("client_total", in.TotalAmount.String()).
			Str("total", totals.TotalAmount.String()).
			Msg("client totals differ, using recomputed values")
	}
	return &prepared{draft: draft, amounts: amounts, totals: totals}, nil
}

func (p *prepared) apply(inv *entity.Invoice) {
	inv.InvoiceNo = p.draft.InvoiceNo
	inv.Date = p.draft.Date
	inv.CustomerName = p.draft.CustomerName
	inv.CustomerAddress = p.draft.CustomerAddress
	inv.CustomerMobile = p.draft.CustomerMobile
	inv.CustomerTaxID = p.draft.CustomerTaxID
	inv.SubTotal = p.totals.SubTotal
	inv.GSTRate = p.totals.GSTRate
	inv.GSTAmount = p.totals.GSTAmount
	inv.TotalAmount = p.totals.TotalAmount
}

func (p *prepared) items(invoiceID string) []*entity.InvoiceItem {
	items := make([]*entity.InvoiceItem, len(p.draft.Lines))
	for i, l := range p.draft.Lines {
		items[i] = &entity.InvoiceItem{
			ID:        uuid.New().String(),
			InvoiceID: invoiceID,
			Position:  i,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Rate:      l.Rate,
			Amount:    p.amounts[i],
		}
	}
	return items
}

func fillSnapshot(in *dto.InvoiceRequest, c *entity.Customer) {
	if strings.TrimSpace(in.CustomerName) == "" {
		in.CustomerName = c.Name
	}
	if strings.TrimSpace(in.CustomerAddress) == "" {
		in.CustomerAddress = c.Address
	}
	if strings.TrimSpace(in.CustomerMobile) == "" {
		in.CustomerMobile = c.Mobile
	}
	if strings.TrimSpace(in.CustomerTaxID) == "" {
		in.CustomerTaxID = c.TaxID
	}
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp and
// returns midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseOptionalDate(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, field, err)
	}
	return &t, nil
}

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem, canEdit bool) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:              inv.ID,
		FactoryID:       inv.FactoryID,
		InvoiceNo:       inv.InvoiceNo,
		Date:            inv.Date.Format(DateLayout),
		CustomerName:    inv.CustomerName,
		CustomerAddress: inv.CustomerAddress,
		CustomerMobile:  inv.CustomerMobile,
		CustomerTaxID:   inv.CustomerTaxID,
		SubTotal:        inv.SubTotal,
		GSTRate:         inv.GSTRate,
		GSTAmount:       inv.GSTAmount,
		TotalAmount:     inv.TotalAmount,
		TotalDisplay:    money.FormatINR(inv.TotalAmount),
		TotalInWords:    money.AmountInWords(inv.TotalAmount),
		Status:          inv.Status,
		CanEdit:         canEdit,
		Items:           make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Rate:     it.Rate,
			Amount:   it.Amount,
		})
	}
	return out
}

// isClientError reports errors that are returned to the caller as they are.
func isClientError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrDuplicate) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrUnauthorized)
}
