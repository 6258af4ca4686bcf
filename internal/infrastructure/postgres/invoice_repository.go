package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gst-invoicing-api/internal/domain"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or a tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

var invoiceColumns = []string{
	"id", "invoice_no", "date", "factory_id", "owner_id",
	"customer_name", "customer_address", "customer_mobile", "customer_tax_id",
	"sub_total", "gst_rate", "gst_amount", "total_amount", "status",
	"created_at", "updated_at",
}

type invoiceRow struct {
	ID              string          `db:"id"`
	InvoiceNo       string          `db:"invoice_no"`
	Date            time.Time       `db:"date"`
	FactoryID       string          `db:"factory_id"`
	OwnerID         string          `db:"owner_id"`
	CustomerName    string          `db:"customer_name"`
	CustomerAddress string          `db:"customer_address"`
	CustomerMobile  string          `db:"customer_mobile"`
	CustomerTaxID   string          `db:"customer_tax_id"`
	SubTotal        decimal.Decimal `db:"sub_total"`
	GSTRate         decimal.Decimal `db:"gst_rate"`
	GSTAmount       decimal.Decimal `db:"gst_amount"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Status          string          `db:"status"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (r invoiceRow) toEntity() *entity.Invoice {
	return &entity.Invoice{
		ID:              r.ID,
		InvoiceNo:       r.InvoiceNo,
		Date:            r.Date,
		FactoryID:       r.FactoryID,
		OwnerID:         r.OwnerID,
		CustomerName:    r.CustomerName,
		CustomerAddress: r.CustomerAddress,
		CustomerMobile:  r.CustomerMobile,
		CustomerTaxID:   r.CustomerTaxID,
		SubTotal:        r.SubTotal,
		GSTRate:         r.GSTRate,
		GSTAmount:       r.GSTAmount,
		TotalAmount:     r.TotalAmount,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type itemRow struct {
	ID        string          `db:"id"`
	InvoiceID string          `db:"invoice_id"`
	Position  int             `db:"position"`
	Name      string          `db:"name"`
	Quantity  decimal.Decimal `db:"quantity"`
	Rate      decimal.Decimal `db:"rate"`
	Amount    decimal.Decimal `db:"amount"`
}

// Create inserts the header. A number already used in the factory fails with
// domain.ErrDuplicate (unique index ux_invoices_factory_invoice_no).
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	sql, args, err := psql.Insert("invoices").
		Columns(invoiceColumns...).
		Values(
			inv.ID, inv.InvoiceNo, inv.Date, inv.FactoryID, inv.OwnerID,
			inv.CustomerName, inv.CustomerAddress, inv.CustomerMobile, inv.CustomerTaxID,
			inv.SubTotal, inv.GSTRate, inv.GSTAmount, inv.TotalAmount, inv.Status,
			inv.CreatedAt, inv.UpdatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("build insert invoice: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %q: %w", inv.InvoiceNo, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert invoice: %w: %s", errInvoiceFactory, inv.FactoryID)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func itemsInsert(items []*entity.InvoiceItem) sq.InsertBuilder {
	b := psql.Insert("invoice_items").
		Columns("id", "invoice_id", "position", "name", "quantity", "rate", "amount")
	for _, it := range items {
		b = b.Values(it.ID, it.InvoiceID, it.Position, it.Name, it.Quantity, it.Rate, it.Amount)
	}
	return b
}

// CreateItems inserts every item with a single multi-row INSERT.
func (r *InvoiceRepo) CreateItems(ctx context.Context, items []*entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	sql, args, err := itemsInsert(items).ToSql()
	if err != nil {
		return fmt.Errorf("build insert items: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice items: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET invoice_no       = $3,
		    date             = $4,
		    customer_name    = $5,
		    customer_address = $6,
		    customer_mobile  = $7,
		    customer_tax_id  = $8,
		    sub_total        = $9,
		    gst_rate         = $10,
		    gst_amount       = $11,
		    total_amount     = $12,
		    status           = $13,
		    updated_at       = $14
		WHERE id = $1 AND owner_id = $2`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.OwnerID, inv.InvoiceNo, inv.Date,
		inv.CustomerName, inv.CustomerAddress, inv.CustomerMobile, inv.CustomerTaxID,
		inv.SubTotal, inv.GSTRate, inv.GSTAmount, inv.TotalAmount, inv.Status, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %q: %w", inv.InvoiceNo, domain.ErrDuplicate)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) DeleteItems(ctx context.Context, invoiceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, psql.Select(invoiceColumns...).From("invoices").Where(sq.Eq{"id": id}))
}

func (r *InvoiceRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Invoice, error) {
	return r.getOne(ctx, psql.Select(invoiceColumns...).From("invoices").
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"owner_id": ownerID}))
}

// latestQuery orders by created_seq alone: the identity is drawn at insert
// time, under the factory lock, while created_at comes from the app clock.
func latestQuery(factoryID string) sq.SelectBuilder {
	return psql.Select(invoiceColumns...).From("invoices").
		Where(sq.Eq{"factory_id": factoryID}).
		OrderBy("created_seq DESC").
		Limit(1)
}

func (r *InvoiceRepo) GetLatestByFactory(ctx context.Context, factoryID string) (*entity.Invoice, error) {
	return r.getOne(ctx, latestQuery(factoryID))
}

func (r *InvoiceRepo) getOne(ctx context.Context, b sq.SelectBuilder) (*entity.Invoice, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select invoice: %w", err)
	}
	var row invoiceRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return row.toEntity(), nil
}

func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, position, name, quantity, rate, amount
		FROM invoice_items WHERE invoice_id = $1
		ORDER BY position`
	var rows []itemRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, invoiceID); err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	out := make([]*entity.InvoiceItem, 0, len(rows))
	for _, it := range rows {
		out = append(out, &entity.InvoiceItem{
			ID:        it.ID,
			InvoiceID: it.InvoiceID,
			Position:  it.Position,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Rate:      it.Rate,
			Amount:    it.Amount,
		})
	}
	return out, nil
}

func (r *InvoiceRepo) NumberExists(ctx context.Context, factoryID, invoiceNo, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM invoices
			WHERE factory_id = $1 AND invoice_no = $2 AND id <> $3
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, factoryID, invoiceNo, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check invoice number: %w", err)
	}
	return exists, nil
}

func filterWhere(b sq.SelectBuilder, f repository.InvoiceFilter) sq.SelectBuilder {
	b = b.Where(sq.Eq{"factory_id": f.FactoryID}).Where(sq.Eq{"owner_id": f.OwnerID})
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"date": *f.To})
	}
	return b
}

func listQuery(f repository.InvoiceFilter) sq.SelectBuilder {
	b := filterWhere(psql.Select(invoiceColumns...).From("invoices"), f).
		OrderBy("created_seq DESC")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	return b
}

func (r *InvoiceRepo) ListByFactory(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	countSQL, countArgs, err := filterWhere(psql.Select("COUNT(*)").From("invoices"), f).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count invoices: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	sql, args, err := listQuery(f).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list invoices: %w", err)
	}
	var rows []invoiceRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	out := make([]*entity.Invoice, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, total, nil
}

// errInvoiceFactory marks an insert against a factory that does not exist.
var errInvoiceFactory = errors.New("invoice factory does not exist")
