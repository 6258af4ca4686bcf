package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implements AnalyticsRepository with read-only aggregates over
// invoices. Cancelled invoices are excluded.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository builds the adapter.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func salesScope(b sq.SelectBuilder, factoryID, ownerID string) sq.SelectBuilder {
	return b.From("invoices").
		Where(sq.Eq{"factory_id": factoryID}).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.NotEq{"status": entity.InvoiceStatusCancelled})
}

func (r *AnalyticsRepo) GetFactoryTotals(ctx context.Context, factoryID, ownerID string) (repository.FactorySalesTotals, error) {
	sql, args, err := salesScope(psql.Select("COALESCE(SUM(total_amount), 0)", "COUNT(*)"), factoryID, ownerID).ToSql()
	if err != nil {
		return repository.FactorySalesTotals{}, fmt.Errorf("build factory totals: %w", err)
	}
	var out repository.FactorySalesTotals
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&out.Revenue, &out.InvoiceCount); err != nil {
		return repository.FactorySalesTotals{}, fmt.Errorf("factory totals: %w", err)
	}
	return out, nil
}

func monthlySalesQuery(factoryID, ownerID string, from, to time.Time) sq.SelectBuilder {
	return salesScope(psql.Select(
		"date_trunc('month', date)::date AS month",
		"SUM(total_amount) AS total",
	), factoryID, ownerID).
		Where(sq.GtOrEq{"date": from}).
		Where(sq.Lt{"date": to}).
		GroupBy("1").
		OrderBy("1")
}

func (r *AnalyticsRepo) GetMonthlySales(ctx context.Context, factoryID, ownerID string, from, to time.Time) ([]repository.MonthlySales, error) {
	sql, args, err := monthlySalesQuery(factoryID, ownerID, from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build monthly sales: %w", err)
	}
	var rows []struct {
		Month time.Time       `db:"month"`
		Total decimal.Decimal `db:"total"`
	}
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	out := make([]repository.MonthlySales, 0, len(rows))
	for _, row := range rows {
		m := row.Month.UTC()
		out = append(out, repository.MonthlySales{
			Month: time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, time.UTC),
			Total: row.Total,
		})
	}
	return out, nil
}
