package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
)

// AnalyticsRepository implements repository.AnalyticsRepository over the
// committed state.
type AnalyticsRepository struct {
	store *Store
}

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

func (r *AnalyticsRepository) GetFactoryTotals(ctx context.Context, factoryID, ownerID string) (repository.FactorySalesTotals, error) {
	out := repository.FactorySalesTotals{Revenue: decimal.Zero}
	err := r.store.read(nil, func(st *state) error {
		for _, inv := range st.invoices {
			if !counts(inv, factoryID, ownerID) {
				continue
			}
			out.Revenue = out.Revenue.Add(inv.TotalAmount)
			out.InvoiceCount++
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepository) GetMonthlySales(ctx context.Context, factoryID, ownerID string, from, to time.Time) ([]repository.MonthlySales, error) {
	byMonth := map[time.Time]decimal.Decimal{}
	err := r.store.read(nil, func(st *state) error {
		for _, inv := range st.invoices {
			if !counts(inv, factoryID, ownerID) || inv.Date.Before(from) || !inv.Date.Before(to) {
				continue
			}
			d := inv.Date.UTC()
			m := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
			byMonth[m] = byMonth[m].Add(inv.TotalAmount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.MonthlySales, 0, len(byMonth))
	for m, total := range byMonth {
		out = append(out, repository.MonthlySales{Month: m, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out, nil
}

func counts(inv entity.Invoice, factoryID, ownerID string) bool {
	return inv.FactoryID == factoryID && inv.OwnerID == ownerID && inv.Status != entity.InvoiceStatusCancelled
}
