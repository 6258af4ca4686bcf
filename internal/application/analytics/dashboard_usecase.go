// Package analytics builds the factory dashboard: revenue, invoice count and
// the monthly sales chart.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gst-invoicing-api/internal/application/dto"
	"github.com/jhoicas/gst-invoicing-api/internal/domain"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
	"github.com/jhoicas/gst-invoicing-api/pkg/money"
)

// ChartMonths is the number of months shown in the sales chart, the current
// one included.
const ChartMonths = 6

// DashboardUseCase computes the statistics of one factory. Cancelled
// invoices are left out of every figure.
type DashboardUseCase struct {
	factoryRepo   repository.FactoryRepository
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(factoryRepo repository.FactoryRepository, analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{factoryRepo: factoryRepo, analyticsRepo: analyticsRepo, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetFactoryDashboard runs the totals and the monthly query in parallel.
func (uc *DashboardUseCase) GetFactoryDashboard(ctx context.Context, userID, factoryID string) (*dto.FactoryDashboardDTO, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	factory, err := uc.factoryRepo.GetByIDAndOwner(ctx, factoryID, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: factory: %w", err)
	}
	if factory == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now().UTC()
	to := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	from := to.AddDate(0, -ChartMonths, 0)

	type totalsResult struct {
		totals repository.FactorySalesTotals
		err    error
	}
	type monthlyResult struct {
		months []repository.MonthlySales
		err    error
	}
	totalsCh := make(chan totalsResult, 1)
	monthlyCh := make(chan monthlyResult, 1)

	go func() {
		t, err := uc.analyticsRepo.GetFactoryTotals(ctx, factoryID, userID)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.GetMonthlySales(ctx, factoryID, userID, from, to)
		monthlyCh <- monthlyResult{m, err}
	}()

	totals := <-totalsCh
	monthly := <-monthlyCh
	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totals: %w", totals.err)
	}
	if monthly.err != nil {
		return nil, fmt.Errorf("dashboard: monthly sales: %w", monthly.err)
	}

	revenue := totals.totals.Revenue.Round(2)
	return &dto.FactoryDashboardDTO{
		TotalRevenue:        revenue,
		TotalRevenueDisplay: money.FormatINR(revenue),
		InvoiceCount:        totals.totals.InvoiceCount,
		ChartData:           chartData(from, monthly.months),
	}, nil
}

// chartData lays out ChartMonths bars starting at from, zero-filling months
// without sales.
func chartData(from time.Time, months []repository.MonthlySales) []dto.MonthlySalesDTO {
	byMonth := make(map[string]decimal.Decimal, len(months))
	for _, m := range months {
		byMonth[m.Month.Format("2006-01")] = m.Total
	}
	out := make([]dto.MonthlySalesDTO, 0, ChartMonths)
	for i := 0; i < ChartMonths; i++ {
		m := from.AddDate(0, i, 0)
		total, ok := byMonth[m.Format("2006-01")]
		if !ok {
			total = decimal.Zero
		}
		out = append(out, dto.MonthlySalesDTO{Name: monthLabel(m), Total: total.Round(2)})
	}
	return out
}

// monthLabel returns a short label such as "Oct 26".
func monthLabel(t time.Time) string {
	return t.Format("Jan 06")
}
