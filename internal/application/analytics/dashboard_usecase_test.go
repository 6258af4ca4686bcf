package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoicing-api/internal/application/analytics"
	"github.com/jhoicas/gst-invoicing-api/internal/domain"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/infrastructure/memory"
)

func addInvoice(t *testing.T, s *memory.Store, id, no string, date time.Time, total, status string) {
	t.Helper()
	require.NoError(t, s.Invoices().Create(context.Background(), &entity.Invoice{
		ID:          id,
		InvoiceNo:   no,
		FactoryID:   "f1",
		OwnerID:     "u1",
		Date:        date,
		TotalAmount: decimal.RequireFromString(total),
		Status:      status,
	}))
}

func TestGetFactoryDashboard(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Factories().Create(ctx, &entity.Factory{ID: "f1", OwnerID: "u1"}))

	addInvoice(t, s, "i1", "001", time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), "236", entity.InvoiceStatusPaid)
	addInvoice(t, s, "i2", "002", time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC), "100.50", entity.InvoiceStatusPaid)
	addInvoice(t, s, "i3", "003", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), "50", entity.InvoiceStatusPending)
	addInvoice(t, s, "i4", "004", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "999", entity.InvoiceStatusCancelled)
	// Outside the chart window but part of the revenue.
	addInvoice(t, s, "i5", "005", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "10", entity.InvoiceStatusPaid)

	uc := analytics.NewDashboardUseCase(s.Factories(), s.Analytics()).
		WithClock(func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) })

	got, err := uc.GetFactoryDashboard(ctx, "u1", "f1")
	require.NoError(t, err)

	assert.Equal(t, "396.50", got.TotalRevenue.StringFixed(2))
	assert.Equal(t, int64(4), got.InvoiceCount)
	require.Len(t, got.ChartData, analytics.ChartMonths)

	names := make([]string, 0, len(got.ChartData))
	for _, m := range got.ChartData {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"May 26", "Jun 26", "Jul 26", "Aug 26", "Sep 26", "Oct 26"}, names)
	assert.Equal(t, "50.00", got.ChartData[2].Total.StringFixed(2))
	assert.True(t, got.ChartData[4].Total.IsZero())
	assert.Equal(t, "336.50", got.ChartData[5].Total.StringFixed(2))
}

func TestGetFactoryDashboard_Scoped(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Factories().Create(ctx, &entity.Factory{ID: "f1", OwnerID: "u1"}))
	uc := analytics.NewDashboardUseCase(s.Factories(), s.Analytics())

	_, err := uc.GetFactoryDashboard(ctx, "u2", "f1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetFactoryDashboard(ctx, "", "f1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	got, err := uc.GetFactoryDashboard(ctx, "u1", "f1")
	require.NoError(t, err)
	assert.Zero(t, got.InvoiceCount)
	assert.Len(t, got.ChartData, analytics.ChartMonths)
}
