package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoicing-api/internal/domain"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
	"github.com/jhoicas/gst-invoicing-api/internal/infrastructure/memory"
)

func seedFactory(t *testing.T, s *memory.Store, id, owner string) {
	t.Helper()
	require.NoError(t, s.Factories().Create(context.Background(), &entity.Factory{ID: id, Name: id, OwnerID: owner}))
}

func invoice(id, factoryID, no string) *entity.Invoice {
	return &entity.Invoice{
		ID:          id,
		FactoryID:   factoryID,
		OwnerID:     "u1",
		InvoiceNo:   no,
		Date:        time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(100),
		Status:      entity.InvoiceStatusPaid,
	}
}

func TestRunBilling_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedFactory(t, s, "f1", "u1")

	err := s.RunBilling(ctx, func(_ repository.FactoryRepository, inv repository.InvoiceRepository) error {
		if err := inv.Create(ctx, invoice("i1", "f1", "001")); err != nil {
			return err
		}
		return inv.CreateItems(ctx, []*entity.InvoiceItem{
			{ID: "a", InvoiceID: "i1", Position: 1, Name: "second"},
			{ID: "b", InvoiceID: "i1", Position: 0, Name: "first"},
		})
	})
	require.NoError(t, err)

	got, err := s.Invoices().GetByID(ctx, "i1")
	require.NoError(t, err)
	require.NotNil(t, got)
	items, err := s.Invoices().GetItems(ctx, "i1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Name)
	assert.Equal(t, "second", items[1].Name)
}

func TestRunBilling_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedFactory(t, s, "f1", "u1")
	boom := errors.New("boom")
	s.FailOn(memory.OpCreateItems, boom)

	err := s.RunBilling(ctx, func(_ repository.FactoryRepository, inv repository.InvoiceRepository) error {
		if err := inv.Create(ctx, invoice("i1", "f1", "001")); err != nil {
			return err
		}
		return inv.CreateItems(ctx, []*entity.InvoiceItem{{ID: "a", InvoiceID: "i1", Name: "x"}})
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Invoices().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInvoiceRepository_NumberUniquePerFactory(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedFactory(t, s, "f1", "u1")
	seedFactory(t, s, "f2", "u1")
	repo := s.Invoices()

	require.NoError(t, repo.Create(ctx, invoice("i1", "f1", "001")))
	require.NoError(t, repo.Create(ctx, invoice("i2", "f2", "001")))
	err := repo.Create(ctx, invoice("i3", "f1", "001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	taken, err := repo.NumberExists(ctx, "f1", "001", "i1")
	require.NoError(t, err)
	assert.False(t, taken)
	taken, err = repo.NumberExists(ctx, "f1", "001", "")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestInvoiceRepository_LatestIsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedFactory(t, s, "f1", "u1")
	repo := s.Invoices()

	late := invoice("i1", "f1", "010")
	late.Date = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, invoice("i2", "f1", "A-007")))

	got, err := repo.GetLatestByFactory(ctx, "f1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A-007", got.InvoiceNo)

	none, err := repo.GetLatestByFactory(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestInvoiceRepository_ListByFactory(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedFactory(t, s, "f1", "u1")
	repo := s.Invoices()
	for i, no := range []string{"001", "002", "003"} {
		inv := invoice(no, "f1", no)
		inv.Date = time.Date(2026, 10, i+1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Create(ctx, inv))
	}

	page, total, err := repo.ListByFactory(ctx, repository.InvoiceFilter{FactoryID: "f1", OwnerID: "u1", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "003", page[0].InvoiceNo)
	assert.Equal(t, "002", page[1].InvoiceNo)

	from := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	page, total, err = repo.ListByFactory(ctx, repository.InvoiceFilter{FactoryID: "f1", OwnerID: "u1", From: &from, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 2)

	page, total, err = repo.ListByFactory(ctx, repository.InvoiceFilter{FactoryID: "f1", OwnerID: "other", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, page)
}

func TestAnalyticsRepository_SkipsCancelled(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedFactory(t, s, "f1", "u1")
	repo := s.Invoices()
	require.NoError(t, repo.Create(ctx, invoice("i1", "f1", "001")))
	cancelled := invoice("i2", "f1", "002")
	cancelled.Status = entity.InvoiceStatusCancelled
	require.NoError(t, repo.Create(ctx, cancelled))

	totals, err := s.Analytics().GetFactoryTotals(ctx, "f1", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.InvoiceCount)
	assert.Equal(t, "100", totals.Revenue.String())

	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	months, err := s.Analytics().GetMonthlySales(ctx, "f1", "u1", from, to)
	require.NoError(t, err)
	require.Len(t, months, 1)
	assert.Equal(t, time.October, months[0].Month.Month())
	assert.Equal(t, "100", months[0].Total.String())
}
