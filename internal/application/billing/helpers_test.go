package billing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoicing-api/internal/application/billing"
	"github.com/jhoicas/gst-invoicing-api/internal/application/dto"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/infrastructure/memory"
)

const (
	owner    = "user-1"
	stranger = "user-2"
	factory  = "factory-1"
)

type recordingInvalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingInvalidator) Invalidate(paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
}

func (r *recordingInvalidator) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

type fixture struct {
	store       *memory.Store
	invalidator *recordingInvalidator
	invoices    *billing.InvoiceUseCase
	sequencer   *billing.SequencerUseCase
}

func newFixture(t *testing.T, numbering billing.NumberingConfig) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Factories().Create(ctx, &entity.Factory{ID: factory, Name: "Main Works", OwnerID: owner}))
	require.NoError(t, store.Factories().Create(ctx, &entity.Factory{ID: "factory-2", Name: "Other", OwnerID: stranger}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{
		ID:      "cust-1",
		Name:    "Shree Traders",
		Address: "12 MG Road, Pune",
		Mobile:  "9800000000",
		TaxID:   "27AAAAA0000A1Z5",
		OwnerID: owner,
	}))

	inv := &recordingInvalidator{}
	return &fixture{
		store:       store,
		invalidator: inv,
		invoices: billing.NewInvoiceUseCase(
			store, store.Invoices(), store.Factories(), store.Customers(),
			inv, numbering, zerolog.Nop(),
		),
		sequencer: billing.NewSequencerUseCase(store.Factories(), store.Invoices(), numbering),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func request(no string) dto.InvoiceRequest {
	return dto.InvoiceRequest{
		FactoryID:    factory,
		InvoiceNo:    no,
		Date:         "2026-10-01",
		CustomerName: "Shree Traders",
		GSTRate:      dec("18"),
		Items: []dto.InvoiceItemRequest{
			{Name: "Bolts", Quantity: dec("2"), Rate: dec("50")},
			{Name: "Nuts", Quantity: dec("1"), Rate: dec("100")},
		},
	}
}
