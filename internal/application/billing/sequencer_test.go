package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoicing-api/internal/application/billing"
	"github.com/jhoicas/gst-invoicing-api/internal/domain"
)

func TestNextInvoiceNumber_NoInvoicesYieldsSeed(t *testing.T) {
	f := newFixture(t, billing.NumberingConfig{})

	got, err := f.sequencer.NextInvoiceNumber(context.Background(), owner, factory)
	require.NoError(t, err)
	assert.Equal(t, "001", got)
}

func TestNextInvoiceNumber_ConfiguredSeed(t *testing.T) {
	f := newFixture(t, billing.NumberingConfig{Seed: "FY26-0001"})

	got, err := f.sequencer.NextInvoiceNumber(context.Background(), owner, factory)
	require.NoError(t, err)
	assert.Equal(t, "FY26-0001", got)
}

func TestNextInvoiceNumber_FollowsLatestCreated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, billing.NumberingConfig{})

	first := request("A-099")
	first.Date = "2026-12-31"
	_, err := f.invoices.CreateInvoice(ctx, owner, first)
	require.NoError(t, err)
	// Created later but dated earlier: insertion order decides.
	second := request("A-007")
	second.Date = "2026-01-01"
	_, err = f.invoices.CreateInvoice(ctx, owner, second)
	require.NoError(t, err)

	got, err := f.sequencer.NextInvoiceNumber(ctx, owner, factory)
	require.NoError(t, err)
	assert.Equal(t, "A-008", got)
}

func TestNextInvoiceNumber_NonNumericSuffix(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, billing.NumberingConfig{})
	_, err := f.invoices.CreateInvoice(ctx, owner, request("ABC"))
	require.NoError(t, err)

	got, err := f.sequencer.NextInvoiceNumber(ctx, owner, factory)
	require.NoError(t, err)
	assert.Equal(t, "ABC-1", got)
}

func TestNextInvoiceNumber_IsOnlyASuggestion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, billing.NumberingConfig{})

	a, err := f.sequencer.NextInvoiceNumber(ctx, owner, factory)
	require.NoError(t, err)
	b, err := f.sequencer.NextInvoiceNumber(ctx, owner, factory)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNextInvoiceNumber_Errors(t *testing.T) {
	f := newFixture(t, billing.NumberingConfig{})
	ctx := context.Background()

	_, err := f.sequencer.NextInvoiceNumber(ctx, "", factory)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.sequencer.NextInvoiceNumber(ctx, owner, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.sequencer.NextInvoiceNumber(ctx, stranger, factory)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.sequencer.NextInvoiceNumber(ctx, owner, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
