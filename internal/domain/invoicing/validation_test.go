package invoicing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoicing-api/internal/domain"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/invoicing"
)

func validDraft() invoicing.Draft {
	return invoicing.Draft{
		InvoiceNo:    "INV-001",
		Date:         time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		CustomerName: "Shree Traders",
		GSTRate:      dec("18"),
		Lines:        []invoicing.Line{{Name: "Bolts", Quantity: dec("2"), Rate: dec("50")}},
	}
}

func TestDraftValidate_OK(t *testing.T) {
	require.NoError(t, validDraft().Validate())
}

func TestDraftValidate_EmptyItemsAllowed(t *testing.T) {
	d := validDraft()
	d.Lines = nil
	assert.NoError(t, d.Validate())
}

func TestDraftValidate_MissingHeaderFields(t *testing.T) {
	d := validDraft()
	d.InvoiceNo = "  "
	d.CustomerName = ""
	d.Date = time.Time{}

	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invoice_no is required")
	assert.Contains(t, err.Error(), "customer_name is required")
	assert.Contains(t, err.Error(), "date is required")
}

func TestDraftValidate_GSTRateRange(t *testing.T) {
	for _, rate := range []string{"-1", "100.01"} {
		d := validDraft()
		d.GSTRate = dec(rate)
		assert.ErrorIs(t, d.Validate(), domain.ErrInvalidInput, "rate %s", rate)
	}
	d := validDraft()
	d.GSTRate = decimal.NewFromInt(100)
	assert.NoError(t, d.Validate())
}

func TestDraftValidate_Items(t *testing.T) {
	d := validDraft()
	d.Lines = []invoicing.Line{
		{Name: "", Quantity: dec("1"), Rate: dec("1")},
		{Name: "Refund", Quantity: dec("-1"), Rate: dec("-5")},
	}
	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[0]: name is required")
	assert.Contains(t, err.Error(), "items[1]: quantity must not be negative")
	assert.Contains(t, err.Error(), "items[1]: rate must not be negative")
}

func TestDraftValidate_GSTRatePrecision(t *testing.T) {
	d := validDraft()
	d.GSTRate = dec("12.345")
	err := d.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "gst_rate 12.345: at most 2 decimal places")

	d.GSTRate = dec("12.350")
	assert.NoError(t, d.Validate(), "trailing zeros are not extra precision")
}

func TestDraftValidate_QuantityAndRatePrecision(t *testing.T) {
	d := validDraft()
	d.Lines = []invoicing.Line{
		{Name: "Wire", Quantity: dec("1.00001"), Rate: dec("10")},
		{Name: "Paint", Quantity: dec("1"), Rate: dec("999.12345")},
		{Name: "Sheet", Quantity: dec("2.5000"), Rate: dec("0.0001")},
	}
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "items[0]: quantity: at most 4 decimal places")
	assert.Contains(t, err.Error(), "items[1]: rate: at most 4 decimal places")
	assert.NotContains(t, err.Error(), "items[2]")
}
