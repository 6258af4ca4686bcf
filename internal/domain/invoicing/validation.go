package invoicing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gst-invoicing-api/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxGSTRate is the highest accepted GST percentage.
var MaxGSTRate = decimal.NewFromInt(100)

// Draft is the header and items of an invoice before it is persisted.
type Draft struct {
	InvoiceNo       string
	Date            time.Time
	CustomerName    string
	CustomerAddress string
	CustomerMobile  string
	CustomerTaxID   string
	GSTRate         decimal.Decimal
	Lines           []Line
}

// Validate checks the fields that must be present before any write. Every
// problem is reported; the result wraps domain.ErrInvalidInput.
func (d Draft) Validate() error {
	var errs []error
	if strings.TrimSpace(d.InvoiceNo) == "" {
		errs = append(errs, errors.New("invoice_no is required"))
	}
	if d.Date.IsZero() {
		errs = append(errs, errors.New("date is required"))
	}
	if strings.TrimSpace(d.CustomerName) == "" {
		errs = append(errs, errors.New("customer_name is required"))
	}
	if d.GSTRate.IsNegative() || d.GSTRate.GreaterThan(MaxGSTRate) {
		errs = append(errs, fmt.Errorf("gst_rate %s out of range [0, 100]", d.GSTRate))
	}
	if exceedsScale(d.GSTRate, GSTRateScale) {
		errs = append(errs, fmt.Errorf("gst_rate %s: at most %d decimal places", d.GSTRate, GSTRateScale))
	}
	for i, l := range d.Lines {
		if strings.TrimSpace(l.Name) == "" {
			errs = append(errs, fmt.Errorf("items[%d]: name is required", i))
		}
		if l.Quantity.IsNegative() {
			errs = append(errs, fmt.Errorf("items[%d]: quantity must not be negative", i))
		}
		if l.Rate.IsNegative() {
			errs = append(errs, fmt.Errorf("items[%d]: rate must not be negative", i))
		}
		if exceedsScale(l.Quantity, QuantityScale) {
			errs = append(errs, fmt.Errorf("items[%d]: quantity: at most %d decimal places", i, QuantityScale))
		}
		if exceedsScale(l.Rate, RateScale) {
			errs = append(errs, fmt.Errorf("items[%d]: rate: at most %d decimal places", i, RateScale))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

// exceedsScale reports whether v has significant digits past places.
// Trailing zeros ("12.500") are fine.
func exceedsScale(v decimal.Decimal, places int32) bool {
	return !v.Equal(v.Truncate(places))
}
