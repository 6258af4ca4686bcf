package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FactorySalesTotals aggregates all non-cancelled invoices of a factory.
type FactorySalesTotals struct {
	Revenue      decimal.Decimal // sum of total_amount
	InvoiceCount int64
}

// MonthlySales is the revenue of one calendar month. Month is the first
// instant of the month in UTC.
type MonthlySales struct {
	Month time.Time
	Total decimal.Decimal
}

// AnalyticsRepository defines read-only queries for the factory dashboard.
type AnalyticsRepository interface {
	GetFactoryTotals(ctx context.Context, factoryID, ownerID string) (FactorySalesTotals, error)

	// GetMonthlySales groups invoice totals by month of the invoice date for
	// dates in [from, to). Months without invoices are omitted.
	GetMonthlySales(ctx context.Context, factoryID, ownerID string, from, to time.Time) ([]MonthlySales, error)
}
