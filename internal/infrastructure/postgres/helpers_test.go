package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
)

func sampleItems() []*entity.InvoiceItem {
	return []*entity.InvoiceItem{
		{ID: "a", InvoiceID: "inv", Position: 0, Name: "Bolts", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(50), Amount: decimal.NewFromInt(100)},
		{ID: "b", InvoiceID: "inv", Position: 1, Name: "Nuts", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100), Amount: decimal.NewFromInt(100)},
	}
}

func sampleRange() (time.Time, time.Time) {
	return time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)
}

func sampleFilter(from, to *time.Time) repository.InvoiceFilter {
	return repository.InvoiceFilter{FactoryID: "f1", OwnerID: "u1", From: from, To: to, Limit: 20, Offset: 40}
}
