package dto

import "github.com/shopspring/decimal"

// FactoryDashboardDTO response of GET /api/factories/:factoryId/dashboard.
type FactoryDashboardDTO struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalRevenueDisplay string          `json:"total_revenue_display"` // "₹2,36,000.00"
	InvoiceCount        int64           `json:"invoice_count"`
	// Last six months, oldest first, including months without sales.
	ChartData []MonthlySalesDTO `json:"chart_data"`
}

// MonthlySalesDTO one bar of the sales chart.
type MonthlySalesDTO struct {
	Name  string          `json:"name"` // e.g. "Oct 26"
	Total decimal.Decimal `json:"total"`
}
