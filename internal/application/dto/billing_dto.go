package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one line of an invoice. Amount is accepted for
// compatibility but always recomputed as quantity * rate.
type InvoiceItemRequest struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// InvoiceRequest body for POST /api/invoices and PUT /api/invoices/:id.
//
// GSTRate is authoritative (0 = GST disabled). SubTotal, GSTAmount and
// TotalAmount are advisory: the server recomputes them from Items.
// When CustomerID names a customer of the caller, empty customer_* fields
// are filled from it.
type InvoiceRequest struct {
	FactoryID       string               `json:"factory_id"`
	InvoiceNo       string               `json:"invoice_no"`
	Date            string               `json:"date"` // 2006-01-02 or RFC 3339
	CustomerID      string               `json:"customer_id,omitempty"`
	CustomerName    string               `json:"customer_name"`
	CustomerAddress string               `json:"customer_address,omitempty"`
	CustomerMobile  string               `json:"customer_mobile,omitempty"`
	CustomerTaxID   string               `json:"customer_gstin,omitempty"`
	Items           []InvoiceItemRequest `json:"items"`
	SubTotal        decimal.Decimal      `json:"sub_total"`
	GSTRate         decimal.Decimal      `json:"gst_rate"`
	GSTAmount       decimal.Decimal      `json:"gst_amount"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
}

// InvoiceSavedResponse is returned by create and update.
// Renumbered is set when the requested number was already taken and the
// invoice was saved under InvoiceNo instead.
type InvoiceSavedResponse struct {
	Success    bool   `json:"success"`
	ID         string `json:"id"`
	InvoiceNo  string `json:"invoice_no"`
	Renumbered bool   `json:"renumbered,omitempty"`
}

// NextInvoiceNumberResponse for GET /api/factories/:factoryId/invoices/next-number.
type NextInvoiceNumberResponse struct {
	NextInvoiceNo string `json:"next_invoice_no"`
}

// InvoiceResponse invoice with its items for the detail view.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	FactoryID       string                `json:"factory_id"`
	InvoiceNo       string                `json:"invoice_no"`
	Date            string                `json:"date"`
	CustomerName    string                `json:"customer_name"`
	CustomerAddress string                `json:"customer_address,omitempty"`
	CustomerMobile  string                `json:"customer_mobile,omitempty"`
	CustomerTaxID   string                `json:"customer_gstin,omitempty"`
	SubTotal        decimal.Decimal       `json:"sub_total"`
	GSTRate         decimal.Decimal       `json:"gst_rate"`
	GSTAmount       decimal.Decimal       `json:"gst_amount"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	TotalDisplay    string                `json:"total_display"`  // "₹2,36,000.00"
	TotalInWords    string                `json:"total_in_words"` // "Rupees Two Lakh Thirty Six Thousand Only"
	Status          string                `json:"status"`
	CanEdit         bool                  `json:"can_edit"`
	Items           []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse line in InvoiceResponse.
type InvoiceItemResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// InvoiceSummaryResponse row of the factory invoice list.
type InvoiceSummaryResponse struct {
	ID           string          `json:"id"`
	InvoiceNo    string          `json:"invoice_no"`
	Date         string          `json:"date"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
}

// InvoiceListResponse for GET /api/factories/:factoryId/invoices.
type InvoiceListResponse struct {
	Invoices []InvoiceSummaryResponse `json:"invoices"`
	Page     PageResponse             `json:"page"`
}

// InvoiceListQuery query string of GET /api/factories/:factoryId/invoices.
// From and To are inclusive invoice dates (2006-01-02).
type InvoiceListQuery struct {
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// ViewKey renders the query after page defaults, so equivalent query strings
// share one cached view and unknown parameters are ignored.
func (q InvoiceListQuery) ViewKey() string {
	page := PageRequest{Limit: q.Limit, Offset: q.Offset}
	page.DefaultPage()
	return fmt.Sprintf("from=%s&to=%s&limit=%d&offset=%d",
		strings.TrimSpace(q.From), strings.TrimSpace(q.To), page.Limit, page.Offset)
}
