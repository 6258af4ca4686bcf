package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/gst-invoicing-api/internal/application/analytics"
	"github.com/jhoicas/gst-invoicing-api/internal/application/billing"
)

// RouterDeps dependencies of the API routes.
type RouterDeps struct {
	InvoiceUC   *billing.InvoiceUseCase
	SequencerUC *billing.SequencerUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Views       ViewCache // optional
	JWTSecret   string
	Log         zerolog.Logger
}

// Router registers the API routes. Every route requires a Bearer token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.SequencerUC, deps.Views, deps.Log)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)

	invoices := api.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Put("/:id", invoiceHandler.Update)

	factories := api.Group("/factories/:factoryId")
	factories.Get("/invoices/next-number", invoiceHandler.NextNumber)
	factories.Get("/invoices", invoiceHandler.List)
	factories.Get("/invoices/:id", invoiceHandler.GetByID)
	factories.Get("/dashboard", dashboardHandler.GetFactoryDashboard)
}
