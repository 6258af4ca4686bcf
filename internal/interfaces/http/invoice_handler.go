package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gst-invoicing-api/internal/application/billing"
	"github.com/jhoicas/gst-invoicing-api/internal/application/dto"
	"github.com/jhoicas/gst-invoicing-api/internal/domain"
)

// ViewCache stores rendered GET responses by view path.
type ViewCache interface {
	Get(path, variant string) ([]byte, bool)
	Set(path, variant string, body []byte)
}

// InvoiceHandler serves invoice numbering, create/update and the invoice views.
type InvoiceHandler struct {
	invoices  *billing.InvoiceUseCase
	sequencer *billing.SequencerUseCase
	views     ViewCache
	log       zerolog.Logger
}

// NewInvoiceHandler builds the handler. views may be nil.
func NewInvoiceHandler(invoices *billing.InvoiceUseCase, sequencer *billing.SequencerUseCase, views ViewCache, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, sequencer: sequencer, views: views, log: log}
}

// NextNumber godoc
// @Summary      Suggest the next invoice number of a factory
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        factoryId  path  string  true  "factory id"
// @Success      200  {object}  dto.NextInvoiceNumberResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/factories/{factoryId}/invoices/next-number [get]
func (h *InvoiceHandler) NextNumber(c *fiber.Ctx) error {
	next, err := h.sequencer.NextInvoiceNumber(c.UserContext(), GetUserID(c), c.Params("factoryId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NextInvoiceNumberResponse{NextInvoiceNo: next})
}

// Create godoc
// @Summary      Create an invoice with its items
// @Description  Totals are recomputed on the server. A number already used in the factory is replaced by the next free one when auto-renumbering is on.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceRequest  true  "invoice header and items"
// @Success      201   {object}  dto.InvoiceSavedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	saved, err := h.invoices.CreateInvoice(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// Update godoc
// @Summary      Replace an invoice and its items
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "invoice id"
// @Param        body  body  dto.InvoiceRequest  true  "invoice header and items"
// @Success      200   {object}  dto.InvoiceSavedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	saved, err := h.invoices.UpdateInvoice(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(saved)
}

// GetByID godoc
// @Summary      Invoice display view
// @Description  Any authenticated user may view an invoice by id; can_edit tells whether the caller owns it.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        factoryId  path  string  true  "factory id"
// @Param        id         path  string  true  "invoice id"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/factories/{factoryId}/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	userID, factoryID, id := GetUserID(c), c.Params("factoryId"), c.Params("id")
	path := billing.InvoiceViewPath(factoryID, id)
	if body, ok := h.cached(path, userID); ok {
		return sendCached(c, body)
	}
	inv, err := h.invoices.GetInvoice(c.UserContext(), userID, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if inv.FactoryID != factoryID {
		return respondError(c, h.log, domain.ErrNotFound)
	}
	return h.sendAndCache(c, path, userID, inv)
}

// List godoc
// @Summary      Invoices of a factory, newest first
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        factoryId  path   string  true   "factory id"
// @Param        from       query  string  false  "first invoice date (YYYY-MM-DD)"
// @Param        to         query  string  false  "last invoice date (YYYY-MM-DD)"
// @Param        limit      query  int     false  "page size (max 100)"
// @Param        offset     query  int     false  "rows to skip"
// @Success      200  {object}  dto.InvoiceListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/factories/{factoryId}/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	userID, factoryID := GetUserID(c), c.Params("factoryId")
	var q dto.InvoiceListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	path := billing.FactoryViewPath(factoryID)
	variant := userID + "?" + q.ViewKey()
	if body, ok := h.cached(path, variant); ok {
		return sendCached(c, body)
	}
	list, err := h.invoices.ListInvoices(c.UserContext(), userID, factoryID, q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return h.sendAndCache(c, path, variant, list)
}

func (h *InvoiceHandler) cached(path, variant string) ([]byte, bool) {
	if h.views == nil {
		return nil, false
	}
	return h.views.Get(path, variant)
}

func (h *InvoiceHandler) sendAndCache(c *fiber.Ctx, path, variant string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if h.views != nil {
		h.views.Set(path, variant, body)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set("X-View-Cache", "MISS")
	return c.Send(body)
}

func sendCached(c *fiber.Ctx, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set("X-View-Cache", "HIT")
	return c.Send(body)
}
