package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gst-invoicing-api/internal/application/dto"
	"github.com/jhoicas/gst-invoicing-api/internal/domain"
)

// respondError maps domain errors to a status and a generic message.
// Only validation errors carry their detail to the client.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, body := fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"}
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status, body = fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"}
	case errors.Is(err, domain.ErrInvalidInput):
		status, body = fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		status, body = fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"}
	case errors.Is(err, domain.ErrDuplicate):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE_INVOICE_NO", Message: "invoice number already exists for this factory"}
	case errors.Is(err, domain.ErrInvoiceCreateFailed):
		body = dto.ErrorResponse{Code: "CREATE_FAILED", Message: domain.ErrInvoiceCreateFailed.Error()}
	case errors.Is(err, domain.ErrInvoiceUpdateFailed):
		body = dto.ErrorResponse{Code: "UPDATE_FAILED", Message: domain.ErrInvoiceUpdateFailed.Error()}
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(body)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
}
