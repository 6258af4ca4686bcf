package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrUnauthorized = errors.New("unauthorized")

	// Generic failures surfaced by the invoice write paths. The underlying
	// storage error is logged, never returned to the caller.
	ErrInvoiceCreateFailed = errors.New("failed to create invoice")
	ErrInvoiceUpdateFailed = errors.New("failed to update invoice")
)
