package repository

import (
	"context"

	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
)

// CustomerRepository is the persistence port for Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Customer, error)
}
