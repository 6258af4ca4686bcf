package repository

import (
	"context"

	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
)

// FactoryRepository is the persistence port for Factory. Every lookup is
// scoped to the owning user; a factory of another user reads as missing.
type FactoryRepository interface {
	Create(ctx context.Context, factory *entity.Factory) error
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Factory, error)

	// LockByIDAndOwner reads the factory and holds a write lock on it until the
	// surrounding transaction ends. Invoice numbering for the factory is
	// serialized through this lock.
	LockByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Factory, error)
}
