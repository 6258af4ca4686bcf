package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/gst-invoicing-api/internal/domain"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
)

// FactoryRepository implements repository.FactoryRepository.
type FactoryRepository struct {
	store *Store
	tx    *state
}

var _ repository.FactoryRepository = (*FactoryRepository)(nil)

func (r *FactoryRepository) Create(ctx context.Context, f *entity.Factory) error {
	return r.store.write(r.tx, "", func(st *state) error {
		if _, ok := st.factories[f.ID]; ok {
			return fmt.Errorf("factory %s: %w", f.ID, domain.ErrDuplicate)
		}
		st.factories[f.ID] = *f
		return nil
	})
}

func (r *FactoryRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Factory, error) {
	var out *entity.Factory
	err := r.store.read(r.tx, func(st *state) error {
		if f, ok := st.factories[id]; ok && f.OwnerID == ownerID {
			out = &f
		}
		return nil
	})
	return out, err
}

// LockByIDAndOwner behaves like GetByIDAndOwner. Inside RunBilling the store
// lock already serializes writers.
func (r *FactoryRepository) LockByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Factory, error) {
	return r.GetByIDAndOwner(ctx, id, ownerID)
}

// CustomerRepository implements repository.CustomerRepository.
type CustomerRepository struct {
	store *Store
	tx    *state
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	return r.store.write(r.tx, "", func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return fmt.Errorf("customer %s: %w", c.ID, domain.ErrDuplicate)
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.store.read(r.tx, func(st *state) error {
		if c, ok := st.customers[id]; ok && c.OwnerID == ownerID {
			out = &c
		}
		return nil
	})
	return out, err
}
