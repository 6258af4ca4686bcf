package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gst-invoicing-api/internal/domain"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
)

var _ repository.FactoryRepository = (*FactoryRepo)(nil)

// FactoryRepo implements FactoryRepository (pool or tx).
type FactoryRepo struct {
	q Querier
}

// NewFactoryRepository builds the adapter. Pass a pool or a tx.
func NewFactoryRepository(q Querier) *FactoryRepo {
	return &FactoryRepo{q: q}
}

const factoryColumns = `id, name, address, tax_id, owner_id, created_at, updated_at`

func (r *FactoryRepo) Create(ctx context.Context, f *entity.Factory) error {
	query := `
		INSERT INTO factories (` + factoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, f.ID, f.Name, f.Address, f.TaxID, f.OwnerID, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("factory %s: %w", f.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert factory: %w", err)
	}
	return nil
}

func (r *FactoryRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Factory, error) {
	return r.get(ctx, `SELECT `+factoryColumns+` FROM factories WHERE id = $1 AND owner_id = $2`, id, ownerID)
}

// LockByIDAndOwner takes a row lock on the factory (SELECT ... FOR UPDATE).
// It must run inside a transaction.
func (r *FactoryRepo) LockByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Factory, error) {
	return r.get(ctx, `SELECT `+factoryColumns+` FROM factories WHERE id = $1 AND owner_id = $2 FOR UPDATE`, id, ownerID)
}

func (r *FactoryRepo) get(ctx context.Context, query string, args ...any) (*entity.Factory, error) {
	var f entity.Factory
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&f.ID, &f.Name, &f.Address, &f.TaxID, &f.OwnerID, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factory: %w", err)
	}
	return &f, nil
}
