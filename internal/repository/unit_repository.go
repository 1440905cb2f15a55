package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// UnitRepository supplies unit reference data. Units are seeded by
// migration; there are no mutation operations.
type UnitRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Unit, error)
	List(ctx context.Context) ([]domain.Unit, error)
}

type unitRepository struct {
	pool *pgxpool.Pool
}

// NewUnitRepository returns a Postgres-backed implementation.
func NewUnitRepository(pool *pgxpool.Pool) UnitRepository {
	return &unitRepository{pool: pool}
}

func (r *unitRepository) GetByID(ctx context.Context, id int64) (*domain.Unit, error) {
	const query = `SELECT id, name, code FROM units WHERE id=$1`
	var unit domain.Unit
	if err := r.pool.QueryRow(ctx, query, id).Scan(&unit.ID, &unit.Name, &unit.Code); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) List(ctx context.Context) ([]domain.Unit, error) {
	const query = `SELECT id, name, code FROM units ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Unit{}
	for rows.Next() {
		var unit domain.Unit
		if err := rows.Scan(&unit.ID, &unit.Name, &unit.Code); err != nil {
			return nil, err
		}
		result = append(result, unit)
	}
	return result, rows.Err()
}
