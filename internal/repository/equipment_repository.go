package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// EquipmentRepository manages inventory persistence.
type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	ListByUnit(ctx context.Context, unitID int64) ([]domain.Equipment, error)
	StatsByUnit(ctx context.Context, unitID int64) (*domain.EquipmentStats, error)
}

type equipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository builds the repository.
func NewEquipmentRepository(pool *pgxpool.Pool) EquipmentRepository {
	return &equipmentRepository{pool: pool}
}

const equipmentColumns = `id, name, category, manufacturer, model, serial_number, location, status,
               next_maintenance, purchase_date, warranty_expiry, last_maintenance, cost, unit_id,
               created_at, updated_at`

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	const query = `
        INSERT INTO equipments (name, category, manufacturer, model, serial_number, location, status,
                                next_maintenance, purchase_date, warranty_expiry, last_maintenance, cost, unit_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		eq.Name,
		eq.Category,
		eq.Manufacturer,
		eq.Model,
		eq.SerialNumber,
		eq.Location,
		eq.Status,
		eq.NextMaintenance,
		eq.PurchaseDate,
		eq.WarrantyExpiry,
		eq.LastMaintenance,
		eq.Cost,
		eq.UnitID,
	).Scan(&eq.ID, &eq.CreatedAt, &eq.UpdatedAt)
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	const query = `
        UPDATE equipments SET name=$1, category=$2, manufacturer=$3, model=$4, serial_number=$5,
            location=$6, status=$7, next_maintenance=$8, purchase_date=$9, warranty_expiry=$10,
            last_maintenance=$11, cost=$12, updated_at=NOW()
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		eq.Name,
		eq.Category,
		eq.Manufacturer,
		eq.Model,
		eq.SerialNumber,
		eq.Location,
		eq.Status,
		eq.NextMaintenance,
		eq.PurchaseDate,
		eq.WarrantyExpiry,
		eq.LastMaintenance,
		eq.Cost,
		eq.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM equipments WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	const query = `SELECT ` + equipmentColumns + ` FROM equipments WHERE id=$1`
	var eq domain.Equipment
	if err := r.pool.QueryRow(ctx, query, id).Scan(equipmentFields(&eq)...); err != nil {
		return nil, err
	}
	return &eq, nil
}

func (r *equipmentRepository) ListByUnit(ctx context.Context, unitID int64) ([]domain.Equipment, error) {
	const query = `
        SELECT ` + equipmentColumns + `
        FROM equipments WHERE unit_id=$1
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Equipment{}
	for rows.Next() {
		var eq domain.Equipment
		if err := rows.Scan(equipmentFields(&eq)...); err != nil {
			return nil, err
		}
		result = append(result, eq)
	}
	return result, rows.Err()
}

func (r *equipmentRepository) StatsByUnit(ctx context.Context, unitID int64) (*domain.EquipmentStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'Active'),
               COUNT(*) FILTER (WHERE status = 'Maintenance'),
               COUNT(*) FILTER (WHERE status = 'Out of Order'),
               COALESCE(SUM(cost), 0)
        FROM equipments
        WHERE unit_id = $1`
	var stats domain.EquipmentStats
	if err := r.pool.QueryRow(ctx, query, unitID).Scan(
		&stats.Total,
		&stats.Active,
		&stats.Maintenance,
		&stats.OutOfOrder,
		&stats.TotalValue,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func equipmentFields(eq *domain.Equipment) []any {
	return []any{
		&eq.ID,
		&eq.Name,
		&eq.Category,
		&eq.Manufacturer,
		&eq.Model,
		&eq.SerialNumber,
		&eq.Location,
		&eq.Status,
		&eq.NextMaintenance,
		&eq.PurchaseDate,
		&eq.WarrantyExpiry,
		&eq.LastMaintenance,
		&eq.Cost,
		&eq.UnitID,
		&eq.CreatedAt,
		&eq.UpdatedAt,
	}
}
