package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Tickets are never
// physically deleted.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Ticket, error)
	ListByUnit(ctx context.Context, unitID int64) ([]domain.TicketListItem, error)
	ListPending(ctx context.Context) ([]domain.Ticket, error)
	CountByUnit(ctx context.Context, unitID *int64) (*domain.TicketCounts, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the Postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, description, category, priority, department, floor, room, bed,
               status, unit_id, equipment_id, created_by_id, assigned_to_id, assigned_to_name,
               created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, category, priority, department, floor, room, bed,
                             status, unit_id, equipment_id, created_by_id, assigned_to_id, assigned_to_name)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		ticket.Department,
		ticket.Floor,
		ticket.Room,
		ticket.Bed,
		ticket.Status,
		ticket.UnitID,
		ticket.EquipmentID,
		ticket.CreatedByID,
		ticket.AssignedToID,
		ticket.AssignedToName,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `
        SELECT ` + ticketColumns + `
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(ticketFields(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Update writes the mutable fields of a ticket. Unit and creator are fixed
// at creation and deliberately absent from the statement.
func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, priority=$2, category=$3, assigned_to_id=$4, assigned_to_name=$5,
            updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Status,
		ticket.Priority,
		ticket.Category,
		ticket.AssignedToID,
		ticket.AssignedToName,
		ticket.ID,
	).Scan(&ticket.UpdatedAt)
}

// UpdateStatus writes a status value verbatim in a single statement. The
// storage enum is the only validation on this path.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Ticket, error) {
	const query = `
        UPDATE tickets SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + ticketColumns
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(ticketFields(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByUnit(ctx context.Context, unitID int64) ([]domain.TicketListItem, error) {
	const query = `
        SELECT t.id, t.title, t.description, t.category, t.priority, t.department, t.floor, t.room, t.bed,
               t.status, t.unit_id, t.equipment_id, t.created_by_id, t.assigned_to_id, t.assigned_to_name,
               t.created_at, t.updated_at,
               COALESCE(c.name, '') AS created_by,
               COALESCE(a.name, t.assigned_to_name) AS assigned_to
        FROM tickets t
        LEFT JOIN users c ON c.id = t.created_by_id
        LEFT JOIN users a ON a.id = t.assigned_to_id
        WHERE t.unit_id=$1
        ORDER BY t.created_at DESC`
	rows, err := r.pool.Query(ctx, query, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.TicketListItem{}
	for rows.Next() {
		var item domain.TicketListItem
		fields := append(ticketFields(&item.Ticket), &item.CreatedBy, &item.AssignedTo)
		if err := rows.Scan(fields...); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *ticketRepository) ListPending(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT ` + ticketColumns + `
        FROM tickets WHERE status='Pending'
        ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// CountByUnit aggregates ticket counts, globally when unitID is nil.
func (r *ticketRepository) CountByUnit(ctx context.Context, unitID *int64) (*domain.TicketCounts, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'Pending'),
               COUNT(*) FILTER (WHERE status = 'In Progress'),
               COUNT(*) FILTER (WHERE status = 'Resolved')
        FROM tickets
        WHERE $1::bigint IS NULL OR unit_id = $1`
	var counts domain.TicketCounts
	if err := r.pool.QueryRow(ctx, query, unitID).Scan(
		&counts.Total,
		&counts.Pending,
		&counts.InProgress,
		&counts.Resolved,
	); err != nil {
		return nil, err
	}
	return &counts, nil
}

func ticketFields(t *domain.Ticket) []any {
	return []any{
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Category,
		&t.Priority,
		&t.Department,
		&t.Floor,
		&t.Room,
		&t.Bed,
		&t.Status,
		&t.UnitID,
		&t.EquipmentID,
		&t.CreatedByID,
		&t.AssignedToID,
		&t.AssignedToName,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(ticketFields(&ticket)...); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
