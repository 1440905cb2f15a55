package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/policy"
	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// TicketService coordinates the ticket lifecycle: creation, unit-scoped
// listing, the admin pending queue and field mutation.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	units      repository.UnitRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	UnitRepo   repository.UnitRepository
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes the ticket creation payload. UnitID is only
// honored for admins; employee tickets always land in the employee's unit.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Department  string
	Floor       *string
	Room        *string
	Bed         *string
	UnitID      *int64
}

// TicketUpdateInput describes a partial field update. Empty strings mean
// "not supplied"; the ticket's current value is kept. AssignedTo is the
// free-text assignee input: blank or absent clears any existing assignment.
type TicketUpdateInput struct {
	Status     string
	Priority   string
	Category   string
	AssignedTo string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		units:      deps.UnitRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket validates the payload, resolves the home unit and persists a
// new ticket in status Pending.
func (s *TicketService) CreateTicket(ctx context.Context, principal domain.Principal, input TicketCreateInput) (*domain.Ticket, error) {
	// Required fields are checked in a fixed order; the first missing one
	// is reported.
	for _, field := range []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"category", input.Category},
		{"description", input.Description},
		{"department", input.Department},
	} {
		if strings.TrimSpace(field.value) == "" {
			return nil, apperrors.NewValidationError(field.name+" is required", map[string]any{"field": field.name})
		}
	}

	// Employees never choose a unit: any client-supplied unit id is
	// discarded and the ticket lands in their own unit.
	if !principal.IsAdmin() {
		input.UnitID = nil
	}
	if !policy.CanCreate(principal, input.UnitID) {
		if principal.IsAdmin() {
			return nil, apperrors.NewValidationError("unitId is required for admins", map[string]any{"field": "unitId"})
		}
		return nil, apperrors.NewValidationError("employee has no assigned unit", nil)
	}

	var unitID int64
	if principal.IsAdmin() {
		unitID = *input.UnitID
		if _, err := s.units.GetByID(ctx, unitID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("unit", map[string]any{"unit_id": unitID})
			}
			return nil, apperrors.MapError(err)
		}
	} else {
		unitID = *principal.UnitID
	}

	ticket := &domain.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    domain.NormalizePriority(input.Priority),
		Department:  input.Department,
		Floor:       input.Floor,
		Room:        input.Room,
		Bed:         input.Bed,
		Status:      domain.TicketStatusPending,
		UnitID:      unitID,
		CreatedByID: principal.ID,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		UnitID:   ticket.UnitID,
		Actor:    actorFor(principal),
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ListUnitTickets returns a unit's tickets, newest first, with display
// names resolved.
func (s *TicketService) ListUnitTickets(ctx context.Context, principal domain.Principal, unitID int64) ([]domain.TicketListItem, error) {
	if !policy.CanListUnit(principal, unitID) {
		return nil, apperrors.NewForbidden("not authorized for this unit")
	}
	items, err := s.tickets.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// ListPendingQueue returns the global cross-unit queue of pending tickets.
// Admin only.
func (s *TicketService) ListPendingQueue(ctx context.Context, principal domain.Principal) ([]domain.Ticket, error) {
	if !policy.CanViewPendingQueue(principal) {
		return nil, apperrors.NewForbidden("admin only")
	}
	tickets, err := s.tickets.ListPending(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// UpdateTicket applies a partial field update under unit-scoped
// authorization. An unrecognized status value is silently ignored; omitting
// the assignee clears any existing assignment.
func (s *TicketService) UpdateTicket(ctx context.Context, principal domain.Principal, ticketID int64, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if !policy.CanReadOrMutate(principal, ticket) {
		return nil, apperrors.NewForbidden("not authorized for this unit")
	}

	oldStatus := ticket.Status
	if input.Status != "" {
		if status, ok := domain.ParseTicketStatus(input.Status); ok {
			ticket.Status = status
		}
	}
	if input.Priority != "" {
		ticket.Priority = domain.TicketPriority(input.Priority)
	}
	if input.Category != "" {
		ticket.Category = input.Category
	}

	// Assignment is recomputed from scratch on every update: a blank or
	// absent assignee resets both fields, a matching display name binds
	// the user id, and an unmatched name is stored literally.
	ticket.AssignedToID = nil
	ticket.AssignedToName = nil
	if assignee := strings.TrimSpace(input.AssignedTo); assignee != "" {
		user, err := s.users.GetByName(ctx, input.AssignedTo)
		switch {
		case err == nil:
			ticket.AssignedToID = &user.ID
		case errors.Is(err, pgx.ErrNoRows):
			name := input.AssignedTo
			ticket.AssignedToName = &name
		default:
			return nil, apperrors.MapError(err)
		}
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			UnitID:   ticket.UnitID,
			Actor:    actorFor(principal),
			Payload: events.TicketStatusChangedPayload{
				OldStatus: string(oldStatus),
				NewStatus: string(ticket.Status),
			},
		})
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		UnitID:   ticket.UnitID,
		Actor:    actorFor(principal),
		Payload: events.TicketUpdatedPayload{
			Status:         ticket.Status,
			AssignedToID:   ticket.AssignedToID,
			AssignedToName: ticket.AssignedToName,
		},
	})
	return ticket, nil
}

// SetStatus writes a status value verbatim for any authenticated caller.
// Unlike UpdateTicket there is no unit check and no value validation here;
// the storage enum rejects unknown values.
func (s *TicketService) SetStatus(ctx context.Context, principal domain.Principal, ticketID int64, status string) (*domain.Ticket, error) {
	if strings.TrimSpace(status) == "" {
		return nil, apperrors.NewValidationError("status is required", map[string]any{"field": "status"})
	}
	ticket, err := s.tickets.UpdateStatus(ctx, ticketID, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		UnitID:   ticket.UnitID,
		Actor:    actorFor(principal),
		Payload: events.TicketStatusChangedPayload{
			NewStatus: status,
		},
	})
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(principal domain.Principal) events.Actor {
	return events.Actor{UserID: principal.ID, Role: principal.Role}
}
