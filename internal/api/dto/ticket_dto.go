package dto

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Priority    string  `json:"priority"`
	Department  string  `json:"department"`
	Floor       *string `json:"floor"`
	Room        *string `json:"room"`
	Bed         *string `json:"bed"`
	UnitID      *int64  `json:"unitId"`
}

// UpdateTicketRequest payload for partial field updates.
type UpdateTicketRequest struct {
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	Category   string `json:"category"`
	AssignedTo string `json:"assignedTo"`
}

// SetStatusRequest payload for the narrow status endpoint.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// TicketResponse is the full persisted shape.
type TicketResponse struct {
	ID             int64                 `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Category       string                `json:"category"`
	Priority       domain.TicketPriority `json:"priority"`
	Department     string                `json:"department"`
	Floor          *string               `json:"floor"`
	Room           *string               `json:"room"`
	Bed            *string               `json:"bed"`
	Status         domain.TicketStatus   `json:"status"`
	UnitID         int64                 `json:"unitId"`
	EquipmentID    *int64                `json:"equipmentId"`
	CreatedByID    int64                 `json:"createdById"`
	AssignedToID   *int64                `json:"assignedToId"`
	AssignedToName *string               `json:"assignedToName"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// TicketListItemResponse is a list row with display names resolved.
type TicketListItemResponse struct {
	ID          int64                 `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Status      domain.TicketStatus   `json:"status"`
	Department  string                `json:"department"`
	UnitID      int64                 `json:"unitId"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
	AssignedTo  *string               `json:"assignedTo"`
}

// NewTicketResponse maps the domain model.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:             ticket.ID,
		Title:          ticket.Title,
		Description:    ticket.Description,
		Category:       ticket.Category,
		Priority:       ticket.Priority,
		Department:     ticket.Department,
		Floor:          ticket.Floor,
		Room:           ticket.Room,
		Bed:            ticket.Bed,
		Status:         ticket.Status,
		UnitID:         ticket.UnitID,
		EquipmentID:    ticket.EquipmentID,
		CreatedByID:    ticket.CreatedByID,
		AssignedToID:   ticket.AssignedToID,
		AssignedToName: ticket.AssignedToName,
		CreatedAt:      ticket.CreatedAt,
		UpdatedAt:      ticket.UpdatedAt,
	}
}

// NewTicketListItemResponse maps a list row.
func NewTicketListItemResponse(item domain.TicketListItem) TicketListItemResponse {
	return TicketListItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Priority:    item.Priority,
		Status:      item.Status,
		Department:  item.Department,
		UnitID:      item.UnitID,
		CreatedAt:   item.CreatedAt,
		CreatedBy:   item.CreatedBy,
		AssignedTo:  item.AssignedTo,
	}
}
