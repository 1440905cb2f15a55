package domain

import (
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets. Values are stored
// verbatim; there is no transition graph — any status may move to any other.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusPending    TicketStatus = "Pending"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// ParseTicketStatus validates a raw status value against the canonical set.
// Matching is case-sensitive and exact.
func ParseTicketStatus(raw string) (TicketStatus, bool) {
	switch TicketStatus(raw) {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusPending,
		TicketStatusResolved, TicketStatusClosed:
		return TicketStatus(raw), true
	}
	return "", false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// NormalizePriority lowercases the input, maps "critical" to high and falls
// back to medium for anything outside the canonical set, including the
// empty string.
func NormalizePriority(raw string) TicketPriority {
	switch p := TicketPriority(strings.ToLower(strings.TrimSpace(raw))); p {
	case "critical":
		return TicketPriorityHigh
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return p
	default:
		return TicketPriorityMedium
	}
}

// Ticket is the aggregate for maintenance requests. UnitID and CreatedByID
// are fixed at creation and never change. At most one of AssignedToID and
// AssignedToName is set after an assignment write.
type Ticket struct {
	ID             int64
	Title          string
	Description    string
	Category       string
	Priority       TicketPriority
	Department     string
	Floor          *string
	Room           *string
	Bed            *string
	Status         TicketStatus
	UnitID         int64
	EquipmentID    *int64
	CreatedByID    int64
	AssignedToID   *int64
	AssignedToName *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TicketListItem is a ticket row augmented with display names for list
// views: the creator's name and the assignee display value (the assignee
// user's name when assigned by id, else the free-text fallback).
type TicketListItem struct {
	Ticket
	CreatedBy  string
	AssignedTo *string
}

// TicketCounts summarizes ticket volumes for dashboard views.
type TicketCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
}
