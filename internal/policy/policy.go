// Package policy holds the pure access-control decisions for tickets.
// Authorization is unit-scoped, not owner-scoped: any employee in the same
// unit as a ticket may view or mutate it. All functions are deterministic
// given the principal and the target unit, and perform no I/O; unit
// existence is validated by callers against the unit directory.
package policy

import "github.com/spec-kit/maintenance-service/internal/domain"

// CanCreate decides whether the principal may create a ticket in the target
// unit. Admins must supply a target unit; employees may only create within
// their own unit (a nil target means "their own unit").
func CanCreate(p domain.Principal, targetUnitID *int64) bool {
	if p.IsAdmin() {
		return targetUnitID != nil
	}
	if p.UnitID == nil {
		return false
	}
	return targetUnitID == nil || *targetUnitID == *p.UnitID
}

// CanListUnit decides whether the principal may list an explicitly
// requested unit's tickets.
func CanListUnit(p domain.Principal, unitID int64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.UnitID != nil && *p.UnitID == unitID
}

// CanReadOrMutate decides whether the principal may read or mutate the
// given ticket.
func CanReadOrMutate(p domain.Principal, ticket *domain.Ticket) bool {
	if p.IsAdmin() {
		return true
	}
	return p.UnitID != nil && ticket != nil && *p.UnitID == ticket.UnitID
}

// CanViewPendingQueue decides whether the principal may view the global
// cross-unit queue of pending tickets.
func CanViewPendingQueue(p domain.Principal) bool {
	return p.IsAdmin()
}
