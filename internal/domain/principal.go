package domain

// Principal is the authenticated caller of a request, resolved upstream by
// the auth middleware and threaded explicitly through every operation.
// It is request-scoped and never persisted.
type Principal struct {
	ID     int64
	Name   string
	Role   Role
	UnitID *int64
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
