package domain

import "time"

// Role differentiates administrators from unit-bound employees.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// User is the persisted account model. Employees always carry a UnitID;
// admins may or may not.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	PhoneNumber  *string
	UnitID       *int64
	CreatedAt    time.Time
}
