package domain

// Unit is an organizational subdivision tickets and employees belong to.
// Reference data: seeded at provisioning time, read-only afterwards.
type Unit struct {
	ID   int64
	Name string
	Code string
}
