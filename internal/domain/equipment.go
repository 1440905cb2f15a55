package domain

import "time"

// EquipmentStatus enumerates operational states for inventory items.
type EquipmentStatus string

const (
	EquipmentStatusActive      EquipmentStatus = "Active"
	EquipmentStatusMaintenance EquipmentStatus = "Maintenance"
	EquipmentStatusOutOfOrder  EquipmentStatus = "Out of Order"
)

// Equipment is an inventory item belonging to a unit.
type Equipment struct {
	ID              int64
	Name            string
	Category        string
	Manufacturer    string
	Model           string
	SerialNumber    string
	Location        *string
	Status          EquipmentStatus
	NextMaintenance *time.Time
	PurchaseDate    *time.Time
	WarrantyExpiry  *time.Time
	LastMaintenance *time.Time
	Cost            *int64
	UnitID          int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EquipmentStats aggregates inventory numbers for one unit.
type EquipmentStats struct {
	Total       int64 `json:"total"`
	Active      int64 `json:"active"`
	Maintenance int64 `json:"maintenance"`
	OutOfOrder  int64 `json:"out_of_order"`
	TotalValue  int64 `json:"total_value"`
}
