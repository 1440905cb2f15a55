package dto

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// EquipmentRequest payload for create and update.
type EquipmentRequest struct {
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	Manufacturer    string     `json:"manufacturer"`
	Model           string     `json:"model"`
	SerialNumber    string     `json:"serialNumber"`
	Location        *string    `json:"location"`
	Status          string     `json:"status"`
	NextMaintenance *time.Time `json:"nextMaintenance"`
	PurchaseDate    *time.Time `json:"purchaseDate"`
	WarrantyExpiry  *time.Time `json:"warrantyExpiry"`
	LastMaintenance *time.Time `json:"lastMaintenance"`
	Cost            *int64     `json:"cost"`
	UnitID          *int64     `json:"unitId"`
}

// EquipmentResponse is the persisted shape.
type EquipmentResponse struct {
	ID              int64                  `json:"id"`
	Name            string                 `json:"name"`
	Category        string                 `json:"category"`
	Manufacturer    string                 `json:"manufacturer"`
	Model           string                 `json:"model"`
	SerialNumber    string                 `json:"serialNumber"`
	Location        *string                `json:"location"`
	Status          domain.EquipmentStatus `json:"status"`
	NextMaintenance *time.Time             `json:"nextMaintenance"`
	PurchaseDate    *time.Time             `json:"purchaseDate"`
	WarrantyExpiry  *time.Time             `json:"warrantyExpiry"`
	LastMaintenance *time.Time             `json:"lastMaintenance"`
	Cost            *int64                 `json:"cost"`
	UnitID          int64                  `json:"unitId"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// NewEquipmentResponse maps the domain model.
func NewEquipmentResponse(eq *domain.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:              eq.ID,
		Name:            eq.Name,
		Category:        eq.Category,
		Manufacturer:    eq.Manufacturer,
		Model:           eq.Model,
		SerialNumber:    eq.SerialNumber,
		Location:        eq.Location,
		Status:          eq.Status,
		NextMaintenance: eq.NextMaintenance,
		PurchaseDate:    eq.PurchaseDate,
		WarrantyExpiry:  eq.WarrantyExpiry,
		LastMaintenance: eq.LastMaintenance,
		Cost:            eq.Cost,
		UnitID:          eq.UnitID,
		CreatedAt:       eq.CreatedAt,
		UpdatedAt:       eq.UpdatedAt,
	}
}
