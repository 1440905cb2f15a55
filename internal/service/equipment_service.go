package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/policy"
	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// EquipmentService manages the inventory. Writes are admin-only (enforced
// at the route level); reads follow the same unit scoping as tickets.
type EquipmentService struct {
	equipment repository.EquipmentRepository
	units     repository.UnitRepository
}

// NewEquipmentService constructs the service.
func NewEquipmentService(equipment repository.EquipmentRepository, units repository.UnitRepository) *EquipmentService {
	return &EquipmentService{equipment: equipment, units: units}
}

// EquipmentInput describes create/update payloads.
type EquipmentInput struct {
	Name            string
	Category        string
	Manufacturer    string
	Model           string
	SerialNumber    string
	Location        *string
	Status          string
	NextMaintenance *time.Time
	PurchaseDate    *time.Time
	WarrantyExpiry  *time.Time
	LastMaintenance *time.Time
	Cost            *int64
	UnitID          *int64
}

// ListForPrincipal lists equipment for the resolved unit: admins pick a
// unit explicitly, employees are pinned to their own. A principal with no
// listable unit gets an empty result, not an error.
func (s *EquipmentService) ListForPrincipal(ctx context.Context, principal domain.Principal, requestedUnitID *int64) ([]domain.Equipment, error) {
	var unitID int64
	switch {
	case principal.IsAdmin():
		if requestedUnitID == nil {
			return []domain.Equipment{}, nil
		}
		unitID = *requestedUnitID
	case principal.UnitID == nil:
		return []domain.Equipment{}, nil
	default:
		unitID = *principal.UnitID
	}

	if !policy.CanListUnit(principal, unitID) {
		return nil, apperrors.NewForbidden("not authorized for this unit")
	}
	items, err := s.equipment.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// Create registers a new inventory item.
func (s *EquipmentService) Create(ctx context.Context, input EquipmentInput) (*domain.Equipment, error) {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"category", input.Category},
		{"manufacturer", input.Manufacturer},
		{"model", input.Model},
		{"serialNumber", input.SerialNumber},
	} {
		if strings.TrimSpace(field.value) == "" {
			return nil, apperrors.NewValidationError("missing required fields", map[string]any{"field": field.name})
		}
	}
	if input.UnitID == nil {
		return nil, apperrors.NewValidationError("unitId is required", map[string]any{"field": "unitId"})
	}
	if _, err := s.units.GetByID(ctx, *input.UnitID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("unit", map[string]any{"unit_id": *input.UnitID})
		}
		return nil, apperrors.MapError(err)
	}

	eq := &domain.Equipment{
		Name:            input.Name,
		Category:        input.Category,
		Manufacturer:    input.Manufacturer,
		Model:           input.Model,
		SerialNumber:    input.SerialNumber,
		Location:        input.Location,
		Status:          equipmentStatus(input.Status),
		NextMaintenance: input.NextMaintenance,
		PurchaseDate:    input.PurchaseDate,
		WarrantyExpiry:  input.WarrantyExpiry,
		LastMaintenance: input.LastMaintenance,
		Cost:            input.Cost,
		UnitID:          *input.UnitID,
	}
	if err := s.equipment.Create(ctx, eq); err != nil {
		return nil, apperrors.MapError(err)
	}
	return eq, nil
}

// Update overwrites an item's mutable fields. The unit is fixed at
// creation.
func (s *EquipmentService) Update(ctx context.Context, id int64, input EquipmentInput) (*domain.Equipment, error) {
	eq, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("equipment", map[string]any{"equipment_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	eq.Name = input.Name
	eq.Category = input.Category
	eq.Manufacturer = input.Manufacturer
	eq.Model = input.Model
	eq.SerialNumber = input.SerialNumber
	eq.Location = input.Location
	eq.Status = equipmentStatus(input.Status)
	eq.NextMaintenance = input.NextMaintenance
	eq.PurchaseDate = input.PurchaseDate
	eq.WarrantyExpiry = input.WarrantyExpiry
	eq.LastMaintenance = input.LastMaintenance
	eq.Cost = input.Cost

	if err := s.equipment.Update(ctx, eq); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("equipment", map[string]any{"equipment_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return eq, nil
}

// Delete removes an inventory item. Deleting an unknown id is a no-op
// success, matching the externally observed behavior of the endpoint.
func (s *EquipmentService) Delete(ctx context.Context, id int64) error {
	if err := s.equipment.Delete(ctx, id); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.MapError(err)
	}
	return nil
}

// StatsForUnit aggregates inventory numbers for one unit.
func (s *EquipmentService) StatsForUnit(ctx context.Context, principal domain.Principal, unitID int64) (*domain.EquipmentStats, error) {
	if !policy.CanListUnit(principal, unitID) {
		return nil, apperrors.NewForbidden("not authorized for this unit")
	}
	stats, err := s.equipment.StatsByUnit(ctx, unitID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

func equipmentStatus(raw string) domain.EquipmentStatus {
	if strings.TrimSpace(raw) == "" {
		return domain.EquipmentStatusActive
	}
	return domain.EquipmentStatus(raw)
}
