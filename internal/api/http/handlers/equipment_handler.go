package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/dto"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/service"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// EquipmentHandler manages inventory endpoints.
type EquipmentHandler struct {
	equipment *service.EquipmentService
}

// NewEquipmentHandler constructs the handler.
func NewEquipmentHandler(equipment *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment}
}

// List GET /equipments.
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	var requestedUnitID *int64
	if raw := c.Query("unitId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid unitId", map[string]any{"field": "unitId"})
		}
		requestedUnitID = &parsed
	}

	items, err := h.equipment.ListForPrincipal(c.UserContext(), principal, requestedUnitID)
	if err != nil {
		return err
	}
	resp := make([]dto.EquipmentResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewEquipmentResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"equipments": resp})
}

// Create POST /equipments. Admin only.
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var req dto.EquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	eq, err := h.equipment.Create(c.UserContext(), equipmentInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"equipment": dto.NewEquipmentResponse(eq)})
}

// Update PUT /equipments/:id. Admin only.
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid equipment id", map[string]any{"field": "id"})
	}
	var req dto.EquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	eq, err := h.equipment.Update(c.UserContext(), id, equipmentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"equipment": dto.NewEquipmentResponse(eq)})
}

// Delete DELETE /equipments/:id. Admin only.
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid equipment id", map[string]any{"field": "id"})
	}
	if err := h.equipment.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Stats GET /equipments/stats.
func (h *EquipmentHandler) Stats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	unitID, err := strconv.ParseInt(c.Query("unitId"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("unitId required", map[string]any{"field": "unitId"})
	}
	stats, err := h.equipment.StatsForUnit(c.UserContext(), principal, unitID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func equipmentInput(req dto.EquipmentRequest) service.EquipmentInput {
	return service.EquipmentInput{
		Name:            req.Name,
		Category:        req.Category,
		Manufacturer:    req.Manufacturer,
		Model:           req.Model,
		SerialNumber:    req.SerialNumber,
		Location:        req.Location,
		Status:          req.Status,
		NextMaintenance: req.NextMaintenance,
		PurchaseDate:    req.PurchaseDate,
		WarrantyExpiry:  req.WarrantyExpiry,
		LastMaintenance: req.LastMaintenance,
		Cost:            req.Cost,
		UnitID:          req.UnitID,
	}
}
