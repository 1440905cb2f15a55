package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/dto"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/service"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
	stats   *service.StatsService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(tickets *service.TicketService, stats *service.StatsService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, stats: stats}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.CreateTicket(c.UserContext(), principal, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Department:  req.Department,
		Floor:       req.Floor,
		Room:        req.Room,
		Bed:         req.Bed,
		UnitID:      req.UnitID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ticket": dto.NewTicketResponse(ticket)})
}

// ListByUnit GET /tickets/unit/:unitId.
func (h *TicketsHandler) ListByUnit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	unitID, err := strconv.ParseInt(c.Params("unitId"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid unitId", map[string]any{"field": "unitId"})
	}

	items, err := h.tickets.ListUnitTickets(c.UserContext(), principal, unitID)
	if err != nil {
		return err
	}
	resp := make([]dto.TicketListItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, dto.NewTicketListItemResponse(item))
	}
	return c.JSON(fiber.Map{"tickets": resp})
}

// ListPending GET /tickets/pending.
func (h *TicketsHandler) ListPending(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	tickets, err := h.tickets.ListPendingQueue(c.UserContext(), principal)
	if err != nil {
		return err
	}
	resp := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		resp = append(resp, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"tickets": resp})
}

// Update PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.UpdateTicket(c.UserContext(), principal, ticketID, service.TicketUpdateInput{
		Status:     req.Status,
		Priority:   req.Priority,
		Category:   req.Category,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ticket": dto.NewTicketResponse(ticket)})
}

// SetStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) SetStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.SetStatus(c.UserContext(), principal, ticketID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ticket": dto.NewTicketResponse(ticket)})
}

// Counts GET /tickets/count.
func (h *TicketsHandler) Counts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	counts, err := h.stats.CountsForPrincipal(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(counts)
}

func parseTicketID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid ticket id", map[string]any{"field": "id"})
	}
	return id, nil
}
