package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/persistence"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	pg    *persistence.Postgres
	redis *persistence.Redis
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready. Redis is optional and does not gate readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{"postgres": "ok", "redis": "ok"}
	status := fiber.StatusOK

	if h.pg == nil || h.pg.PoolHandle() == nil {
		checks["postgres"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	} else if err := h.pg.PoolHandle().Ping(c.UserContext()); err != nil {
		checks["postgres"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}
	if err := h.redis.Ping(c.UserContext()); err != nil {
		checks["redis"] = "unavailable"
	}

	return c.Status(status).JSON(checks)
}
