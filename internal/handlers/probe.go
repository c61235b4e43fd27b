package handlers

import (
	"github.com/gofiber/fiber/v3"

	"lorakeys/internal/triggers"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	store *triggers.Store
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(store *triggers.Store) *ProbeHandler {
	return &ProbeHandler{store: store}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if the application can serve traffic (cache document
// location is reachable).
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if err := h.store.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "cache storage unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
