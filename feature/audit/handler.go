package audit

import (
	"bucket-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the audit journal.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/audit", h.HandleRecent)
}

// HandleRecent returns the most recent journal entries.
// @Summary Recent Audit Events
// @Description Returns the most recent object operations recorded for the bucket, newest first.
// @Tags audit
// @Produce json
// @Param limit query int false "Maximum number of events" default(50)
// @Success 200 {array} audit.Event
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /audit [get]
func (h *Handler) HandleRecent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	events, err := h.service.Recent(c.Context(), c.QueryInt("limit", DefaultLimit))
	if err != nil {
		l.Error("Audit query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(events)
}
