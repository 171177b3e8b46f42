package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte360/internal/auth"
	"github.com/spec-kit/soporte360/internal/service"
	apperrors "github.com/spec-kit/soporte360/pkg/util"
)

// MetricsHandler exposes the staff metrics endpoint.
type MetricsHandler struct {
	service *service.MetricsService
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metricsService *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: metricsService}
}

// Get handles GET /metrics.
func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	metrics, err := h.service.Compute(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(metrics)
}
