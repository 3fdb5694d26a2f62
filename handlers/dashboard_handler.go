package handlers

import (
	"github.com/anjiri1684/studio_tracker/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetDashboardMetrics(c *fiber.Ctx) error {
	metrics, err := h.store.GetDashboardMetrics(c.UserContext(), middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "fetch dashboard metrics")
	}
	return c.JSON(metrics)
}
