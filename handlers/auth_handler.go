package handlers

import (
	"github.com/anjiri1684/studio_tracker/middleware"
	"github.com/anjiri1684/studio_tracker/models"
	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser returns the instructor row ensured by the tenant middleware.
func (h *Handler) GetCurrentUser(c *fiber.Ctx) error {
	user := middleware.Instructor(c)
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(user)
}

func (h *Handler) UpdateCurrentUser(c *fiber.Ctx) error {
	user := middleware.Instructor(c)
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var req models.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updated := *user
	req.Apply(&updated)
	stored, err := h.store.UpsertUser(c.UserContext(), updated)
	if err != nil {
		return storageError(c, err, "update profile")
	}
	return c.JSON(stored)
}
