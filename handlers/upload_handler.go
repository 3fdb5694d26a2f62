package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GenerateUploadSignature signs a direct browser upload of a profile image.
func (h *Handler) GenerateUploadSignature(c *fiber.Ctx) error {
	if h.uploads == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Uploads are not configured")
	}

	sig, err := h.uploads.Sign()
	if err != nil {
		return storageError(c, err, "sign upload params")
	}
	return c.JSON(sig)
}
