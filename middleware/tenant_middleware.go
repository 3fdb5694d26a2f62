package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/anjiri1684/studio_tracker/models"
	"github.com/anjiri1684/studio_tracker/storage"
	"github.com/anjiri1684/studio_tracker/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const instructorKey = "instructor"

// UserStore is the part of storage.Storage the tenant middleware needs.
type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpsertUser(ctx context.Context, user models.User) (*models.User, error)
}

// Tenant resolves the calling instructor and makes sure a user row exists for
// it. The row is created on first sight only; later requests just read it.
func Tenant(auth Authenticator, users UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.Resolve(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
		}

		ctx := c.UserContext()
		user, err := users.GetUser(ctx, principal.ID)
		if errors.Is(err, storage.ErrNotFound) {
			user, err = users.UpsertUser(ctx, principal.User())
		}
		if errors.Is(err, storage.ErrEmailTaken) {
			utils.Logger.WithField("instructor_id", principal.ID).Warn("⚠️ email already belongs to another instructor")
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Email already belongs to another account"})
		}
		if err == nil && user.ID != principal.ID {
			err = fmt.Errorf("user row %s does not match principal %s", user.ID, principal.ID)
		}
		if err != nil {
			utils.Logger.WithError(err).WithField("instructor_id", principal.ID).Error("🔥 failed to load instructor")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load user"})
		}

		c.Locals(instructorKey, user)
		return c.Next()
	}
}

// Instructor returns the user stored by Tenant.
func Instructor(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(instructorKey).(*models.User)
	return user
}

// InstructorID is the tenant key of the request, uuid.Nil outside Tenant.
func InstructorID(c *fiber.Ctx) uuid.UUID {
	if user := Instructor(c); user != nil {
		return user.ID
	}
	return uuid.Nil
}
