package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetActorIDFromToken returns the acting user id stored by the auth
// middleware. Every mutating billing call threads this value through as the
// ledger's recorded_by actor.
func GetActorIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing user id in token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user id in token")
	}
	return id, nil
}

// GetRoleFromToken returns the role claim hydrated by the auth middleware.
func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals("user_role").(string)
	return role
}
