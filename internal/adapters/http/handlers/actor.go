package handlers

import (
	"tricount-api/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// actorFrom rebuilds the authenticated user from the claims the auth
// middleware stored in Locals.
func actorFrom(c *fiber.Ctx) (*domain.User, bool) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return nil, false
	}

	email, _ := c.Locals("email").(string)
	fullName, _ := c.Locals("fullName").(string)
	role, _ := c.Locals("role").(string)

	return &domain.User{
		ID:       userID,
		Email:    email,
		FullName: fullName,
		Role:     domain.Role(role),
	}, true
}
