// Package actor extracts the acting account from verified JWT claims.
// Tokens are minted by the external identity service; this service only
// verifies them and reads who is calling.
package actor

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   identity.AccountID
	Role string
}

const adminGrantKey = "adminGrant"

// GrantAdmin marks the request as admitted by an out-of-band admin check
// (admin token, configured allowlist, stored role). FromContext reports
// such callers as admins even when their token claims a lesser role.
func GrantAdmin(c *fiber.Ctx) {
	c.Locals(adminGrantKey, true)
}

// FromContext reads the actor from the JWT placed in Fiber locals by the
// auth middleware.
func FromContext(c *fiber.Ctx) (Actor, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return Actor{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Actor{}, errors.New("missing sub claim")
	}

	id, err := identity.ParseAccountID(sub)
	if err != nil {
		return Actor{}, err
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}
	if granted, _ := c.Locals(adminGrantKey).(bool); granted {
		role = models.RoleAdmin
	}
	return Actor{ID: id, Role: role}, nil
}
