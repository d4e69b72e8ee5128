package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/propspace/propspace-backend/internal/actor"
	"github.com/propspace/propspace-backend/internal/config"
	"github.com/propspace/propspace-backend/internal/dto"
	"github.com/propspace/propspace-backend/internal/models"
	"gorm.io/gorm"
)

// AdminRequired gates the admin panel. It accepts, in order:
// 1. the configured admin token header
// 2. an account id on the configured admin list
// 3. a user whose stored role is admin
// Every admitted path records the admin grant so downstream role checks
// agree with the gate regardless of what the token claims.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if c.Get("X-Admin-Token") == cfg.AdminToken {
				actor.GrantAdmin(c)
				return c.Next()
			}
		}

		act, err := actor.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if contains(adminUserIDs, act.ID.String()) {
			actor.GrantAdmin(c)
			return c.Next()
		}

		var user models.User
		if err := db.First(&user, "id = ?", act.ID).Error; err == nil {
			if user.Role == models.RoleAdmin {
				actor.GrantAdmin(c)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
