package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/propspace/propspace-backend/internal/apperr"
	"github.com/propspace/propspace-backend/internal/dto"
)

// fail translates a service error into the stable error envelope. Every
// handler funnels failures through here so the kind→status mapping never
// diverges per endpoint. Unknown errors are logged and masked.
func fail(c *fiber.Ctx, err error) error {
	status := apperr.HTTPStatus(err)
	kind, known := apperr.KindOf(err)
	message := err.Error()
	if !known {
		slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err)
		message = "Internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Error:   true,
		Kind:    string(kind),
		Message: message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   true,
		Kind:    string(apperr.KindValidation),
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized",
	})
}

// pagination reads page/limit query params with sane bounds.
func pagination(c *fiber.Ctx) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}
