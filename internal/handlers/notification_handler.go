package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/propspace/propspace-backend/internal/actor"
	"github.com/propspace/propspace-backend/internal/dto"
	"github.com/propspace/propspace-backend/internal/services"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /notifications - the actor's notification feed.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	page, limit, offset := pagination(c)

	notifications, total, err := h.notifications.ListForUser(act.ID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NotificationListResponse{
		Notifications: notifications,
		Total:         total,
		Page:          page,
		Limit:         limit,
	})
}
