package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/actor"
	"github.com/propspace/propspace-backend/internal/dto"
	"github.com/propspace/propspace-backend/internal/services"
)

type AdminHandler struct {
	listings *services.ListingService
}

func NewAdminHandler(listings *services.ListingService) *AdminHandler {
	return &AdminHandler{listings: listings}
}

// ListProperties handles GET /admin/properties - the review queue.
func (h *AdminHandler) ListProperties(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)

	properties, total, err := h.listings.ListForAdmin(c.Query("status", "pending"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.PropertyListResponse{
		Properties: properties,
		Total:      total,
		Page:       page,
		Limit:      limit,
	})
}

// DecideProperty handles PUT /admin/properties/:id/approve.
func (h *AdminHandler) DecideProperty(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid property ID")
	}

	var req dto.DecideListingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	property, err := h.listings.Decide(act, id, req.Action, req.Reason, req.AdminNotes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(property)
}

// ListUpdateRequests handles GET /admin/requests.
func (h *AdminHandler) ListUpdateRequests(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)

	requests, total, err := h.listings.ListUpdateRequestsForAdmin(c.Query("status", "pending"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.UpdateRequestListResponse{
		Requests: requests,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

// DecideUpdateRequest handles PUT /admin/requests/:id/handle-property-update.
func (h *AdminHandler) DecideUpdateRequest(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid request ID")
	}

	var req dto.DecideUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	request, err := h.listings.DecideUpdate(act, id, req.Action, req.Reason, req.UpdatedData)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}
