package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/actor"
	"github.com/propspace/propspace-backend/internal/dto"
	"github.com/propspace/propspace-backend/internal/models"
	"github.com/propspace/propspace-backend/internal/services"
)

type RequestHandler struct {
	requests *services.RequestService
}

func NewRequestHandler(requests *services.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// Create handles POST /property-requests.
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	request, err := h.requests.Create(act, services.CreateRequestInput{
		PropertyID:  req.PropertyID,
		RequestType: req.RequestType,
		Message:     req.Message,
		OfferAmount: req.OfferAmount,
		MoveInDate:  req.PreferredMoveInDate,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

// Respond handles PUT /property-requests/:id/status - owner decision.
func (h *RequestHandler) Respond(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid request ID")
	}

	var req dto.RespondTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	request, err := h.requests.Respond(act, id, models.RequestStatus(req.Status), req.ResponseMessage)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}

// Cancel handles PUT /property-requests/:id/cancel.
func (h *RequestHandler) Cancel(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid request ID")
	}

	request, err := h.requests.Cancel(act, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}

// ListMine handles GET /property-requests - requests the actor raised.
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	page, limit, offset := pagination(c)

	requests, total, err := h.requests.ListMine(act, c.Query("status"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.TransactionListResponse{
		Requests: requests,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

// ListIncoming handles GET /owner/property-requests - requests against
// the actor's listings.
func (h *RequestHandler) ListIncoming(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	page, limit, offset := pagination(c)

	requests, total, err := h.requests.ListIncoming(act, c.Query("status"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.TransactionListResponse{
		Requests: requests,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}
