package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/actor"
	"github.com/propspace/propspace-backend/internal/dto"
	"github.com/propspace/propspace-backend/internal/models"
	"github.com/propspace/propspace-backend/internal/services"
	"github.com/propspace/propspace-backend/internal/store"
)

type PropertyHandler struct {
	listings *services.ListingService
}

func NewPropertyHandler(listings *services.ListingService) *PropertyHandler {
	return &PropertyHandler{listings: listings}
}

// Create handles POST /properties - submits a new listing for review.
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	property, err := h.listings.Submit(act, services.SubmitListingInput{
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		ListingType:  req.ListingType,
		Price:        req.Price,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
		YearBuilt:    req.YearBuilt,
		Parking:      req.Parking,
		Amenities:    req.Amenities,
		Images:       req.Images,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

// List handles GET /properties - public browse over visible listings.
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)
	filter := store.PublicFilter{
		City:         c.Query("city"),
		ListingType:  c.Query("listing_type"),
		PropertyType: c.Query("property_type"),
		MinPrice:     c.QueryFloat("min_price", 0),
		MaxPrice:     c.QueryFloat("max_price", 0),
	}

	properties, total, err := h.listings.ListPublic(filter, limit, offset)
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

// Get handles GET /properties/:id - public detail view, counts the view.
func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid property ID")
	}

	property, err := h.listings.GetPublic(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(property)
}

// UpdateOwn handles PUT /owner/properties/:id. The server infers what
// the call is: a status change when "status" is present, a direct edit
// while the listing is pending, or an update proposal once it is
// approved.
func (h *PropertyHandler) UpdateOwn(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid property ID")
	}

	var req dto.UpdateOwnPropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Status != nil {
		property, err := h.listings.ChangeOwnStatus(act, id, models.PropertyStatus(*req.Status))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(property)
	}

	current, err := h.listings.GetOwn(act, id)
	if err != nil {
		return fail(c, err)
	}
	// Approved listings take the review path instead of a direct edit.
	if current.Status == models.PropertyApproved {
		request, err := h.listings.ProposeUpdate(act, id, &req.PropertyPatch)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(request)
	}
	property, err := h.listings.EditPending(act, id, &req.PropertyPatch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(property)
}

// ListOwn handles GET /owner/properties.
func (h *PropertyHandler) ListOwn(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	page, limit, offset := pagination(c)

	properties, total, err := h.listings.ListOwn(act, c.Query("status"), limit, offset)
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

// DeleteOwn handles DELETE /owner/properties/:id.
func (h *PropertyHandler) DeleteOwn(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid property ID")
	}

	if err := h.listings.DeleteOwn(act, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Property deleted"})
}

// Favorite handles POST /properties/:id/favorite.
func (h *PropertyHandler) Favorite(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid property ID")
	}

	if err := h.listings.Favorite(act, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Property favorited"})
}

// Unfavorite handles DELETE /properties/:id/favorite.
func (h *PropertyHandler) Unfavorite(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid property ID")
	}

	if err := h.listings.Unfavorite(act, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Favorite removed"})
}
