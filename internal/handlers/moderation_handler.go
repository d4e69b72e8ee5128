package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/actor"
	"github.com/propspace/propspace-backend/internal/dto"
	"github.com/propspace/propspace-backend/internal/services"
)

type ModerationHandler struct {
	moderation *services.ModerationService
}

func NewModerationHandler(moderation *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

// ReportProperty handles POST /properties/:id/report.
func (h *ModerationHandler) ReportProperty(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid property ID")
	}

	var req dto.ReportPropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.moderation.ReportProperty(act.ID, propertyID, req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// ListReports handles GET /admin/reports.
func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status", "")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit > 100 {
		limit = 100
	}

	reports, total, err := h.moderation.ListReports(status, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ReportListResponse{
		Reports: reports,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// ActionReport handles PUT /admin/reports/:id.
func (h *ModerationHandler) ActionReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.ActionReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.moderation.ActionReport(reportID, req.Status, req.AdminNote); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report updated successfully"})
}
