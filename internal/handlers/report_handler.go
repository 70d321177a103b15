package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.reports.ListReports(c.UserContext())
	if err != nil {
		return internalError(c, "list reported products", err)
	}
	return c.JSON(reports)
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var report models.ReportedProduct
	if err := c.BodyParser(&report); err != nil {
		return badRequest(c, "Invalid request body")
	}
	report.ID = ""

	res, err := h.reports.CreateReport(c.UserContext(), &report)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReport) {
			return badRequest(c, err.Error())
		}
		return internalError(c, "report product", err)
	}
	return c.JSON(res)
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid report id")
	}

	res, err := h.reports.DeleteReport(c.UserContext(), id)
	if err != nil {
		return internalError(c, "delete reported product", err)
	}
	return c.JSON(res)
}
