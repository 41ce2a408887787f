package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"erp-service/internal/logger"
	"erp-service/internal/models"
	"erp-service/internal/services"
)

type TenderHandler struct {
	tenderService    *services.TenderService
	lifecycleService *services.LifecycleService
	log              *logger.Logger
}

func NewTenderHandler(tenderService *services.TenderService, lifecycleService *services.LifecycleService, log *logger.Logger) *TenderHandler {
	return &TenderHandler{
		tenderService:    tenderService,
		lifecycleService: lifecycleService,
		log:              log,
	}
}

// CreateTender creates a new tender
// @Summary Create a new tender
// @Description Create a tender under an existing project; the reference number is generated server-side
// @Tags tenders
// @Accept json
// @Produce json
// @Param tender body models.Tender true "Tender data"
// @Success 201 {object} models.Tender "Tender successfully created"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /tenders [post]
func (h *TenderHandler) CreateTender(c *fiber.Ctx) error {
	var tender models.Tender
	if err := c.BodyParser(&tender); err != nil {
		return badRequest(c, "Invalid request format", err)
	}
	if tender.Title == "" {
		return badRequest(c, "Tender title is required", nil)
	}
	if tender.ProjectID == uuid.Nil {
		return badRequest(c, "Tender project_id is required", nil)
	}
	if err := h.tenderService.Create(c.Context(), &tender); err != nil {
		h.log.Error("failed to create tender", "error", err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tender)
}

// GetTender returns a tender by ID
// @Summary Get a tender by ID
// @Tags tenders
// @Produce json
// @Param id path string true "Tender ID" Format(uuid)
// @Success 200 {object} models.Tender
// @Failure 404 {object} map[string]interface{} "Tender not found"
// @Router /tenders/{id} [get]
func (h *TenderHandler) GetTender(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	tender, err := h.tenderService.GetWithRelations(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(tender)
}

// ListTenders returns all tenders
// @Summary List tenders
// @Tags tenders
// @Produce json
// @Success 200 {array} models.Tender
// @Router /tenders [get]
func (h *TenderHandler) ListTenders(c *fiber.Ctx) error {
	tenders, err := h.tenderService.List(c.Context())
	if err != nil {
		h.log.Error("failed to list tenders", "error", err)
		return errorJSON(c, err)
	}
	return c.JSON(tenders)
}

// UpdateTender updates an existing tender
// @Summary Update a tender
// @Tags tenders
// @Accept json
// @Produce json
// @Param id path string true "Tender ID" Format(uuid)
// @Param tender body models.Tender true "Tender data"
// @Success 200 {object} models.Tender
// @Failure 404 {object} map[string]interface{} "Tender not found"
// @Router /tenders/{id} [put]
func (h *TenderHandler) UpdateTender(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	var tender models.Tender
	if err := c.BodyParser(&tender); err != nil {
		return badRequest(c, "Invalid request format", err)
	}
	tender.ID = id
	if err := h.tenderService.Update(c.Context(), &tender); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(tender)
}

// DeleteTender deletes a tender with its invitations and submissions
// @Summary Delete a tender
// @Tags tenders
// @Produce json
// @Param id path string true "Tender ID" Format(uuid)
// @Success 204 "Tender deleted"
// @Failure 404 {object} map[string]interface{} "Tender not found"
// @Router /tenders/{id} [delete]
func (h *TenderHandler) DeleteTender(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	if err := h.lifecycleService.DeleteTender(c.Context(), id); err != nil {
		h.log.Error("failed to delete tender", "tender_id", id, "error", err)
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
