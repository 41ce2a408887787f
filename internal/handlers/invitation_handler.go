package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"erp-service/internal/logger"
	"erp-service/internal/services"
)

// userIDHeader carries the acting user's id, set by the authentication layer
// in front of this service.
const userIDHeader = "X-User-ID"

type InvitationHandler struct {
	invitationService *services.InvitationService
	log               *logger.Logger
}

func NewInvitationHandler(invitationService *services.InvitationService, log *logger.Logger) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService, log: log}
}

type issueInvitationRequest struct {
	EngineerID uuid.UUID `json:"engineer_id"`
}

// IssueInvitation invites an engineer to a tender
// @Summary Issue a tender invitation
// @Description Creates a PENDING invitation and emails the engineer an opaque token
// @Tags invitations
// @Accept json
// @Produce json
// @Param id path string true "Tender ID" Format(uuid)
// @Param request body issueInvitationRequest true "Engineer to invite"
// @Success 201 {object} models.TenderInvitation "Invitation issued"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Tender or engineer not found"
// @Router /tenders/{id}/invitations [post]
func (h *InvitationHandler) IssueInvitation(c *fiber.Ctx) error {
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	var req issueInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request format", err)
	}
	if req.EngineerID == uuid.Nil {
		return badRequest(c, "engineer_id is required", nil)
	}
	inv, err := h.invitationService.Issue(c.Context(), tenderID, req.EngineerID)
	if err != nil {
		h.log.Error("failed to issue invitation", "tender_id", tenderID, "error", err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// LookupInvitation resolves an invitation token
// @Summary Look up an invitation by token
// @Description Returns the invitation with tender, client and engineer details
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} models.TenderInvitation
// @Failure 404 {object} map[string]interface{} "Invitation not found"
// @Router /invitations/{token} [get]
func (h *InvitationHandler) LookupInvitation(c *fiber.Ctx) error {
	inv, err := h.invitationService.Lookup(c.Context(), c.Params("token"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(inv)
}

// AcceptInvitation accepts an invitation
// @Summary Accept a tender invitation
// @Description Only the invited engineer may accept, and only once
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Param X-User-ID header string true "Acting user ID" Format(uuid)
// @Success 204 "Invitation accepted"
// @Failure 403 {object} map[string]interface{} "Acting user is not the invited engineer"
// @Failure 404 {object} map[string]interface{} "Invitation not found"
// @Failure 409 {object} map[string]interface{} "Invitation already accepted"
// @Router /invitations/{token}/accept [post]
func (h *InvitationHandler) AcceptInvitation(c *fiber.Ctx) error {
	actingUserID, err := uuid.Parse(c.Get(userIDHeader))
	if err != nil {
		return badRequest(c, "Missing or invalid "+userIDHeader+" header", err)
	}
	if err := h.invitationService.Accept(c.Context(), c.Params("token"), actingUserID); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
