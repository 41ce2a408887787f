package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"erp-service/internal/logger"
	"erp-service/internal/models"
	"erp-service/internal/services"
)

type ClientHandler struct {
	clientService    *services.ClientService
	lifecycleService *services.LifecycleService
	log              *logger.Logger
}

func NewClientHandler(clientService *services.ClientService, lifecycleService *services.LifecycleService, log *logger.Logger) *ClientHandler {
	return &ClientHandler{
		clientService:    clientService,
		lifecycleService: lifecycleService,
		log:              log,
	}
}

// CreateClient creates a new client
// @Summary Create a new client
// @Description Create a client; the reference number is generated server-side
// @Tags clients
// @Accept json
// @Produce json
// @Param client body models.Client true "Client data"
// @Success 201 {object} models.Client "Client successfully created"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 409 {object} map[string]interface{} "Reference number collision"
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var client models.Client
	if err := c.BodyParser(&client); err != nil {
		return badRequest(c, "Invalid request format", err)
	}
	if client.Name == "" {
		return badRequest(c, "Client name is required", nil)
	}
	if err := h.clientService.Create(c.Context(), &client); err != nil {
		h.log.Error("failed to create client", "error", err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetClient returns a client by ID
// @Summary Get a client by ID
// @Tags clients
// @Produce json
// @Param id path string true "Client ID" Format(uuid)
// @Success 200 {object} models.Client
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Client not found"
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	client, err := h.clientService.Get(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(client)
}

// ListClients returns all clients
// @Summary List clients
// @Tags clients
// @Produce json
// @Success 200 {array} models.Client
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.clientService.List(c.Context())
	if err != nil {
		h.log.Error("failed to list clients", "error", err)
		return errorJSON(c, err)
	}
	return c.JSON(clients)
}

// UpdateClient updates an existing client
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID" Format(uuid)
// @Param client body models.Client true "Client data"
// @Success 200 {object} models.Client
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Client not found"
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	var client models.Client
	if err := c.BodyParser(&client); err != nil {
		return badRequest(c, "Invalid request format", err)
	}
	client.ID = id
	if err := h.clientService.Update(c.Context(), &client); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(client)
}

// DeleteClient deletes a single client
// @Summary Delete a client
// @Description Blocked with 409 while projects or tenders still reference the client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID" Format(uuid)
// @Success 204 "Client deleted"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Client not found"
// @Failure 409 {object} map[string]interface{} "Client still referenced"
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	if err := h.lifecycleService.DeleteClient(c.Context(), id); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkDeleteClients deletes all clients
// @Summary Delete all clients
// @Description Administrative wipe; projects and tenders are detached, not deleted
// @Tags clients
// @Produce json
// @Success 200 {object} map[string]interface{} "Number of deleted clients"
// @Router /clients [delete]
func (h *ClientHandler) BulkDeleteClients(c *fiber.Ctx) error {
	deleted, err := h.lifecycleService.BulkDeleteClients(c.Context())
	if err != nil {
		h.log.Error("bulk client deletion failed", "error", err)
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
