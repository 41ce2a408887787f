package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"erp-service/internal/logger"
	"erp-service/internal/models"
	"erp-service/internal/services"
)

type ContractHandler struct {
	contractService *services.ContractService
	log             *logger.Logger
}

func NewContractHandler(contractService *services.ContractService, log *logger.Logger) *ContractHandler {
	return &ContractHandler{contractService: contractService, log: log}
}

// CreateContract creates a new contract
// @Summary Create a new contract
// @Description Create a contract; the reference number is generated server-side
// @Tags contracts
// @Accept json
// @Produce json
// @Param contract body models.Contract true "Contract data"
// @Success 201 {object} models.Contract
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Router /contracts [post]
func (h *ContractHandler) CreateContract(c *fiber.Ctx) error {
	var contract models.Contract
	if err := c.BodyParser(&contract); err != nil {
		return badRequest(c, "Invalid request format", err)
	}
	if contract.Title == "" {
		return badRequest(c, "Contract title is required", nil)
	}
	if err := h.contractService.Create(c.Context(), &contract); err != nil {
		h.log.Error("failed to create contract", "error", err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contract)
}

// GetContract returns a contract by ID
// @Summary Get a contract by ID
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID" Format(uuid)
// @Success 200 {object} models.Contract
// @Failure 404 {object} map[string]interface{} "Contract not found"
// @Router /contracts/{id} [get]
func (h *ContractHandler) GetContract(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	contract, err := h.contractService.Get(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(contract)
}

// ListContracts returns all contracts
// @Summary List contracts
// @Tags contracts
// @Produce json
// @Success 200 {array} models.Contract
// @Router /contracts [get]
func (h *ContractHandler) ListContracts(c *fiber.Ctx) error {
	contracts, err := h.contractService.List(c.Context())
	if err != nil {
		h.log.Error("failed to list contracts", "error", err)
		return errorJSON(c, err)
	}
	return c.JSON(contracts)
}

// UpdateContract updates an existing contract
// @Summary Update a contract
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID" Format(uuid)
// @Param contract body models.Contract true "Contract data"
// @Success 200 {object} models.Contract
// @Failure 404 {object} map[string]interface{} "Contract not found"
// @Router /contracts/{id} [put]
func (h *ContractHandler) UpdateContract(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	var contract models.Contract
	if err := c.BodyParser(&contract); err != nil {
		return badRequest(c, "Invalid request format", err)
	}
	contract.ID = id
	if err := h.contractService.Update(c.Context(), &contract); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(contract)
}

// DeleteContract deletes a contract
// @Summary Delete a contract
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID" Format(uuid)
// @Success 204 "Contract deleted"
// @Failure 404 {object} map[string]interface{} "Contract not found"
// @Router /contracts/{id} [delete]
func (h *ContractHandler) DeleteContract(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	if err := h.contractService.Delete(c.Context(), id); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
