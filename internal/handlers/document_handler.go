package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"erp-service/internal/logger"
	"erp-service/internal/models"
	"erp-service/internal/services"
)

type DocumentHandler struct {
	documentService *services.DocumentService
	log             *logger.Logger
}

func NewDocumentHandler(documentService *services.DocumentService, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, log: log}
}

// CreateDocument registers a document
// @Summary Register a document
// @Description Registers document metadata; the binary is uploaded separately through the file gateway
// @Tags documents
// @Accept json
// @Produce json
// @Param document body models.Document true "Document data"
// @Success 201 {object} models.Document
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Linked project not found"
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *fiber.Ctx) error {
	var doc models.Document
	if err := c.BodyParser(&doc); err != nil {
		return badRequest(c, "Invalid request format", err)
	}
	if doc.Title == "" {
		return badRequest(c, "Document title is required", nil)
	}
	if err := h.documentService.Create(c.Context(), &doc); err != nil {
		h.log.Error("failed to create document", "error", err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// GetDocument returns a document by ID
// @Summary Get a document by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID" Format(uuid)
// @Success 200 {object} models.Document
// @Failure 404 {object} map[string]interface{} "Document not found"
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	doc, err := h.documentService.Get(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(doc)
}

// ListDocuments returns all documents
// @Summary List documents
// @Tags documents
// @Produce json
// @Success 200 {array} models.Document
// @Router /documents [get]
func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	docs, err := h.documentService.List(c.Context())
	if err != nil {
		h.log.Error("failed to list documents", "error", err)
		return errorJSON(c, err)
	}
	return c.JSON(docs)
}

// DownloadDocument streams the stored document file
// @Summary Download a document
// @Tags documents
// @Produce octet-stream
// @Param id path string true "Document ID" Format(uuid)
// @Success 200 {file} binary "Document content"
// @Failure 404 {object} map[string]interface{} "Document not found"
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) DownloadDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	doc, rc, err := h.documentService.Download(c.Context(), id)
	if err != nil {
		h.log.Error("failed to download document", "document_id", id, "error", err)
		return errorJSON(c, err)
	}
	defer rc.Close()

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Title+`"`)
	if doc.ContentType != "" {
		c.Set(fiber.HeaderContentType, doc.ContentType)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Send(data)
}
