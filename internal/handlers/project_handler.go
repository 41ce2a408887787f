package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"erp-service/internal/logger"
	"erp-service/internal/models"
	"erp-service/internal/services"
)

type ProjectHandler struct {
	projectService   *services.ProjectService
	lifecycleService *services.LifecycleService
	log              *logger.Logger
}

func NewProjectHandler(projectService *services.ProjectService, lifecycleService *services.LifecycleService, log *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService:   projectService,
		lifecycleService: lifecycleService,
		log:              log,
	}
}

// CreateProject creates a new project
// @Summary Create a new project
// @Description Create a project; the reference number is generated server-side
// @Tags projects
// @Accept json
// @Produce json
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project "Project successfully created"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return badRequest(c, "Invalid request format", err)
	}
	if project.Name == "" {
		return badRequest(c, "Project name is required", nil)
	}
	if err := h.projectService.Create(c.Context(), &project); err != nil {
		h.log.Error("failed to create project", "error", err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject returns a project by ID
// @Summary Get a project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} models.Project
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	project, err := h.projectService.Get(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(project)
}

// GetProjectFull returns a project with all owned relations
// @Summary Get a project with its tasks, tenders, documents and other relations
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} models.Project
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id}/full [get]
func (h *ProjectHandler) GetProjectFull(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	project, err := h.projectService.GetWithRelations(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(project)
}

// ListProjects returns all projects
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {array} models.Project
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.projectService.List(c.Context())
	if err != nil {
		h.log.Error("failed to list projects", "error", err)
		return errorJSON(c, err)
	}
	return c.JSON(projects)
}

// UpdateProject updates an existing project
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Param project body models.Project true "Project data"
// @Success 200 {object} models.Project
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return badRequest(c, "Invalid request format", err)
	}
	project.ID = id
	if err := h.projectService.Update(c.Context(), &project); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(project)
}

// DeleteProject deletes a project and everything it owns
// @Summary Delete a project
// @Description Cascades to tasks, tenders, invitations, checklists and attachments; documents are detached
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Success 204 "Project deleted"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	if err := h.lifecycleService.DeleteProject(c.Context(), id); err != nil {
		h.log.Error("failed to delete project", "project_id", id, "error", err)
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateTask adds a task to a project
// @Summary Create a task under a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Param task body models.Task true "Task data"
// @Success 201 {object} models.Task
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id}/tasks [post]
func (h *ProjectHandler) CreateTask(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	var task models.Task
	if err := c.BodyParser(&task); err != nil {
		return badRequest(c, "Invalid request format", err)
	}
	task.ProjectID = projectID
	if task.Name == "" {
		return badRequest(c, "Task name is required", nil)
	}
	if err := h.projectService.CreateTask(c.Context(), &task); err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// ListTasks returns the tasks of a project
// @Summary List tasks of a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {array} models.Task
// @Router /projects/{id}/tasks [get]
func (h *ProjectHandler) ListTasks(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	tasks, err := h.projectService.ListTasks(c.Context(), projectID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(tasks)
}
