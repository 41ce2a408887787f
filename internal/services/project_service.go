package services

import (
	"context"

	"github.com/google/uuid"

	"erp-service/internal/apperr"
	"erp-service/internal/models"
	"erp-service/internal/repository"
)

// ProjectService handles routine Project and Task CRUD. Deletion goes
// through the LifecycleService instead.
type ProjectService struct {
	repo     *repository.ProjectRepository
	tasks    *repository.TaskRepository
	refcodes *ReferenceCodeService
}

func NewProjectService(repo *repository.ProjectRepository, tasks *repository.TaskRepository, refcodes *ReferenceCodeService) *ProjectService {
	return &ProjectService{repo: repo, tasks: tasks, refcodes: refcodes}
}

// Create assigns a fresh reference number and persists the project.
func (s *ProjectService) Create(ctx context.Context, project *models.Project) error {
	ref, err := s.refcodes.Generate(ctx, PrefixProject, s.repo.ExistsByReferenceNumber)
	if err != nil {
		return err
	}
	project.ID = uuid.New()
	project.ReferenceNumber = ref
	if err := s.repo.Create(ctx, project); err != nil {
		return createError(err, "project")
	}
	return nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrStore(err, "project %s not found", id)
	}
	return project, nil
}

// GetWithRelations returns the project with all owned relations loaded.
func (s *ProjectService) GetWithRelations(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, notFoundOrStore(err, "project %s not found", id)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.StoreFailure(err, "could not list projects")
	}
	return projects, nil
}

func (s *ProjectService) Update(ctx context.Context, project *models.Project) error {
	if _, err := s.repo.Get(ctx, project.ID); err != nil {
		return notFoundOrStore(err, "project %s not found", project.ID)
	}
	if err := s.repo.Update(ctx, project); err != nil {
		return apperr.StoreFailure(err, "could not update project %s", project.ID)
	}
	return nil
}

// CreateTask adds a task under an existing project.
func (s *ProjectService) CreateTask(ctx context.Context, task *models.Task) error {
	if _, err := s.repo.Get(ctx, task.ProjectID); err != nil {
		return notFoundOrStore(err, "project %s not found", task.ProjectID)
	}
	task.ID = uuid.New()
	if err := s.tasks.Create(ctx, task); err != nil {
		return createError(err, "task")
	}
	return nil
}

// ListTasks returns the tasks of a project.
func (s *ProjectService) ListTasks(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperr.StoreFailure(err, "could not list tasks of project %s", projectID)
	}
	return tasks, nil
}
