package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"erp-service/internal/models"
)

// TaskRepository provides methods to interact with the Task model and its
// owned sub-entities in the database.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository instance with the provided GORM database connection.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create creates a new Task in the database.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Get retrieves a Task by its ID from the database.
func (r *TaskRepository) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	return &task, err
}

// ListByProject retrieves all Tasks of a Project.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&tasks).Error
	return tasks, err
}

// Update updates an existing Task in the database.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *TaskRepository) taskIDsOfProject(tx *gorm.DB, projectID uuid.UUID) *gorm.DB {
	return tx.Model(&models.Task{}).Select("id").Where("project_id = ?", projectID)
}

// DeleteChecklistsByProject removes all TaskChecklists belonging to Tasks of a Project.
func (r *TaskRepository) DeleteChecklistsByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	h := r.handle(tx).WithContext(ctx)
	return h.Where("task_id IN (?)", r.taskIDsOfProject(h.Session(&gorm.Session{NewDB: true}), projectID)).
		Delete(&models.TaskChecklist{}).Error
}

// DeleteAttachmentsByProject removes all TaskAttachment rows belonging to Tasks of a Project.
func (r *TaskRepository) DeleteAttachmentsByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	h := r.handle(tx).WithContext(ctx)
	return h.Where("task_id IN (?)", r.taskIDsOfProject(h.Session(&gorm.Session{NewDB: true}), projectID)).
		Delete(&models.TaskAttachment{}).Error
}

// DeleteCommentsByProject removes all TaskComments belonging to Tasks of a Project.
func (r *TaskRepository) DeleteCommentsByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	h := r.handle(tx).WithContext(ctx)
	return h.Where("task_id IN (?)", r.taskIDsOfProject(h.Session(&gorm.Session{NewDB: true}), projectID)).
		Delete(&models.TaskComment{}).Error
}

// DeleteAssignmentsByProject removes all TaskAssignments belonging to Tasks of a Project.
func (r *TaskRepository) DeleteAssignmentsByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	h := r.handle(tx).WithContext(ctx)
	return h.Where("task_id IN (?)", r.taskIDsOfProject(h.Session(&gorm.Session{NewDB: true}), projectID)).
		Delete(&models.TaskAssignment{}).Error
}

// DeleteByProject removes all Task rows of a Project. Sub-entities must be
// removed first to keep foreign keys consistent.
func (r *TaskRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.Task{}).Error
}

// ListAttachmentKeysByProject returns the storage keys of all task attachments of a Project.
func (r *TaskRepository) ListAttachmentKeysByProject(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&models.TaskAttachment{}).
		Where("task_id IN (?)", r.taskIDsOfProject(r.db.Session(&gorm.Session{NewDB: true}), projectID)).
		Pluck("storage_key", &keys).Error
	return keys, err
}
