package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"erp-service/internal/models"
)

// ProjectRepository provides methods to interact with the Project model and
// its directly-owned relations in the database.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository instance with the provided GORM database connection.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create creates a new Project in the database.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Get retrieves a Project by its ID from the database.
func (r *ProjectRepository) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	return &project, err
}

// GetWithRelations retrieves a Project by its ID along with its owned relations.
func (r *ProjectRepository) GetWithRelations(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Tasks").
		Preload("Tasks.Checklists").
		Preload("Tasks.Attachments").
		Preload("Tasks.Comments").
		Preload("Tasks.Assignments").
		Preload("Assignments").
		Preload("Checklists").
		Preload("Attachments").
		Preload("Documents").
		Preload("Tenders").
		First(&project, "id = ?", id).Error
	return &project, err
}

// List retrieves all Projects from the database.
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Find(&projects).Error
	return projects, err
}

// Update updates an existing Project in the database.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete deletes the Project row by its ID. Owned relations are handled by
// the lifecycle service before this is called.
func (r *ProjectRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).Delete(&models.Project{}, "id = ?", id).Error
}

// ExistsByReferenceNumber reports whether a Project with the given reference number exists.
func (r *ProjectRepository) ExistsByReferenceNumber(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("reference_number = ?", ref).
		Count(&count).Error
	return count > 0, err
}

// DeleteAssignments removes all ProjectAssignments of a Project.
func (r *ProjectRepository) DeleteAssignments(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.ProjectAssignment{}).Error
}

// DeleteChecklists removes all ProjectChecklists of a Project.
func (r *ProjectRepository) DeleteChecklists(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.ProjectChecklist{}).Error
}

// DeleteAttachments removes all ProjectAttachment rows of a Project. The
// stored files are cleaned up separately, outside the transaction.
func (r *ProjectRepository) DeleteAttachments(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.ProjectAttachment{}).Error
}

// ListAttachmentKeys returns the storage keys of all attachments of a Project.
func (r *ProjectRepository) ListAttachmentKeys(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&models.ProjectAttachment{}).
		Where("project_id = ?", projectID).
		Pluck("storage_key", &keys).Error
	return keys, err
}

// DetachFromAllClients sets client_id to NULL on every Project referencing a Client.
func (r *ProjectRepository) DetachFromAllClients(ctx context.Context, tx *gorm.DB) error {
	return r.handle(tx).WithContext(ctx).Model(&models.Project{}).
		Where("client_id IS NOT NULL").
		Update("client_id", nil).Error
}
