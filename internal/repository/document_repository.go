package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"erp-service/internal/models"
)

// DocumentRepository provides methods to interact with the Document model in the database.
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository instance with the provided GORM database connection.
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create creates a new Document in the database.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// Get retrieves a Document by its ID from the database.
func (r *DocumentRepository) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	return &doc, err
}

// List retrieves all Documents from the database.
func (r *DocumentRepository) List(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.WithContext(ctx).Find(&docs).Error
	return docs, err
}

// Update updates an existing Document in the database.
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// Delete deletes a Document by its ID from the database.
func (r *DocumentRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).Delete(&models.Document{}, "id = ?", id).Error
}

// ExistsByReferenceNumber reports whether a Document with the given reference number exists.
func (r *DocumentRepository) ExistsByReferenceNumber(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Document{}).
		Where("reference_number = ?", ref).
		Count(&count).Error
	return count > 0, err
}

// DetachByProject sets project_id to NULL on all Documents of a Project.
// Documents outlive the project they were linked to.
func (r *DocumentRepository) DetachByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).Model(&models.Document{}).
		Where("project_id = ?", projectID).
		Update("project_id", nil).Error
}
