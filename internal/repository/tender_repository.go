package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"erp-service/internal/models"
)

// TenderRepository provides methods to interact with the Tender model and its
// owned Invitations and TechnicalSubmissions in the database.
type TenderRepository struct {
	db *gorm.DB
}

// NewTenderRepository creates a new TenderRepository instance with the provided GORM database connection.
func NewTenderRepository(db *gorm.DB) *TenderRepository {
	return &TenderRepository{db: db}
}

func (r *TenderRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create creates a new Tender in the database.
func (r *TenderRepository) Create(ctx context.Context, tender *models.Tender) error {
	return r.db.WithContext(ctx).Create(tender).Error
}

// Get retrieves a Tender by its ID from the database.
func (r *TenderRepository) Get(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	var tender models.Tender
	err := r.db.WithContext(ctx).First(&tender, "id = ?", id).Error
	return &tender, err
}

// GetWithRelations retrieves a Tender along with its Invitations and Submissions.
func (r *TenderRepository) GetWithRelations(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	var tender models.Tender
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Invitations").
		Preload("Submissions").
		First(&tender, "id = ?", id).Error
	return &tender, err
}

// List retrieves all Tenders from the database.
func (r *TenderRepository) List(ctx context.Context) ([]models.Tender, error) {
	var tenders []models.Tender
	err := r.db.WithContext(ctx).Find(&tenders).Error
	return tenders, err
}

// Update updates an existing Tender in the database.
func (r *TenderRepository) Update(ctx context.Context, tender *models.Tender) error {
	return r.db.WithContext(ctx).Save(tender).Error
}

// Delete deletes the Tender row by its ID.
func (r *TenderRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).Delete(&models.Tender{}, "id = ?", id).Error
}

// ExistsByReferenceNumber reports whether a Tender with the given reference number exists.
func (r *TenderRepository) ExistsByReferenceNumber(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tender{}).
		Where("reference_number = ?", ref).
		Count(&count).Error
	return count > 0, err
}

func (r *TenderRepository) tenderIDsOfProject(tx *gorm.DB, projectID uuid.UUID) *gorm.DB {
	return tx.Model(&models.Tender{}).Select("id").Where("project_id = ?", projectID)
}

// DeleteInvitationsByTender removes all TenderInvitations of a Tender.
func (r *TenderRepository) DeleteInvitationsByTender(ctx context.Context, tx *gorm.DB, tenderID uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).
		Where("tender_id = ?", tenderID).
		Delete(&models.TenderInvitation{}).Error
}

// DeleteSubmissionsByTender removes all TechnicalSubmissions of a Tender.
func (r *TenderRepository) DeleteSubmissionsByTender(ctx context.Context, tx *gorm.DB, tenderID uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).
		Where("tender_id = ?", tenderID).
		Delete(&models.TechnicalSubmission{}).Error
}

// DeleteInvitationsByProject removes all TenderInvitations of every Tender of a Project.
func (r *TenderRepository) DeleteInvitationsByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	h := r.handle(tx).WithContext(ctx)
	return h.Where("tender_id IN (?)", r.tenderIDsOfProject(h.Session(&gorm.Session{NewDB: true}), projectID)).
		Delete(&models.TenderInvitation{}).Error
}

// DeleteSubmissionsByProject removes all TechnicalSubmissions of every Tender of a Project.
func (r *TenderRepository) DeleteSubmissionsByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	h := r.handle(tx).WithContext(ctx)
	return h.Where("tender_id IN (?)", r.tenderIDsOfProject(h.Session(&gorm.Session{NewDB: true}), projectID)).
		Delete(&models.TechnicalSubmission{}).Error
}

// DeleteByProject removes all Tender rows of a Project.
func (r *TenderRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.Tender{}).Error
}

// DetachFromAllClients sets client_id to NULL on every Tender referencing a Client.
func (r *TenderRepository) DetachFromAllClients(ctx context.Context, tx *gorm.DB) error {
	return r.handle(tx).WithContext(ctx).Model(&models.Tender{}).
		Where("client_id IS NOT NULL").
		Update("client_id", nil).Error
}
