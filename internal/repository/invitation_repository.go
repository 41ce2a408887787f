package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"erp-service/internal/models"
)

// InvitationRepository provides methods to interact with the TenderInvitation
// model in the database.
type InvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository instance with the provided GORM database connection.
func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create creates a new TenderInvitation in the database.
func (r *InvitationRepository) Create(ctx context.Context, inv *models.TenderInvitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

// GetByToken retrieves a TenderInvitation by its token, along with the
// related Tender, the tender's Client and the invited Engineer.
func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*models.TenderInvitation, error) {
	var inv models.TenderInvitation
	err := r.db.WithContext(ctx).
		Preload("Tender").
		Preload("Tender.Client").
		Preload("Engineer").
		First(&inv, "invitation_token = ?", token).Error
	return &inv, err
}

// ListByTender retrieves all TenderInvitations of a Tender.
func (r *InvitationRepository) ListByTender(ctx context.Context, tenderID uuid.UUID) ([]models.TenderInvitation, error) {
	var invs []models.TenderInvitation
	err := r.db.WithContext(ctx).Where("tender_id = ?", tenderID).Find(&invs).Error
	return invs, err
}

// AcceptPending flips the invitation with the given token from PENDING to
// ACCEPTED in a single conditional update and returns the number of rows
// affected. Zero rows means the invitation was not PENDING at update time;
// under concurrent accept attempts exactly one caller sees 1.
func (r *InvitationRepository) AcceptPending(ctx context.Context, token string, acceptedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.TenderInvitation{}).
		Where("invitation_token = ? AND status = ?", token, models.InvitationStatusPending).
		Updates(map[string]interface{}{
			"status":      models.InvitationStatusAccepted,
			"accepted_at": acceptedAt,
		})
	return res.RowsAffected, res.Error
}
