package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"erp-service/internal/models"
)

// ClientRepository provides methods to interact with the Client model in the database.
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository instance with the provided GORM database connection.
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create creates a new Client in the database.
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// Get retrieves a Client by its ID from the database.
func (r *ClientRepository) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error
	return &client, err
}

// List retrieves all Clients from the database.
func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).Find(&clients).Error
	return clients, err
}

// Update updates an existing Client in the database.
func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// Delete deletes a Client row by its ID.
func (r *ClientRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).Delete(&models.Client{}, "id = ?", id).Error
}

// DeleteAll removes every Client row.
func (r *ClientRepository) DeleteAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	res := r.handle(tx).WithContext(ctx).Where("1 = 1").Delete(&models.Client{})
	return res.RowsAffected, res.Error
}

// ExistsByReferenceNumber reports whether a Client with the given reference number exists.
func (r *ClientRepository) ExistsByReferenceNumber(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).
		Where("reference_number = ?", ref).
		Count(&count).Error
	return count > 0, err
}

// CountProjects counts Projects currently referencing the Client.
func (r *ClientRepository) CountProjects(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	return count, err
}

// CountTenders counts Tenders currently referencing the Client.
func (r *ClientRepository) CountTenders(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tender{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	return count, err
}

// ListDocumentKeys returns the stored document keys of all Clients that have one.
func (r *ClientRepository) ListDocumentKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&models.Client{}).
		Where("document_key IS NOT NULL").
		Pluck("document_key", &keys).Error
	return keys, err
}
