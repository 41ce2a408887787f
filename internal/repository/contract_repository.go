package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"erp-service/internal/models"
)

// ContractRepository provides methods to interact with the Contract model in the database.
type ContractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new ContractRepository instance with the provided GORM database connection.
func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create creates a new Contract in the database.
func (r *ContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

// Get retrieves a Contract by its ID from the database.
func (r *ContractRepository) Get(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).First(&contract, "id = ?", id).Error
	return &contract, err
}

// List retrieves all Contracts from the database.
func (r *ContractRepository) List(ctx context.Context) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).Find(&contracts).Error
	return contracts, err
}

// Update updates an existing Contract in the database.
func (r *ContractRepository) Update(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

// Delete deletes a Contract by its ID from the database.
func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Contract{}, "id = ?", id).Error
}

// ExistsByReferenceNumber reports whether a Contract with the given reference number exists.
func (r *ContractRepository) ExistsByReferenceNumber(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Contract{}).
		Where("reference_number = ?", ref).
		Count(&count).Error
	return count > 0, err
}
