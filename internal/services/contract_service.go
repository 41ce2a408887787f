package services

import (
	"context"

	"github.com/google/uuid"

	"erp-service/internal/apperr"
	"erp-service/internal/models"
	"erp-service/internal/repository"
)

// ContractService handles Contract CRUD.
type ContractService struct {
	repo     *repository.ContractRepository
	refcodes *ReferenceCodeService
}

func NewContractService(repo *repository.ContractRepository, refcodes *ReferenceCodeService) *ContractService {
	return &ContractService{repo: repo, refcodes: refcodes}
}

// Create assigns a fresh reference number and persists the contract.
func (s *ContractService) Create(ctx context.Context, contract *models.Contract) error {
	ref, err := s.refcodes.Generate(ctx, PrefixContract, s.repo.ExistsByReferenceNumber)
	if err != nil {
		return err
	}
	contract.ID = uuid.New()
	contract.ReferenceNumber = ref
	if err := s.repo.Create(ctx, contract); err != nil {
		return createError(err, "contract")
	}
	return nil
}

func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	contract, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrStore(err, "contract %s not found", id)
	}
	return contract, nil
}

func (s *ContractService) List(ctx context.Context) ([]models.Contract, error) {
	contracts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.StoreFailure(err, "could not list contracts")
	}
	return contracts, nil
}

func (s *ContractService) Update(ctx context.Context, contract *models.Contract) error {
	if _, err := s.repo.Get(ctx, contract.ID); err != nil {
		return notFoundOrStore(err, "contract %s not found", contract.ID)
	}
	if err := s.repo.Update(ctx, contract); err != nil {
		return apperr.StoreFailure(err, "could not update contract %s", contract.ID)
	}
	return nil
}

// Delete removes a contract. Contracts own nothing, so this is a plain row delete.
func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return notFoundOrStore(err, "contract %s not found", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.StoreFailure(err, "could not delete contract %s", id)
	}
	return nil
}
