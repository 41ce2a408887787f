package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"erp-service/internal/apperr"
	"erp-service/internal/models"
	"erp-service/internal/repository"
)

// ClientService handles routine Client CRUD. Deletion goes through the
// LifecycleService instead.
type ClientService struct {
	repo     *repository.ClientRepository
	refcodes *ReferenceCodeService
}

func NewClientService(repo *repository.ClientRepository, refcodes *ReferenceCodeService) *ClientService {
	return &ClientService{repo: repo, refcodes: refcodes}
}

// Create assigns a fresh reference number and persists the client.
func (s *ClientService) Create(ctx context.Context, client *models.Client) error {
	ref, err := s.refcodes.Generate(ctx, PrefixClient, s.repo.ExistsByReferenceNumber)
	if err != nil {
		return err
	}
	client.ID = uuid.New()
	client.ReferenceNumber = ref
	if err := s.repo.Create(ctx, client); err != nil {
		return createError(err, "client")
	}
	return nil
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrStore(err, "client %s not found", id)
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.StoreFailure(err, "could not list clients")
	}
	return clients, nil
}

func (s *ClientService) Update(ctx context.Context, client *models.Client) error {
	if _, err := s.repo.Get(ctx, client.ID); err != nil {
		return notFoundOrStore(err, "client %s not found", client.ID)
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return apperr.StoreFailure(err, "could not update client %s", client.ID)
	}
	return nil
}

// createError maps an insert failure: a unique-index violation (reference
// number or token collision at write time) surfaces as Conflict, anything
// else as StoreFailure.
func createError(err error, entity string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("%s violates a uniqueness constraint", entity)
	}
	return apperr.StoreFailure(err, "could not create %s", entity)
}
