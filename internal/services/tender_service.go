package services

import (
	"context"

	"github.com/google/uuid"

	"erp-service/internal/apperr"
	"erp-service/internal/models"
	"erp-service/internal/repository"
)

// TenderService handles routine Tender CRUD. Deletion goes through the
// LifecycleService instead.
type TenderService struct {
	repo     *repository.TenderRepository
	projects *repository.ProjectRepository
	refcodes *ReferenceCodeService
}

func NewTenderService(repo *repository.TenderRepository, projects *repository.ProjectRepository, refcodes *ReferenceCodeService) *TenderService {
	return &TenderService{repo: repo, projects: projects, refcodes: refcodes}
}

// Create assigns a fresh reference number and persists the tender under an
// existing project.
func (s *TenderService) Create(ctx context.Context, tender *models.Tender) error {
	if _, err := s.projects.Get(ctx, tender.ProjectID); err != nil {
		return notFoundOrStore(err, "project %s not found", tender.ProjectID)
	}
	ref, err := s.refcodes.Generate(ctx, PrefixTender, s.repo.ExistsByReferenceNumber)
	if err != nil {
		return err
	}
	tender.ID = uuid.New()
	tender.ReferenceNumber = ref
	if err := s.repo.Create(ctx, tender); err != nil {
		return createError(err, "tender")
	}
	return nil
}

func (s *TenderService) Get(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	tender, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrStore(err, "tender %s not found", id)
	}
	return tender, nil
}

// GetWithRelations returns the tender with its invitations and submissions.
func (s *TenderService) GetWithRelations(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	tender, err := s.repo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, notFoundOrStore(err, "tender %s not found", id)
	}
	return tender, nil
}

func (s *TenderService) List(ctx context.Context) ([]models.Tender, error) {
	tenders, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.StoreFailure(err, "could not list tenders")
	}
	return tenders, nil
}

func (s *TenderService) Update(ctx context.Context, tender *models.Tender) error {
	if _, err := s.repo.Get(ctx, tender.ID); err != nil {
		return notFoundOrStore(err, "tender %s not found", tender.ID)
	}
	if err := s.repo.Update(ctx, tender); err != nil {
		return apperr.StoreFailure(err, "could not update tender %s", tender.ID)
	}
	return nil
}
