package services

import (
	"context"
	"io"

	"github.com/google/uuid"

	"erp-service/internal/apperr"
	"erp-service/internal/models"
	"erp-service/internal/repository"
)

// FileFetcher streams a stored file by key.
type FileFetcher interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// DocumentService handles Document metadata CRUD and download. Upload
// plumbing lives at the HTTP boundary and is not this service's concern;
// it only registers metadata rows.
type DocumentService struct {
	repo     *repository.DocumentRepository
	projects *repository.ProjectRepository
	files    FileFetcher
	refcodes *ReferenceCodeService
}

func NewDocumentService(repo *repository.DocumentRepository, projects *repository.ProjectRepository, files FileFetcher, refcodes *ReferenceCodeService) *DocumentService {
	return &DocumentService{repo: repo, projects: projects, files: files, refcodes: refcodes}
}

// Create assigns a fresh reference number and persists the document
// metadata. A project link, when present, must point at an existing project.
func (s *DocumentService) Create(ctx context.Context, doc *models.Document) error {
	if doc.ProjectID != nil {
		if _, err := s.projects.Get(ctx, *doc.ProjectID); err != nil {
			return notFoundOrStore(err, "project %s not found", *doc.ProjectID)
		}
	}
	ref, err := s.refcodes.Generate(ctx, PrefixDocument, s.repo.ExistsByReferenceNumber)
	if err != nil {
		return err
	}
	doc.ID = uuid.New()
	doc.ReferenceNumber = ref
	if err := s.repo.Create(ctx, doc); err != nil {
		return createError(err, "document")
	}
	return nil
}

func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrStore(err, "document %s not found", id)
	}
	return doc, nil
}

func (s *DocumentService) List(ctx context.Context) ([]models.Document, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.StoreFailure(err, "could not list documents")
	}
	return docs, nil
}

// Download streams the stored file of a document.
func (s *DocumentService) Download(ctx context.Context, id uuid.UUID) (*models.Document, io.ReadCloser, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, notFoundOrStore(err, "document %s not found", id)
	}
	rc, err := s.files.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, apperr.StoreFailure(err, "could not fetch document %s from storage", id)
	}
	return doc, rc, nil
}
