package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"erp-service/internal/apperr"
	"erp-service/internal/logger"
	"erp-service/internal/metrics"
	"erp-service/internal/repository"
)

// FileRemover removes a stored file by key. Removal is best effort: the
// lifecycle service logs failures and keeps going.
type FileRemover interface {
	Remove(ctx context.Context, key string) error
}

// LifecycleService orchestrates aggregate root deletion. Every multi-row
// mutation runs inside a single transaction, children before parents, and
// file cleanup happens after commit so a storage hiccup can never roll back
// or corrupt the database state.
type LifecycleService struct {
	db        *gorm.DB
	clients   *repository.ClientRepository
	projects  *repository.ProjectRepository
	tasks     *repository.TaskRepository
	documents *repository.DocumentRepository
	tenders   *repository.TenderRepository
	files     FileRemover
	log       *logger.Logger
	metrics   *metrics.Collector
}

// NewLifecycleService creates a LifecycleService over the given repositories.
func NewLifecycleService(
	db *gorm.DB,
	clients *repository.ClientRepository,
	projects *repository.ProjectRepository,
	tasks *repository.TaskRepository,
	documents *repository.DocumentRepository,
	tenders *repository.TenderRepository,
	files FileRemover,
	log *logger.Logger,
	collector *metrics.Collector,
) *LifecycleService {
	return &LifecycleService{
		db:        db,
		clients:   clients,
		projects:  projects,
		tasks:     tasks,
		documents: documents,
		tenders:   tenders,
		files:     files,
		log:       log.With("service", "LifecycleService"),
		metrics:   collector,
	}
}

// DeleteProject removes a Project and everything it owns: tender
// invitations and submissions, tenders, task sub-entities, tasks, project
// checklists, attachments and assignments. Documents survive and are only
// detached. Attachment files are removed from storage after the transaction
// commits.
func (s *LifecycleService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	if _, err := s.projects.Get(ctx, id); err != nil {
		return notFoundOrStore(err, "project %s not found", id)
	}

	fileKeys, err := s.collectProjectFileKeys(ctx, id)
	if err != nil {
		return apperr.StoreFailure(err, "could not collect attachment keys for project %s", id)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tenders.DeleteInvitationsByProject(ctx, tx, id); err != nil {
			return err
		}
		if err := s.tenders.DeleteSubmissionsByProject(ctx, tx, id); err != nil {
			return err
		}
		if err := s.tenders.DeleteByProject(ctx, tx, id); err != nil {
			return err
		}
		if err := s.tasks.DeleteChecklistsByProject(ctx, tx, id); err != nil {
			return err
		}
		if err := s.tasks.DeleteAttachmentsByProject(ctx, tx, id); err != nil {
			return err
		}
		if err := s.tasks.DeleteCommentsByProject(ctx, tx, id); err != nil {
			return err
		}
		if err := s.tasks.DeleteAssignmentsByProject(ctx, tx, id); err != nil {
			return err
		}
		if err := s.tasks.DeleteByProject(ctx, tx, id); err != nil {
			return err
		}
		if err := s.projects.DeleteChecklists(ctx, tx, id); err != nil {
			return err
		}
		if err := s.projects.DeleteAttachments(ctx, tx, id); err != nil {
			return err
		}
		if err := s.projects.DeleteAssignments(ctx, tx, id); err != nil {
			return err
		}
		if err := s.documents.DetachByProject(ctx, tx, id); err != nil {
			return err
		}
		return s.projects.Delete(ctx, tx, id)
	})
	if err != nil {
		return apperr.StoreFailure(err, "project deletion rolled back")
	}

	s.removeFiles(ctx, fileKeys)
	s.metrics.ObserveDelete("project", time.Since(start))
	s.log.Info("project deleted", "project_id", id, "files_cleaned", len(fileKeys))
	return nil
}

// DeleteTender removes a Tender with its invitations and submissions.
func (s *LifecycleService) DeleteTender(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	if _, err := s.tenders.Get(ctx, id); err != nil {
		return notFoundOrStore(err, "tender %s not found", id)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tenders.DeleteInvitationsByTender(ctx, tx, id); err != nil {
			return err
		}
		if err := s.tenders.DeleteSubmissionsByTender(ctx, tx, id); err != nil {
			return err
		}
		return s.tenders.Delete(ctx, tx, id)
	})
	if err != nil {
		return apperr.StoreFailure(err, "tender deletion rolled back")
	}

	s.metrics.ObserveDelete("tender", time.Since(start))
	s.log.Info("tender deleted", "tender_id", id)
	return nil
}

// DeleteClient removes a single Client. The interactive path is
// deliberately conservative: when Projects or Tenders still reference the
// client the whole operation is blocked with a Conflict before any mutation.
// The administrative bulk wipe (BulkDeleteClients) force-detaches instead.
func (s *LifecycleService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return notFoundOrStore(err, "client %s not found", id)
	}

	projectCount, err := s.clients.CountProjects(ctx, id)
	if err != nil {
		return apperr.StoreFailure(err, "could not count projects of client %s", id)
	}
	tenderCount, err := s.clients.CountTenders(ctx, id)
	if err != nil {
		return apperr.StoreFailure(err, "could not count tenders of client %s", id)
	}
	if projectCount > 0 || tenderCount > 0 {
		s.metrics.DeleteConflict()
		return apperr.Conflict("client is referenced by %d project(s) and %d tender(s)", projectCount, tenderCount)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.clients.Delete(ctx, tx, id)
	})
	if err != nil {
		return apperr.StoreFailure(err, "client deletion rolled back")
	}

	if client.DocumentKey != nil {
		s.removeFiles(ctx, []string{*client.DocumentKey})
	}
	s.metrics.ObserveDelete("client", time.Since(start))
	s.log.Info("client deleted", "client_id", id)
	return nil
}

// BulkDeleteClients wipes all Clients. Projects and Tenders pointing at any
// client are detached (client_id set to NULL) in the same transaction that
// deletes the client rows; client document files are removed afterwards with
// per-file error isolation.
func (s *LifecycleService) BulkDeleteClients(ctx context.Context) (int64, error) {
	start := time.Now()
	fileKeys, err := s.clients.ListDocumentKeys(ctx)
	if err != nil {
		return 0, apperr.StoreFailure(err, "could not collect client document keys")
	}

	var deleted int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.projects.DetachFromAllClients(ctx, tx); err != nil {
			return err
		}
		if err := s.tenders.DetachFromAllClients(ctx, tx); err != nil {
			return err
		}
		n, err := s.clients.DeleteAll(ctx, tx)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, apperr.StoreFailure(err, "bulk client deletion rolled back")
	}

	s.removeFiles(ctx, fileKeys)
	s.metrics.ObserveDelete("client_bulk", time.Since(start))
	s.log.Info("all clients deleted", "count", deleted, "files_cleaned", len(fileKeys))
	return deleted, nil
}

func (s *LifecycleService) collectProjectFileKeys(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	projectKeys, err := s.projects.ListAttachmentKeys(ctx, projectID)
	if err != nil {
		return nil, err
	}
	taskKeys, err := s.tasks.ListAttachmentKeysByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return append(projectKeys, taskKeys...), nil
}

// removeFiles deletes stored files outside any transaction. One failed
// removal never blocks the others.
func (s *LifecycleService) removeFiles(ctx context.Context, keys []string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.files.Remove(ctx, key); err != nil {
			s.metrics.FileCleanupFailure()
			s.log.Warn("attachment file cleanup failed", "key", key, "error", err)
		}
	}
}

func notFoundOrStore(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format, args...)
	}
	return apperr.StoreFailure(err, format, args...)
}
