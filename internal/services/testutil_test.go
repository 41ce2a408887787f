package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	applogger "erp-service/internal/logger"
	"erp-service/internal/metrics"
	"erp-service/internal/models"
	"erp-service/internal/notifier"
	"erp-service/internal/repository"
)

// newTestDB opens a fresh in-memory SQLite database, unique per test, and
// migrates the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive for the
	// whole test.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.ProjectAssignment{},
		&models.ProjectChecklist{},
		&models.ProjectAttachment{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.TaskChecklist{},
		&models.TaskAttachment{},
		&models.TaskComment{},
		&models.Document{},
		&models.Tender{},
		&models.TenderInvitation{},
		&models.TechnicalSubmission{},
		&models.Contract{},
	))
	return db
}

func newTestCollector() *metrics.Collector {
	return metrics.NewCollector(prometheus.NewRegistry())
}

// fakeFileRemover records removed keys and optionally fails for some of them.
type fakeFileRemover struct {
	mu      sync.Mutex
	removed []string
	failFor map[string]bool
}

func (f *fakeFileRemover) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[key] {
		return fmt.Errorf("storage unavailable for %s", key)
	}
	f.removed = append(f.removed, key)
	return nil
}

// fakeNotifier records sent emails and optionally fails every send.
type fakeNotifier struct {
	mu     sync.Mutex
	sent   []notifier.Email
	broken bool
}

func (f *fakeNotifier) Send(_ context.Context, email notifier.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.broken {
		return fmt.Errorf("smtp relay down")
	}
	f.sent = append(f.sent, email)
	return nil
}

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	tx := db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&n).Error)
	return n
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{ID: uuid.New(), Email: email, FirstName: "Test", LastName: "Engineer", Role: "engineer"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedClient(t *testing.T, db *gorm.DB, ref string, documentKey *string) *models.Client {
	t.Helper()
	client := &models.Client{ID: uuid.New(), ReferenceNumber: ref, Name: "Client " + ref, DocumentKey: documentKey}
	require.NoError(t, db.Create(client).Error)
	return client
}

func seedProject(t *testing.T, db *gorm.DB, ref string, clientID *uuid.UUID) *models.Project {
	t.Helper()
	project := &models.Project{ID: uuid.New(), ReferenceNumber: ref, Name: "Project " + ref, ClientID: clientID}
	require.NoError(t, db.Create(project).Error)
	return project
}

func seedTender(t *testing.T, db *gorm.DB, ref string, projectID uuid.UUID, clientID *uuid.UUID) *models.Tender {
	t.Helper()
	tender := &models.Tender{ID: uuid.New(), ReferenceNumber: ref, ProjectID: projectID, ClientID: clientID, Title: "Tender " + ref}
	require.NoError(t, db.Create(tender).Error)
	return tender
}

func seedInvitation(t *testing.T, db *gorm.DB, tenderID, engineerID uuid.UUID, token string) *models.TenderInvitation {
	t.Helper()
	inv := &models.TenderInvitation{
		ID:              uuid.New(),
		TenderID:        tenderID,
		EngineerID:      engineerID,
		InvitationToken: token,
		Status:          models.InvitationStatusPending,
	}
	require.NoError(t, db.Create(inv).Error)
	return inv
}

func newLifecycleForTest(db *gorm.DB, files FileRemover) *LifecycleService {
	return NewLifecycleService(
		db,
		repository.NewClientRepository(db),
		repository.NewProjectRepository(db),
		repository.NewTaskRepository(db),
		repository.NewDocumentRepository(db),
		repository.NewTenderRepository(db),
		files,
		applogger.NewNop(),
		newTestCollector(),
	)
}
