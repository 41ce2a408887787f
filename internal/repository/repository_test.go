package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"erp-service/internal/models"
)

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
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Client{}, &models.Project{}, &models.Tender{},
		&models.TenderInvitation{},
	))
	return db
}

func TestClientExistsByReferenceNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Client{
		ID: uuid.New(), ReferenceNumber: "CLI-REPO0001", Name: "Acme",
	}))

	exists, err := repo.ExistsByReferenceNumber(ctx, "CLI-REPO0001")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByReferenceNumber(ctx, "CLI-REPO0002")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestClientDuplicateReferenceNumberIsTranslated(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Client{
		ID: uuid.New(), ReferenceNumber: "CLI-REPO0003", Name: "First",
	}))
	err := repo.Create(ctx, &models.Client{
		ID: uuid.New(), ReferenceNumber: "CLI-REPO0003", Name: "Second",
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestAcceptPendingAffectsExactlyOneRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	engineer := &models.User{ID: uuid.New(), Email: "repo@example.com", Role: "engineer"}
	require.NoError(t, db.Create(engineer).Error)
	project := &models.Project{ID: uuid.New(), ReferenceNumber: "PRJ-REPO0001", Name: "Depot"}
	require.NoError(t, db.Create(project).Error)
	tender := &models.Tender{ID: uuid.New(), ReferenceNumber: "TND-REPO0001", ProjectID: project.ID, Title: "Roof"}
	require.NoError(t, db.Create(tender).Error)
	require.NoError(t, repo.Create(ctx, &models.TenderInvitation{
		ID:              uuid.New(),
		TenderID:        tender.ID,
		EngineerID:      engineer.ID,
		InvitationToken: "inv_repotoken1",
		Status:          models.InvitationStatusPending,
	}))

	affected, err := repo.AcceptPending(ctx, "inv_repotoken1", time.Now().UTC())
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	// The guarded update matches nothing once the row left PENDING.
	affected, err = repo.AcceptPending(ctx, "inv_repotoken1", time.Now().UTC())
	require.NoError(t, err)
	require.EqualValues(t, 0, affected)

	inv, err := repo.GetByToken(ctx, "inv_repotoken1")
	require.NoError(t, err)
	require.Equal(t, models.InvitationStatusAccepted, inv.Status)
	require.NotNil(t, inv.AcceptedAt)
}
