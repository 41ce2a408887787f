package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"erp-service/internal/apperr"
	"erp-service/internal/models"
)

// seedFullProject builds the deletion fixture: a project with three tasks
// (two checklist items and one attachment each), one tender with two
// invitations, and two linked documents.
func seedFullProject(t *testing.T, db *gorm.DB) *models.Project {
	t.Helper()
	project := seedProject(t, db, "PRJ-SEED0001", nil)

	for i := 0; i < 3; i++ {
		task := &models.Task{ID: uuid.New(), ProjectID: project.ID, Name: "Task"}
		require.NoError(t, db.Create(task).Error)
		for j := 0; j < 2; j++ {
			require.NoError(t, db.Create(&models.TaskChecklist{ID: uuid.New(), TaskID: task.ID, Title: "Check"}).Error)
		}
		require.NoError(t, db.Create(&models.TaskAttachment{
			ID: uuid.New(), TaskID: task.ID, FileName: "site.pdf", StorageKey: "task-" + task.ID.String(),
		}).Error)
		require.NoError(t, db.Create(&models.TaskComment{ID: uuid.New(), TaskID: task.ID, AuthorID: uuid.New(), Body: "done"}).Error)
		require.NoError(t, db.Create(&models.TaskAssignment{ID: uuid.New(), TaskID: task.ID, UserID: uuid.New()}).Error)
	}

	tender := seedTender(t, db, "TND-SEED0001", project.ID, nil)
	engineer1 := seedUser(t, db, "e1@example.com")
	engineer2 := seedUser(t, db, "e2@example.com")
	seedInvitation(t, db, tender.ID, engineer1.ID, "inv_seedtoken1")
	seedInvitation(t, db, tender.ID, engineer2.ID, "inv_seedtoken2")
	require.NoError(t, db.Create(&models.TechnicalSubmission{
		ID: uuid.New(), TenderID: tender.ID, EngineerID: engineer1.ID, Summary: "offer",
	}).Error)

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Document{
			ID: uuid.New(), ReferenceNumber: "DOC-SEED000" + string(rune('1'+i)),
			Title: "Drawing", ProjectID: &project.ID, StorageKey: "doc-" + uuid.NewString(),
		}).Error)
	}

	require.NoError(t, db.Create(&models.ProjectChecklist{ID: uuid.New(), ProjectID: project.ID, Title: "Permits"}).Error)
	require.NoError(t, db.Create(&models.ProjectAttachment{
		ID: uuid.New(), ProjectID: project.ID, FileName: "plan.pdf", StorageKey: "proj-" + project.ID.String(),
	}).Error)
	require.NoError(t, db.Create(&models.ProjectAssignment{ID: uuid.New(), ProjectID: project.ID, UserID: uuid.New(), Role: "manager"}).Error)

	return project
}

func TestDeleteProjectCascadesAndDetachesDocuments(t *testing.T) {
	db := newTestDB(t)
	files := &fakeFileRemover{}
	svc := newLifecycleForTest(db, files)
	project := seedFullProject(t, db)

	require.NoError(t, svc.DeleteProject(context.Background(), project.ID))

	require.EqualValues(t, 0, count(t, db, &models.Project{}, ""))
	require.EqualValues(t, 0, count(t, db, &models.Task{}, ""))
	require.EqualValues(t, 0, count(t, db, &models.TaskChecklist{}, ""))
	require.EqualValues(t, 0, count(t, db, &models.TaskAttachment{}, ""))
	require.EqualValues(t, 0, count(t, db, &models.TaskComment{}, ""))
	require.EqualValues(t, 0, count(t, db, &models.TaskAssignment{}, ""))
	require.EqualValues(t, 0, count(t, db, &models.Tender{}, ""))
	require.EqualValues(t, 0, count(t, db, &models.TenderInvitation{}, ""))
	require.EqualValues(t, 0, count(t, db, &models.TechnicalSubmission{}, ""))
	require.EqualValues(t, 0, count(t, db, &models.ProjectChecklist{}, ""))
	require.EqualValues(t, 0, count(t, db, &models.ProjectAttachment{}, ""))
	require.EqualValues(t, 0, count(t, db, &models.ProjectAssignment{}, ""))

	// Documents survive, detached.
	require.EqualValues(t, 2, count(t, db, &models.Document{}, ""))
	require.EqualValues(t, 2, count(t, db, &models.Document{}, "project_id IS NULL"))

	// One project attachment plus three task attachments cleaned up.
	require.Len(t, files.removed, 4)
}

func TestDeleteProjectFileCleanupFailureDoesNotFail(t *testing.T) {
	db := newTestDB(t)
	project := seedFullProject(t, db)
	files := &fakeFileRemover{failFor: map[string]bool{"proj-" + project.ID.String(): true}}
	svc := newLifecycleForTest(db, files)

	require.NoError(t, svc.DeleteProject(context.Background(), project.ID))
	require.EqualValues(t, 0, count(t, db, &models.Project{}, ""))
	// The remaining task attachments were still cleaned up.
	require.Len(t, files.removed, 3)
}

func TestDeleteProjectNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newLifecycleForTest(db, &fakeFileRemover{})

	err := svc.DeleteProject(context.Background(), uuid.New())
	require.Error(t, err)
	require.True(t, apperr.IsNotFound(err))
}

func TestDeleteTenderRemovesInvitationsAndSubmissions(t *testing.T) {
	db := newTestDB(t)
	svc := newLifecycleForTest(db, &fakeFileRemover{})
	project := seedProject(t, db, "PRJ-TD000001", nil)
	tender := seedTender(t, db, "TND-TD000001", project.ID, nil)
	other := seedTender(t, db, "TND-TD000002", project.ID, nil)
	engineer := seedUser(t, db, "eng@example.com")
	seedInvitation(t, db, tender.ID, engineer.ID, "inv_tdtoken1")
	seedInvitation(t, db, other.ID, engineer.ID, "inv_tdtoken2")

	require.NoError(t, svc.DeleteTender(context.Background(), tender.ID))

	require.EqualValues(t, 1, count(t, db, &models.Tender{}, ""))
	require.EqualValues(t, 1, count(t, db, &models.TenderInvitation{}, ""))
	require.EqualValues(t, 1, count(t, db, &models.TenderInvitation{}, "tender_id = ?", other.ID))
	// The project itself is untouched.
	require.EqualValues(t, 1, count(t, db, &models.Project{}, ""))
}

func TestDeleteClientBlockedByDependents(t *testing.T) {
	db := newTestDB(t)
	svc := newLifecycleForTest(db, &fakeFileRemover{})
	client := seedClient(t, db, "CLI-BL000001", nil)
	seedProject(t, db, "PRJ-BL000001", &client.ID)

	err := svc.DeleteClient(context.Background(), client.ID)
	require.Error(t, err)
	require.True(t, apperr.IsConflict(err))
	require.Contains(t, err.Error(), "1 project(s)")

	// Nothing was mutated.
	require.EqualValues(t, 1, count(t, db, &models.Client{}, ""))
	require.EqualValues(t, 1, count(t, db, &models.Project{}, "client_id = ?", client.ID))
}

func TestDeleteClientUnreferenced(t *testing.T) {
	db := newTestDB(t)
	files := &fakeFileRemover{}
	svc := newLifecycleForTest(db, files)
	docKey := "client-doc-1"
	client := seedClient(t, db, "CLI-OK000001", &docKey)

	require.NoError(t, svc.DeleteClient(context.Background(), client.ID))
	require.EqualValues(t, 0, count(t, db, &models.Client{}, ""))
	require.Equal(t, []string{docKey}, files.removed)
}

func TestBulkDeleteClientsDetachesProjectsAndTenders(t *testing.T) {
	db := newTestDB(t)
	files := &fakeFileRemover{failFor: map[string]bool{"cdoc-2": true}}
	svc := newLifecycleForTest(db, files)

	key1, key2 := "cdoc-1", "cdoc-2"
	c1 := seedClient(t, db, "CLI-BD000001", &key1)
	c2 := seedClient(t, db, "CLI-BD000002", &key2)
	seedClient(t, db, "CLI-BD000003", nil)

	p1 := seedProject(t, db, "PRJ-BD000001", &c1.ID)
	seedProject(t, db, "PRJ-BD000002", &c2.ID)
	seedTender(t, db, "TND-BD000001", p1.ID, &c1.ID)

	deleted, err := svc.BulkDeleteClients(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, deleted)

	require.EqualValues(t, 0, count(t, db, &models.Client{}, ""))
	require.EqualValues(t, 2, count(t, db, &models.Project{}, ""))
	require.EqualValues(t, 2, count(t, db, &models.Project{}, "client_id IS NULL"))
	require.EqualValues(t, 1, count(t, db, &models.Tender{}, "client_id IS NULL"))

	// One file removed, the failing one skipped without aborting.
	require.Equal(t, []string{key1}, files.removed)
}
