package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
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
	"erp-service/internal/services"
)

type nopNotifier struct{}

func (nopNotifier) Send(_ context.Context, _ notifier.Email) error { return nil }

type invitationFixture struct {
	app      *fiber.App
	db       *gorm.DB
	tender   *models.Tender
	engineer *models.User
}

func newInvitationFixture(t *testing.T) *invitationFixture {
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

	engineer := &models.User{ID: uuid.New(), Email: "handler@example.com", Role: "engineer"}
	require.NoError(t, db.Create(engineer).Error)
	project := &models.Project{ID: uuid.New(), ReferenceNumber: "PRJ-HND00001", Name: "Harbor"}
	require.NoError(t, db.Create(project).Error)
	tender := &models.Tender{ID: uuid.New(), ReferenceNumber: "TND-HND00001", ProjectID: project.ID, Title: "Piling"}
	require.NoError(t, db.Create(tender).Error)

	log := applogger.NewNop()
	svc := services.NewInvitationService(
		repository.NewInvitationRepository(db),
		repository.NewTenderRepository(db),
		repository.NewUserRepository(db),
		nopNotifier{},
		log,
		metrics.NewCollector(prometheus.NewRegistry()),
	)
	handler := NewInvitationHandler(svc, log)

	app := fiber.New()
	app.Post("/tenders/:id/invitations", handler.IssueInvitation)
	app.Get("/invitations/:token", handler.LookupInvitation)
	app.Post("/invitations/:token/accept", handler.AcceptInvitation)

	return &invitationFixture{app: app, db: db, tender: tender, engineer: engineer}
}

func TestIssueInvitationEndpoint(t *testing.T) {
	f := newInvitationFixture(t)

	body := fmt.Sprintf(`{"engineer_id":%q}`, f.engineer.ID)
	req := httptest.NewRequest(http.MethodPost, "/tenders/"+f.tender.ID.String()+"/invitations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var inv models.TenderInvitation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&inv))
	require.Equal(t, models.InvitationStatusPending, inv.Status)
	require.Equal(t, f.engineer.ID, inv.EngineerID)
}

func TestIssueInvitationEndpointValidation(t *testing.T) {
	f := newInvitationFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/tenders/not-a-uuid/invitations", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/tenders/"+f.tender.ID.String()+"/invitations", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAcceptInvitationEndpoint(t *testing.T) {
	f := newInvitationFixture(t)
	inv := &models.TenderInvitation{
		ID:              uuid.New(),
		TenderID:        f.tender.ID,
		EngineerID:      f.engineer.ID,
		InvitationToken: "inv_handlertoken1",
		Status:          models.InvitationStatusPending,
	}
	require.NoError(t, f.db.Create(inv).Error)

	// Missing acting-user header.
	req := httptest.NewRequest(http.MethodPost, "/invitations/inv_handlertoken1/accept", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Wrong user is rejected.
	req = httptest.NewRequest(http.MethodPost, "/invitations/inv_handlertoken1/accept", nil)
	req.Header.Set("X-User-ID", uuid.NewString())
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Invited engineer accepts.
	req = httptest.NewRequest(http.MethodPost, "/invitations/inv_handlertoken1/accept", nil)
	req.Header.Set("X-User-ID", f.engineer.ID.String())
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// Second accept conflicts.
	req = httptest.NewRequest(http.MethodPost, "/invitations/inv_handlertoken1/accept", nil)
	req.Header.Set("X-User-ID", f.engineer.ID.String())
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLookupInvitationEndpointNotFound(t *testing.T) {
	f := newInvitationFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/invitations/inv_nosuchtoken", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
