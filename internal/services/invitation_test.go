package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"erp-service/internal/apperr"
	applogger "erp-service/internal/logger"
	"erp-service/internal/models"
	"erp-service/internal/notifier"
	"erp-service/internal/repository"
)

func newInvitationForTest(db *gorm.DB, mail notifier.Notifier) *InvitationService {
	return NewInvitationService(
		repository.NewInvitationRepository(db),
		repository.NewTenderRepository(db),
		repository.NewUserRepository(db),
		mail,
		applogger.NewNop(),
		newTestCollector(),
	)
}

func TestIssueInvitation(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeNotifier{}
	svc := newInvitationForTest(db, mail)
	project := seedProject(t, db, "PRJ-IV000001", nil)
	tender := seedTender(t, db, "TND-IV000001", project.ID, nil)
	engineer := seedUser(t, db, "issue@example.com")

	inv, err := svc.Issue(context.Background(), tender.ID, engineer.ID)
	require.NoError(t, err)
	require.Equal(t, models.InvitationStatusPending, inv.Status)
	require.Nil(t, inv.AcceptedAt)
	require.Regexp(t, regexp.MustCompile(`^inv_[A-Za-z0-9]{32}$`), inv.InvitationToken)
	// The token must not leak tender or engineer identifiers.
	require.NotContains(t, inv.InvitationToken, tender.ID.String())
	require.NotContains(t, inv.InvitationToken, engineer.ID.String())

	require.Len(t, mail.sent, 1)
	require.Equal(t, engineer.Email, mail.sent[0].To)
	require.Contains(t, mail.sent[0].HTMLBody, inv.InvitationToken)
}

func TestIssueInvitationUnknownTenderOrEngineer(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationForTest(db, &fakeNotifier{})
	project := seedProject(t, db, "PRJ-IV000002", nil)
	tender := seedTender(t, db, "TND-IV000002", project.ID, nil)
	engineer := seedUser(t, db, "known@example.com")

	_, err := svc.Issue(context.Background(), uuid.New(), engineer.ID)
	require.True(t, apperr.IsNotFound(err))

	_, err = svc.Issue(context.Background(), tender.ID, uuid.New())
	require.True(t, apperr.IsNotFound(err))
}

func TestIssueInvitationSurvivesNotifierFailure(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeNotifier{broken: true}
	svc := newInvitationForTest(db, mail)
	project := seedProject(t, db, "PRJ-IV000003", nil)
	tender := seedTender(t, db, "TND-IV000003", project.ID, nil)
	engineer := seedUser(t, db, "broken@example.com")

	inv, err := svc.Issue(context.Background(), tender.ID, engineer.ID)
	require.NoError(t, err)

	// The invitation is persisted even though the email failed.
	stored, err := svc.Lookup(context.Background(), inv.InvitationToken)
	require.NoError(t, err)
	require.Equal(t, models.InvitationStatusPending, stored.Status)
}

func TestLookupInvitation(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationForTest(db, &fakeNotifier{})
	client := seedClient(t, db, "CLI-IV000001", nil)
	project := seedProject(t, db, "PRJ-IV000004", &client.ID)
	tender := seedTender(t, db, "TND-IV000004", project.ID, &client.ID)
	engineer := seedUser(t, db, "lookup@example.com")
	seedInvitation(t, db, tender.ID, engineer.ID, "inv_lookuptoken1")

	inv, err := svc.Lookup(context.Background(), "inv_lookuptoken1")
	require.NoError(t, err)
	require.NotNil(t, inv.Tender)
	require.Equal(t, tender.ID, inv.Tender.ID)
	require.NotNil(t, inv.Tender.Client)
	require.Equal(t, client.ID, inv.Tender.Client.ID)
	require.NotNil(t, inv.Engineer)
	require.Equal(t, engineer.Email, inv.Engineer.Email)

	_, err = svc.Lookup(context.Background(), "inv_doesnotexist")
	require.True(t, apperr.IsNotFound(err))
}

func TestAcceptInvitation(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationForTest(db, &fakeNotifier{})
	project := seedProject(t, db, "PRJ-IV000005", nil)
	tender := seedTender(t, db, "TND-IV000005", project.ID, nil)
	engineer := seedUser(t, db, "accept@example.com")
	seedInvitation(t, db, tender.ID, engineer.ID, "inv_accepttoken1")

	require.NoError(t, svc.Accept(context.Background(), "inv_accepttoken1", engineer.ID))

	stored, err := svc.Lookup(context.Background(), "inv_accepttoken1")
	require.NoError(t, err)
	require.Equal(t, models.InvitationStatusAccepted, stored.Status)
	require.NotNil(t, stored.AcceptedAt)
}

func TestAcceptInvitationForbiddenForOtherUser(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationForTest(db, &fakeNotifier{})
	project := seedProject(t, db, "PRJ-IV000006", nil)
	tender := seedTender(t, db, "TND-IV000006", project.ID, nil)
	engineer := seedUser(t, db, "invited@example.com")
	intruder := seedUser(t, db, "intruder@example.com")
	seedInvitation(t, db, tender.ID, engineer.ID, "inv_forbidtoken1")

	err := svc.Accept(context.Background(), "inv_forbidtoken1", intruder.ID)
	require.True(t, apperr.IsForbidden(err))

	stored, err := svc.Lookup(context.Background(), "inv_forbidtoken1")
	require.NoError(t, err)
	require.Equal(t, models.InvitationStatusPending, stored.Status)
	require.Nil(t, stored.AcceptedAt)
}

func TestAcceptInvitationExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationForTest(db, &fakeNotifier{})
	project := seedProject(t, db, "PRJ-IV000007", nil)
	tender := seedTender(t, db, "TND-IV000007", project.ID, nil)
	engineer := seedUser(t, db, "twice@example.com")
	seedInvitation(t, db, tender.ID, engineer.ID, "inv_oncetoken1")

	require.NoError(t, svc.Accept(context.Background(), "inv_oncetoken1", engineer.ID))

	err := svc.Accept(context.Background(), "inv_oncetoken1", engineer.ID)
	require.True(t, apperr.IsInvalidState(err))

	stored, err := svc.Lookup(context.Background(), "inv_oncetoken1")
	require.NoError(t, err)
	require.Equal(t, models.InvitationStatusAccepted, stored.Status)
	require.NotNil(t, stored.AcceptedAt)
	firstAcceptedAt := *stored.AcceptedAt

	// A further attempt must not move accepted_at.
	_ = svc.Accept(context.Background(), "inv_oncetoken1", engineer.ID)
	stored, err = svc.Lookup(context.Background(), "inv_oncetoken1")
	require.NoError(t, err)
	require.Equal(t, firstAcceptedAt.Unix(), stored.AcceptedAt.Unix())
}

func TestAcceptInvitationUnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationForTest(db, &fakeNotifier{})

	err := svc.Accept(context.Background(), "inv_missing", uuid.New())
	require.True(t, apperr.IsNotFound(err))
}
