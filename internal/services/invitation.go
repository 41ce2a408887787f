package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"erp-service/internal/apperr"
	"erp-service/internal/logger"
	"erp-service/internal/metrics"
	"erp-service/internal/models"
	"erp-service/internal/notifier"
	"erp-service/internal/repository"
)

const (
	invitationTokenPrefix = "inv_"
	invitationTokenLength = 32
	tokenAlphabet         = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// InvitationService issues tender invitation tokens and drives their small
// state machine: PENDING -> ACCEPTED, nothing else. Tokens are opaque random
// strings; the tender and engineer are resolved from the stored row, never
// parsed out of the token.
type InvitationService struct {
	invitations *repository.InvitationRepository
	tenders     *repository.TenderRepository
	users       *repository.UserRepository
	notify      notifier.Notifier
	log         *logger.Logger
	metrics     *metrics.Collector
}

// NewInvitationService creates an InvitationService.
func NewInvitationService(
	invitations *repository.InvitationRepository,
	tenders *repository.TenderRepository,
	users *repository.UserRepository,
	notify notifier.Notifier,
	log *logger.Logger,
	collector *metrics.Collector,
) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		tenders:     tenders,
		users:       users,
		notify:      notify,
		log:         log.With("service", "InvitationService"),
		metrics:     collector,
	}
}

// Issue creates a PENDING invitation binding the tender to the engineer and
// sends the invitation email. The email is fire-and-forget: a delivery
// failure is logged and the invitation stays issued.
func (s *InvitationService) Issue(ctx context.Context, tenderID, engineerID uuid.UUID) (*models.TenderInvitation, error) {
	tender, err := s.tenders.Get(ctx, tenderID)
	if err != nil {
		return nil, notFoundOrStore(err, "tender %s not found", tenderID)
	}
	engineer, err := s.users.Get(ctx, engineerID)
	if err != nil {
		return nil, notFoundOrStore(err, "engineer %s not found", engineerID)
	}

	token, err := generateInvitationToken()
	if err != nil {
		return nil, apperr.StoreFailure(err, "could not generate invitation token")
	}

	inv := &models.TenderInvitation{
		ID:              uuid.New(),
		TenderID:        tender.ID,
		EngineerID:      engineer.ID,
		InvitationToken: token,
		Status:          models.InvitationStatusPending,
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, apperr.StoreFailure(err, "could not persist invitation")
	}
	s.metrics.InvitationIssued()

	if err := s.notify.Send(ctx, notifier.Email{
		To:       engineer.Email,
		ToName:   strings.TrimSpace(engineer.FirstName + " " + engineer.LastName),
		Subject:  fmt.Sprintf("Tender invitation: %s", tender.Title),
		HTMLBody: invitationMailBody(tender, token),
	}); err != nil {
		s.metrics.NotifyFailure()
		s.log.Warn("invitation email failed, invitation remains issued",
			"invitation_id", inv.ID, "engineer_id", engineer.ID, "error", err)
	}

	s.log.Info("invitation issued", "invitation_id", inv.ID, "tender_id", tender.ID, "engineer_id", engineer.ID)
	return inv, nil
}

// Lookup resolves an invitation by token, with its tender, the tender's
// client and the invited engineer preloaded.
func (s *InvitationService) Lookup(ctx context.Context, token string) (*models.TenderInvitation, error) {
	inv, err := s.invitations.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("invitation not found")
		}
		return nil, apperr.StoreFailure(err, "invitation lookup failed")
	}
	return inv, nil
}

// Accept transitions the invitation to ACCEPTED. Only the invited engineer
// may accept, and only while the invitation is PENDING. The transition is a
// single conditional update checked for exactly one affected row, so two
// concurrent accepts on the same token resolve to one success and one
// InvalidState.
func (s *InvitationService) Accept(ctx context.Context, token string, actingUserID uuid.UUID) error {
	inv, err := s.invitations.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("invitation not found")
		}
		return apperr.StoreFailure(err, "invitation lookup failed")
	}
	if inv.EngineerID != actingUserID {
		return apperr.Forbidden("invitation belongs to a different engineer")
	}
	if inv.Status != models.InvitationStatusPending {
		return apperr.InvalidState("invitation is %s, not %s", inv.Status, models.InvitationStatusPending)
	}

	affected, err := s.invitations.AcceptPending(ctx, token, time.Now())
	if err != nil {
		return apperr.StoreFailure(err, "invitation accept failed")
	}
	if affected == 0 {
		// Lost the race against another accept on the same token.
		s.metrics.InvitationRace()
		return apperr.InvalidState("invitation is no longer %s", models.InvitationStatusPending)
	}

	s.metrics.InvitationAccepted()
	s.log.Info("invitation accepted", "invitation_id", inv.ID, "engineer_id", actingUserID)
	return nil
}

func generateInvitationToken() (string, error) {
	var sb strings.Builder
	sb.WriteString(invitationTokenPrefix)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := 0; i < invitationTokenLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(tokenAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

func invitationMailBody(tender *models.Tender, token string) string {
	var sb strings.Builder
	sb.WriteString("<p>You have been invited to participate in the tender <strong>")
	sb.WriteString(tender.Title)
	sb.WriteString("</strong> (")
	sb.WriteString(tender.ReferenceNumber)
	sb.WriteString(").</p>")
	if tender.Deadline != nil {
		sb.WriteString(fmt.Sprintf("<p>Submission deadline: %s</p>", tender.Deadline.Format("02 Jan 2006")))
	}
	sb.WriteString(fmt.Sprintf("<p>Use the following code to view and accept the invitation: <code>%s</code></p>", token))
	return sb.String()
}
