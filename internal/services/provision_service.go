package services

import (
	"context"
	"errors"
	"time"

	"gymdesk_backend/internal/identity"
	"gymdesk_backend/internal/logger"
	"gymdesk_backend/internal/metrics"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/internal/services/dto"
	"gymdesk_backend/pkg/apperrors"
)

// staleAfter is how long an attempt may sit in pending/failed before the
// sweep treats it as abandoned. In-flight requests finish well under this.
const staleAfter = 15 * time.Minute

type ProvisionService interface {
	ListByState(ctx context.Context, actor *Actor, state string) ([]dto.ProvisionRow, error)
	// Reconcile sweeps stale pending/failed attempts and deletes the
	// identities they orphaned.
	Reconcile(ctx context.Context, actor *Actor) (*dto.ReconcileResponse, error)
}

type ProvisionServiceImpl struct {
	provisionRepo repositories.ProvisionRepository
	profileRepo   repositories.ProfileRepository
	identities    identity.Provider
}

func NewProvisionService(
	provisionRepo repositories.ProvisionRepository,
	profileRepo repositories.ProfileRepository,
	identities identity.Provider,
) ProvisionService {
	return &ProvisionServiceImpl{
		provisionRepo: provisionRepo,
		profileRepo:   profileRepo,
		identities:    identities,
	}
}

func (s *ProvisionServiceImpl) ListByState(ctx context.Context, actor *Actor, state string) ([]dto.ProvisionRow, error) {
	if !actor.Role.CanAssignRoles() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	provisionState := models.ProvisionStatePending
	if state != "" {
		provisionState = models.ProvisionState(state)
	}

	attempts, err := s.provisionRepo.ListByState(ctx, actor.TenantID, provisionState)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rows := make([]dto.ProvisionRow, 0, len(attempts))
	for _, attempt := range attempts {
		rows = append(rows, dto.ProvisionRow{
			ID:         attempt.ID,
			Email:      attempt.Email,
			Role:       string(attempt.Role),
			State:      string(attempt.State),
			IdentityID: attempt.IdentityID,
			ProfileID:  attempt.ProfileID,
			LastError:  attempt.LastError,
			CreatedAt:  attempt.CreatedAt,
		})
	}
	return rows, nil
}

func (s *ProvisionServiceImpl) Reconcile(ctx context.Context, actor *Actor) (*dto.ReconcileResponse, error) {
	if !actor.Role.CanAssignRoles() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	cutoff := time.Now().Add(-staleAfter)
	attempts, err := s.provisionRepo.FindStale(ctx, actor.TenantID, cutoff)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ReconcileResponse{Checked: len(attempts)}
	for i := range attempts {
		attempt := &attempts[i]
		if err := s.reconcileOne(ctx, attempt, resp); err != nil {
			logger.CtxWarn(ctx, "reconciliation skipped an attempt",
				"attempt_id", attempt.ID, "error", err.Error())
		}
	}
	return resp, nil
}

func (s *ProvisionServiceImpl) reconcileOne(ctx context.Context, attempt *models.ProvisionAttempt, resp *dto.ReconcileResponse) error {
	// No identity id recorded: the provider call never succeeded, there is
	// nothing external to clean up.
	if attempt.IdentityID == "" {
		return s.transition(ctx, attempt, models.ProvisionStateReconciled, resp)
	}

	profile, err := s.profileRepo.FindByIdentityID(ctx, attempt.IdentityID)
	if err == nil {
		// The profile made it after all; the attempt just missed its
		// completion write. Heal the marker instead of deleting anything.
		attempt.ProfileID = profile.ID
		attempt.State = models.ProvisionStateCompleted
		attempt.LastError = ""
		if err := s.provisionRepo.Update(ctx, attempt); err != nil {
			return err
		}
		logger.CtxInfo(ctx, "provision attempt healed to completed",
			"attempt_id", attempt.ID, "profile_id", profile.ID)
		return nil
	}
	if !errors.Is(err, repositories.ErrProfileNotFound) {
		return err
	}

	// Orphaned identity: the provider holds a user no profile points at.
	if err := s.identities.DeleteUser(ctx, attempt.IdentityID); err != nil {
		if !errors.Is(err, identity.ErrIdentityNotFound) {
			return err
		}
	} else {
		resp.IdentitiesDeleted++
		metrics.OrphanedIdentitiesCleaned.Inc()
	}

	logger.CtxInfo(ctx, "orphaned identity cleaned up",
		"attempt_id", attempt.ID, "identity_id", attempt.IdentityID)
	return s.transition(ctx, attempt, models.ProvisionStateReconciled, resp)
}

func (s *ProvisionServiceImpl) transition(ctx context.Context, attempt *models.ProvisionAttempt, state models.ProvisionState, resp *dto.ReconcileResponse) error {
	attempt.State = state
	if err := s.provisionRepo.Update(ctx, attempt); err != nil {
		return err
	}
	if state == models.ProvisionStateReconciled {
		resp.MarkedReconciled++
	}
	return nil
}
