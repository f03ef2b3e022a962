package services

import (
	"context"
	"errors"

	"gymdesk_backend/internal/identity"
	"gymdesk_backend/internal/logger"
	"gymdesk_backend/internal/metrics"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/pkg/apperrors"
)

// Provisioner runs the identity half of the provisioning saga, shared by the
// member and trainer services. The attempt row is written BEFORE the identity
// call so a crash or later failure always leaves a marker pointing at the
// (possibly orphaned) identity; reconciliation cleans those up.
type Provisioner struct {
	provisionRepo repositories.ProvisionRepository
	identities    identity.Provider
}

func NewProvisioner(provisionRepo repositories.ProvisionRepository, identities identity.Provider) *Provisioner {
	return &Provisioner{
		provisionRepo: provisionRepo,
		identities:    identities,
	}
}

// Begin records the attempt, creates the identity and stamps its id on the
// attempt. On provider failure nothing local beyond the failed marker has
// been written, so the abort is safe.
func (p *Provisioner) Begin(ctx context.Context, tenantID, email string, role models.UserRole, firstName, lastName string) (*models.ProvisionAttempt, error) {
	attempt := &models.ProvisionAttempt{
		TenantID: tenantID,
		Email:    email,
		Role:     role,
		State:    models.ProvisionStatePending,
	}
	if err := p.provisionRepo.Create(ctx, attempt); err != nil {
		return nil, apperrors.InternalError(err)
	}

	identityID, err := p.identities.CreateUser(ctx, email, firstName, lastName)
	if err != nil {
		p.markFailed(ctx, attempt, err)
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, apperrors.ErrEmailAlreadyExists.WithError(err)
		}
		return nil, apperrors.ErrIdentityProvider(err)
	}

	attempt.IdentityID = identityID
	if err := p.provisionRepo.Update(ctx, attempt); err != nil {
		// The identity exists but the marker lost its id; reconciliation
		// can no longer find it, so surface the failure loudly.
		logger.CtxWithError(ctx, "failed to stamp identity id on provision attempt", err,
			"attempt_id", attempt.ID, "identity_id", identityID)
		return nil, apperrors.InternalError(err)
	}

	return attempt, nil
}

// Complete finalizes the attempt after the subtype row was written.
func (p *Provisioner) Complete(ctx context.Context, attempt *models.ProvisionAttempt, profileID string) {
	attempt.State = models.ProvisionStateCompleted
	attempt.ProfileID = profileID
	if err := p.provisionRepo.Update(ctx, attempt); err != nil {
		logger.CtxWithError(ctx, "failed to complete provision attempt", err,
			"attempt_id", attempt.ID)
	}
	metrics.ProvisionAttemptsTotal.WithLabelValues(string(models.ProvisionStateCompleted)).Inc()
}

// Fail marks the attempt failed after the identity was created; the identity
// is now orphaned until reconciliation runs.
func (p *Provisioner) Fail(ctx context.Context, attempt *models.ProvisionAttempt, cause error) {
	p.markFailed(ctx, attempt, cause)
	logger.CtxWarn(ctx, "provisioning left an orphaned identity",
		"attempt_id", attempt.ID, "identity_id", attempt.IdentityID, "cause", cause.Error())
}

func (p *Provisioner) markFailed(ctx context.Context, attempt *models.ProvisionAttempt, cause error) {
	attempt.State = models.ProvisionStateFailed
	attempt.LastError = cause.Error()
	metrics.ProvisionAttemptsTotal.WithLabelValues(string(models.ProvisionStateFailed)).Inc()
	if err := p.provisionRepo.Update(ctx, attempt); err != nil {
		logger.CtxWithError(ctx, "failed to mark provision attempt failed", err,
			"attempt_id", attempt.ID)
	}
}
