package services

import (
	"context"
	"errors"

	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/pkg/apperrors"
)

// Actor is the resolved caller of a request: which profile it is, which
// tenant it belongs to and which role it holds. Every mutation is scoped by
// Actor.TenantID and privileged fields are gated by Actor.Role.
type Actor struct {
	ProfileID string
	TenantID  string
	Role      models.UserRole
}

type TenantService interface {
	// ResolveActor maps an external identity id to the profile owning it.
	ResolveActor(ctx context.Context, identityID string) (*Actor, error)
	GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error)
}

type TenantServiceImpl struct {
	tenantRepo  repositories.TenantRepository
	profileRepo repositories.ProfileRepository
}

func NewTenantService(tenantRepo repositories.TenantRepository, profileRepo repositories.ProfileRepository) TenantService {
	return &TenantServiceImpl{
		tenantRepo:  tenantRepo,
		profileRepo: profileRepo,
	}
}

func (s *TenantServiceImpl) ResolveActor(ctx context.Context, identityID string) (*Actor, error) {
	if identityID == "" {
		return nil, apperrors.NewUnauthorizedError("No authenticated identity")
	}

	profile, err := s.profileRepo.FindByIdentityID(ctx, identityID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	tenant, err := s.tenantRepo.FindByID(ctx, profile.TenantID)
	if err != nil {
		if errors.Is(err, repositories.ErrTenantNotFound) {
			return nil, apperrors.ErrProfileNotFound.WithError(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !tenant.IsActive {
		return nil, apperrors.ErrTenantInactive
	}

	return &Actor{
		ProfileID: profile.ID,
		TenantID:  profile.TenantID,
		Role:      profile.Role,
	}, nil
}

func (s *TenantServiceImpl) GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repositories.ErrTenantNotFound) {
			return nil, apperrors.ErrNotFound(err, "tenant", "Tenant not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return tenant, nil
}
