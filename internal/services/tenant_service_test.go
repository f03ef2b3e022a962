package services

import (
	"context"
	"net/http"
	"testing"

	"gymdesk_backend/internal/models"
	"gymdesk_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tenantFixture struct {
	tenants  *fakeTenantRepo
	profiles *fakeProfileRepo
	service  TenantService
	tenant   *models.Tenant
}

func newTenantFixture(t *testing.T) *tenantFixture {
	t.Helper()

	tenants := newFakeTenantRepo()
	profiles := newFakeProfileRepo()

	tenant := &models.Tenant{Name: "Iron Temple", IsActive: true}
	require.NoError(t, tenants.Create(context.Background(), tenant))

	return &tenantFixture{
		tenants:  tenants,
		profiles: profiles,
		service:  NewTenantService(tenants, profiles),
		tenant:   tenant,
	}
}

func (fx *tenantFixture) seedProfile(t *testing.T, identityID string, role models.UserRole) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		TenantID:   fx.tenant.ID,
		IdentityID: identityID,
		Email:      "staff@gym.kz",
		FullName:   "Dana Omarova",
		Role:       role,
	}
	require.NoError(t, fx.profiles.Create(context.Background(), profile))
	return profile
}

func TestTenantService_ResolveActor(t *testing.T) {
	t.Parallel()

	fx := newTenantFixture(t)
	profile := fx.seedProfile(t, "idn_staff", models.UserRoleGymAdmin)

	actor, err := fx.service.ResolveActor(context.Background(), "idn_staff")
	require.NoError(t, err)

	assert.Equal(t, profile.ID, actor.ProfileID)
	assert.Equal(t, fx.tenant.ID, actor.TenantID)
	assert.Equal(t, models.UserRoleGymAdmin, actor.Role)
}

func TestTenantService_ResolveActor_EmptyIdentity(t *testing.T) {
	t.Parallel()

	fx := newTenantFixture(t)

	_, err := fx.service.ResolveActor(context.Background(), "")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
}

func TestTenantService_ResolveActor_UnknownIdentity(t *testing.T) {
	t.Parallel()

	fx := newTenantFixture(t)

	_, err := fx.service.ResolveActor(context.Background(), "idn_stranger")
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestTenantService_ResolveActor_InactiveTenant(t *testing.T) {
	t.Parallel()

	fx := newTenantFixture(t)
	fx.seedProfile(t, "idn_staff", models.UserRoleClient)
	fx.tenant.IsActive = false

	_, err := fx.service.ResolveActor(context.Background(), "idn_staff")
	assert.ErrorIs(t, err, apperrors.ErrTenantInactive)
}

func TestTenantService_ResolveActor_SoftDeletedProfile(t *testing.T) {
	t.Parallel()

	fx := newTenantFixture(t)
	profile := fx.seedProfile(t, "idn_gone", models.UserRoleClient)
	require.NoError(t, fx.profiles.SoftDelete(context.Background(), profile.ID))

	_, err := fx.service.ResolveActor(context.Background(), "idn_gone")
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestTenantService_GetTenant_Unknown(t *testing.T) {
	t.Parallel()

	fx := newTenantFixture(t)

	_, err := fx.service.GetTenant(context.Background(), "44444444-4444-4444-4444-444444444444")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}
