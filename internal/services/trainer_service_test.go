package services

import (
	"context"
	"errors"
	"testing"

	"gymdesk_backend/internal/identity"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trainerFixture struct {
	profileRepo *fakeProfileRepo
	trainerRepo *fakeTrainerRepo
	provisions  *fakeProvisionRepo
	identities  *identity.DevProvider
	service     TrainerService
	actor       *Actor
}

func newTrainerFixture(t *testing.T) *trainerFixture {
	t.Helper()

	profileRepo := newFakeProfileRepo()
	trainerRepo := newFakeTrainerRepo(profileRepo)
	provisions := newFakeProvisionRepo()
	identities := identity.NewDevProvider()

	service := NewTrainerService(
		trainerRepo, profileRepo,
		NewProvisioner(provisions, identities),
		identities,
	)

	return &trainerFixture{
		profileRepo: profileRepo,
		trainerRepo: trainerRepo,
		provisions:  provisions,
		identities:  identities,
		service:     service,
		actor: &Actor{
			ProfileID: "actor-profile",
			TenantID:  "tenant-1",
			Role:      models.UserRoleGymAdmin,
		},
	}
}

func dtoCreateTrainer(email string, specs ...string) *dto.CreateTrainerRequest {
	return &dto.CreateTrainerRequest{
		Email:           email,
		FirstName:       "Coach",
		LastName:        "Smith",
		Specializations: specs,
	}
}

func TestTrainerService_Create(t *testing.T) {
	t.Parallel()

	fx := newTrainerFixture(t)

	resp, err := fx.service.Create(context.Background(), fx.actor, dtoCreateTrainer("coach@gym.kz", "Yoga", "Pilates"))
	require.NoError(t, err)

	profile := fx.profileRepo.profiles[resp.ProfileID]
	require.NotNil(t, profile)
	assert.Equal(t, models.UserRoleTrainer, profile.Role, "trainer role is fixed, not caller-chosen")
	assert.Equal(t, []string{"Yoga", "Pilates"}, resp.Specializations)

	completed, _ := fx.provisions.ListByState(context.Background(), fx.actor.TenantID, models.ProvisionStateCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, 1, fx.identities.Count())
}

func TestTrainerService_Create_NormalizesSpecializations(t *testing.T) {
	t.Parallel()

	fx := newTrainerFixture(t)

	resp, err := fx.service.Create(context.Background(), fx.actor, dtoCreateTrainer("coach@gym.kz", " Yoga ", "Yoga", "", "Boxing"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Yoga", "Boxing"}, resp.Specializations, "trimmed, deduplicated, order preserved")
}

func TestTrainerService_Update_ReplacesSpecializationSet(t *testing.T) {
	t.Parallel()

	fx := newTrainerFixture(t)

	resp, err := fx.service.Create(context.Background(), fx.actor, dtoCreateTrainer("coach@gym.kz", "Yoga", "Pilates"))
	require.NoError(t, err)

	req := &dto.UpdateTrainerRequest{
		FirstName:       "Coach",
		LastName:        "Smith",
		Specializations: []string{"Crossfit"},
	}
	require.NoError(t, fx.service.Update(context.Background(), fx.actor, resp.TrainerID, req))

	// Full replace: the old tags are gone for this trainer.
	names, err := fx.service.ListSpecializations(context.Background(), fx.actor)
	require.NoError(t, err)
	assert.Equal(t, []string{"Crossfit"}, names)
}

func TestTrainerService_SpecializationCatalogIsDistinct(t *testing.T) {
	t.Parallel()

	fx := newTrainerFixture(t)

	_, err := fx.service.Create(context.Background(), fx.actor, dtoCreateTrainer("a@gym.kz", "Yoga", "Boxing"))
	require.NoError(t, err)
	_, err = fx.service.Create(context.Background(), fx.actor, dtoCreateTrainer("b@gym.kz", "Yoga", "Crossfit"))
	require.NoError(t, err)

	names, err := fx.service.ListSpecializations(context.Background(), fx.actor)
	require.NoError(t, err)
	assert.Equal(t, []string{"Boxing", "Crossfit", "Yoga"}, names, "distinct names, sorted")
}

func TestTrainerService_DeleteSpecialization_RemovesTenantWide(t *testing.T) {
	t.Parallel()

	fx := newTrainerFixture(t)

	_, err := fx.service.Create(context.Background(), fx.actor, dtoCreateTrainer("a@gym.kz", "Yoga", "Boxing"))
	require.NoError(t, err)
	_, err = fx.service.Create(context.Background(), fx.actor, dtoCreateTrainer("b@gym.kz", "Yoga"))
	require.NoError(t, err)

	removed, err := fx.service.DeleteSpecialization(context.Background(), fx.actor, "Yoga")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed, "one row per trainer holding the tag")

	names, _ := fx.service.ListSpecializations(context.Background(), fx.actor)
	assert.Equal(t, []string{"Boxing"}, names)
}

func TestTrainerService_DeleteSpecialization_UnknownNameIsNotAnError(t *testing.T) {
	t.Parallel()

	fx := newTrainerFixture(t)

	removed, err := fx.service.DeleteSpecialization(context.Background(), fx.actor, "Underwater Basket Weaving")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestTrainerService_Delete_CascadesSpecializations(t *testing.T) {
	t.Parallel()

	fx := newTrainerFixture(t)

	resp, err := fx.service.Create(context.Background(), fx.actor, dtoCreateTrainer("gone@gym.kz", "Yoga"))
	require.NoError(t, err)

	require.NoError(t, fx.service.Delete(context.Background(), fx.actor, resp.TrainerID))

	// Trainer row gone, specialization rows gone with it, profile
	// soft-deleted, identity removed.
	assert.Empty(t, fx.trainerRepo.trainers)
	names, _ := fx.service.ListSpecializations(context.Background(), fx.actor)
	assert.Empty(t, names)
	assert.True(t, fx.profileRepo.deleted[resp.ProfileID])
	assert.Equal(t, 0, fx.identities.Count())
}

func TestTrainerService_Create_SpecWriteFailureMarksAttemptFailed(t *testing.T) {
	t.Parallel()

	fx := newTrainerFixture(t)
	fx.trainerRepo.specErr = errors.New("disk full")

	_, err := fx.service.Create(context.Background(), fx.actor, dtoCreateTrainer("fail@gym.kz", "Yoga"))
	require.Error(t, err)

	failed, _ := fx.provisions.ListByState(context.Background(), fx.actor.TenantID, models.ProvisionStateFailed)
	require.Len(t, failed, 1)
	assert.NotEmpty(t, failed[0].IdentityID, "identity id recorded for reconciliation")
}
