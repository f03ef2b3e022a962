package services

import (
	"gymdesk_backend/internal/email"
	"gymdesk_backend/internal/identity"
	"gymdesk_backend/internal/repositories"
)

// ServiceContainer wires every service over the shared repositories.
type ServiceContainer struct {
	Tenant       TenantService
	Member       MemberService
	Trainer      TrainerService
	Exercise     ExerciseService
	Subscription SubscriptionService
	Provision    ProvisionService
}

func NewServiceContainer(
	tenantRepo repositories.TenantRepository,
	profileRepo repositories.ProfileRepository,
	memberRepo repositories.MemberRepository,
	trainerRepo repositories.TrainerRepository,
	exerciseRepo repositories.ExerciseRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	provisionRepo repositories.ProvisionRepository,
	identities identity.Provider,
	mailer email.Provider,
) *ServiceContainer {
	provisioner := NewProvisioner(provisionRepo, identities)

	return &ServiceContainer{
		Tenant:       NewTenantService(tenantRepo, profileRepo),
		Member:       NewMemberService(memberRepo, profileRepo, tenantRepo, provisioner, identities, mailer),
		Trainer:      NewTrainerService(trainerRepo, profileRepo, provisioner, identities),
		Exercise:     NewExerciseService(exerciseRepo),
		Subscription: NewSubscriptionService(subscriptionRepo, memberRepo),
		Provision:    NewProvisionService(provisionRepo, profileRepo, identities),
	}
}
