package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"gymdesk_backend/internal/email"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the semantics the gorm
// implementations rely on (tenant scoping, soft deletes, preloads) closely
// enough for service-level tests.

type fakeTenantRepo struct {
	tenants map[string]*models.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[string]*models.Tenant)}
}

func (r *fakeTenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) FindByID(ctx context.Context, id string) (*models.Tenant, error) {
	tenant, ok := r.tenants[id]
	if !ok {
		return nil, repositories.ErrTenantNotFound
	}
	return tenant, nil
}

func (r *fakeTenantRepo) FindByName(ctx context.Context, name string) (*models.Tenant, error) {
	for _, tenant := range r.tenants {
		if tenant.Name == name {
			return tenant, nil
		}
	}
	return nil, repositories.ErrTenantNotFound
}

func (r *fakeTenantRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.tenants)), nil
}

type fakeProfileRepo struct {
	profiles  map[string]*models.Profile
	deleted   map[string]bool
	createErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: make(map[string]*models.Profile),
		deleted:  make(map[string]bool),
	}
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	profile, ok := r.profiles[id]
	if !ok || r.deleted[id] {
		return nil, repositories.ErrProfileNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) FindByIdentityID(ctx context.Context, identityID string) (*models.Profile, error) {
	for id, profile := range r.profiles {
		if profile.IdentityID == identityID && !r.deleted[id] {
			return profile, nil
		}
	}
	return nil, repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	profile, ok := r.profiles[id]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	for key, value := range fields {
		switch key {
		case "full_name":
			profile.FullName = value.(string)
		case "phone":
			profile.Phone = value.(string)
		case "role":
			profile.Role = value.(models.UserRole)
		case "is_active":
			profile.IsActive = value.(bool)
		}
	}
	return nil
}

func (r *fakeProfileRepo) SetActive(ctx context.Context, id string, active bool) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{"is_active": active})
}

func (r *fakeProfileRepo) SoftDelete(ctx context.Context, id string) error {
	profile, ok := r.profiles[id]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	profile.IsActive = false
	r.deleted[id] = true
	return nil
}

type fakeMemberRepo struct {
	clients   map[string]*models.Client
	deleted   map[string]bool
	profiles  *fakeProfileRepo
	createErr error
}

func newFakeMemberRepo(profiles *fakeProfileRepo) *fakeMemberRepo {
	return &fakeMemberRepo{
		clients:  make(map[string]*models.Client),
		deleted:  make(map[string]bool),
		profiles: profiles,
	}
}

func (r *fakeMemberRepo) Create(ctx context.Context, client *models.Client) error {
	if r.createErr != nil {
		return r.createErr
	}
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	client.CreatedAt = time.Now()
	r.clients[client.ID] = client
	return nil
}

func (r *fakeMemberRepo) FindByID(ctx context.Context, tenantID, id string) (*models.Client, error) {
	client, ok := r.clients[id]
	if !ok || r.deleted[id] || client.TenantID != tenantID {
		return nil, repositories.ErrMemberNotFound
	}
	// Preloads materialize detached rows; hand out a copy so callers see a
	// snapshot rather than aliasing the stored struct.
	client.Profile = nil
	if profile, ok := r.profiles.profiles[client.ProfileID]; ok {
		snapshot := *profile
		client.Profile = &snapshot
	}
	return client, nil
}

func (r *fakeMemberRepo) ListWithDetails(ctx context.Context, tenantID string) ([]models.Client, error) {
	var out []models.Client
	for id, client := range r.clients {
		if client.TenantID != tenantID || r.deleted[id] {
			continue
		}
		client.Profile = r.profiles.profiles[client.ProfileID]
		out = append(out, *client)
	}
	return out, nil
}

func (r *fakeMemberRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	client, ok := r.clients[id]
	if !ok {
		return repositories.ErrMemberNotFound
	}
	for key, value := range fields {
		switch key {
		case "gender":
			client.Gender = value.(string)
		case "fitness_goal":
			client.FitnessGoal = value.(string)
		}
	}
	return nil
}

func (r *fakeMemberRepo) SoftDelete(ctx context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return repositories.ErrMemberNotFound
	}
	r.deleted[id] = true
	return nil
}

type fakeTrainerRepo struct {
	trainers  map[string]*models.Trainer
	specs     map[string][]models.TrainerSpecialization
	profiles  *fakeProfileRepo
	createErr error
	specErr   error
}

func newFakeTrainerRepo(profiles *fakeProfileRepo) *fakeTrainerRepo {
	return &fakeTrainerRepo{
		trainers: make(map[string]*models.Trainer),
		specs:    make(map[string][]models.TrainerSpecialization),
		profiles: profiles,
	}
}

func (r *fakeTrainerRepo) Create(ctx context.Context, trainer *models.Trainer) error {
	if r.createErr != nil {
		return r.createErr
	}
	if trainer.ID == "" {
		trainer.ID = uuid.NewString()
	}
	trainer.CreatedAt = time.Now()
	r.trainers[trainer.ID] = trainer
	return nil
}

func (r *fakeTrainerRepo) FindByID(ctx context.Context, tenantID, id string) (*models.Trainer, error) {
	trainer, ok := r.trainers[id]
	if !ok || trainer.TenantID != tenantID {
		return nil, repositories.ErrTrainerNotFound
	}
	trainer.Profile = r.profiles.profiles[trainer.ProfileID]
	trainer.Specializations = r.specs[id]
	return trainer, nil
}

func (r *fakeTrainerRepo) ListWithDetails(ctx context.Context, tenantID string) ([]models.Trainer, error) {
	var out []models.Trainer
	for id, trainer := range r.trainers {
		if trainer.TenantID != tenantID {
			continue
		}
		trainer.Profile = r.profiles.profiles[trainer.ProfileID]
		trainer.Specializations = r.specs[id]
		out = append(out, *trainer)
	}
	return out, nil
}

func (r *fakeTrainerRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	trainer, ok := r.trainers[id]
	if !ok {
		return repositories.ErrTrainerNotFound
	}
	for key, value := range fields {
		switch key {
		case "bio":
			trainer.Bio = value.(string)
		case "experience_years":
			years := value.(int)
			trainer.ExperienceYears = &years
		}
	}
	return nil
}

func (r *fakeTrainerRepo) Delete(ctx context.Context, id string) error {
	delete(r.trainers, id)
	delete(r.specs, id)
	return nil
}

func (r *fakeTrainerRepo) ReplaceSpecializations(ctx context.Context, tenantID, trainerID string, names []string) error {
	if r.specErr != nil {
		return r.specErr
	}
	rows := make([]models.TrainerSpecialization, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.TrainerSpecialization{
			TenantID:  tenantID,
			TrainerID: trainerID,
			Name:      name,
		})
	}
	r.specs[trainerID] = rows
	return nil
}

func (r *fakeTrainerRepo) ListSpecializationNames(ctx context.Context, tenantID string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, rows := range r.specs {
		for _, row := range rows {
			if row.TenantID != tenantID || seen[row.Name] {
				continue
			}
			seen[row.Name] = true
			names = append(names, row.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *fakeTrainerRepo) DeleteSpecializationByName(ctx context.Context, tenantID, name string) (int64, error) {
	var removed int64
	for trainerID, rows := range r.specs {
		kept := rows[:0]
		for _, row := range rows {
			if row.TenantID == tenantID && row.Name == name {
				removed++
				continue
			}
			kept = append(kept, row)
		}
		r.specs[trainerID] = kept
	}
	return removed, nil
}

type fakeExerciseRepo struct {
	exercises  map[string]*models.Exercise
	categories map[string]*models.ExerciseCategory
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{
		exercises:  make(map[string]*models.Exercise),
		categories: make(map[string]*models.ExerciseCategory),
	}
}

func (r *fakeExerciseRepo) CreateExercise(ctx context.Context, exercise *models.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	r.exercises[exercise.ID] = exercise
	return nil
}

func (r *fakeExerciseRepo) FindExerciseByID(ctx context.Context, tenantID, id string) (*models.Exercise, error) {
	exercise, ok := r.exercises[id]
	if !ok || exercise.TenantID != tenantID {
		return nil, repositories.ErrExerciseNotFound
	}
	return exercise, nil
}

func (r *fakeExerciseRepo) ListExercises(ctx context.Context, tenantID string) ([]models.Exercise, error) {
	var out []models.Exercise
	for _, exercise := range r.exercises {
		if exercise.TenantID != tenantID {
			continue
		}
		if exercise.CategoryID != nil {
			exercise.Category = r.categories[*exercise.CategoryID]
		}
		out = append(out, *exercise)
	}
	return out, nil
}

func (r *fakeExerciseRepo) UpdateExercise(ctx context.Context, id string, fields map[string]interface{}) error {
	exercise, ok := r.exercises[id]
	if !ok {
		return repositories.ErrExerciseNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			exercise.Name = value.(string)
		case "category_id":
			exercise.CategoryID, _ = value.(*string)
		case "muscle_group":
			exercise.MuscleGroup = value.(string)
		case "difficulty":
			exercise.Difficulty = value.(models.Difficulty)
		case "video_url":
			exercise.VideoURL = value.(string)
		case "thumbnail_url":
			exercise.ThumbnailURL = value.(string)
		case "description":
			exercise.Description = value.(string)
		}
	}
	return nil
}

func (r *fakeExerciseRepo) DeleteExercise(ctx context.Context, id string) error {
	delete(r.exercises, id)
	return nil
}

func (r *fakeExerciseRepo) CreateCategory(ctx context.Context, category *models.ExerciseCategory) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeExerciseRepo) FindCategoryByID(ctx context.Context, tenantID, id string) (*models.ExerciseCategory, error) {
	category, ok := r.categories[id]
	if !ok || category.TenantID != tenantID {
		return nil, repositories.ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeExerciseRepo) ListCategoriesWithCounts(ctx context.Context, tenantID string) ([]repositories.CategoryWithCount, error) {
	var out []repositories.CategoryWithCount
	for id, category := range r.categories {
		if category.TenantID != tenantID {
			continue
		}
		var count int64
		for _, exercise := range r.exercises {
			if exercise.CategoryID != nil && *exercise.CategoryID == id {
				count++
			}
		}
		out = append(out, repositories.CategoryWithCount{ExerciseCategory: *category, ExerciseCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeExerciseRepo) UpdateCategory(ctx context.Context, id string, name string) error {
	category, ok := r.categories[id]
	if !ok {
		return repositories.ErrCategoryNotFound
	}
	category.Name = name
	return nil
}

func (r *fakeExerciseRepo) DeleteCategoryUnlinking(ctx context.Context, id string) (int64, error) {
	var unlinked int64
	for _, exercise := range r.exercises {
		if exercise.CategoryID != nil && *exercise.CategoryID == id {
			exercise.CategoryID = nil
			unlinked++
		}
	}
	delete(r.categories, id)
	return unlinked, nil
}

type fakeSubscriptionRepo struct {
	subscriptions map[string]*models.Subscription
	plans         map[string]*models.MembershipPlan
	deletedPlans  map[string]bool
	payments      map[string][]models.Payment
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		subscriptions: make(map[string]*models.Subscription),
		plans:         make(map[string]*models.MembershipPlan),
		deletedPlans:  make(map[string]bool),
		payments:      make(map[string][]models.Payment),
	}
}

func (r *fakeSubscriptionRepo) addPayment(subscriptionID string, payment models.Payment) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	payment.SubscriptionID = subscriptionID
	r.payments[subscriptionID] = append(r.payments[subscriptionID], payment)
}

// paymentsFor mirrors the preload ordering: newest first.
func (r *fakeSubscriptionRepo) paymentsFor(subscriptionID string) []models.Payment {
	out := append([]models.Payment(nil), r.payments[subscriptionID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) error {
	if subscription.ID == "" {
		subscription.ID = uuid.NewString()
	}
	r.subscriptions[subscription.ID] = subscription
	return nil
}

func (r *fakeSubscriptionRepo) FindByID(ctx context.Context, tenantID, id string) (*models.Subscription, error) {
	subscription, ok := r.subscriptions[id]
	if !ok || subscription.TenantID != tenantID {
		return nil, repositories.ErrSubscriptionNotFound
	}
	subscription.Plan = r.plans[subscription.PlanID]
	return subscription, nil
}

func (r *fakeSubscriptionRepo) ListWithRelations(ctx context.Context, tenantID string) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, subscription := range r.subscriptions {
		if subscription.TenantID != tenantID {
			continue
		}
		subscription.Plan = r.plans[subscription.PlanID]
		subscription.Payments = r.paymentsFor(subscription.ID)
		out = append(out, *subscription)
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) UpdateStatus(ctx context.Context, id string, status models.SubscriptionStatus) error {
	subscription, ok := r.subscriptions[id]
	if !ok {
		return repositories.ErrSubscriptionNotFound
	}
	subscription.Status = status
	return nil
}

func (r *fakeSubscriptionRepo) ListPlans(ctx context.Context, tenantID string) ([]models.MembershipPlan, error) {
	var out []models.MembershipPlan
	for id, plan := range r.plans {
		if plan.TenantID != tenantID || r.deletedPlans[id] {
			continue
		}
		out = append(out, *plan)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeSubscriptionRepo) CreatePlan(ctx context.Context, plan *models.MembershipPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	r.plans[plan.ID] = plan
	return nil
}

func (r *fakeSubscriptionRepo) FindPlanByID(ctx context.Context, tenantID, id string) (*models.MembershipPlan, error) {
	plan, ok := r.plans[id]
	if !ok || plan.TenantID != tenantID || r.deletedPlans[id] {
		return nil, repositories.ErrPlanNotFound
	}
	return plan, nil
}

func (r *fakeSubscriptionRepo) SoftDeletePlan(ctx context.Context, id string) error {
	r.deletedPlans[id] = true
	return nil
}

func (r *fakeSubscriptionRepo) ExpireOverdue(ctx context.Context) (int64, error) {
	var expired int64
	now := time.Now()
	for _, subscription := range r.subscriptions {
		if subscription.Status == models.SubscriptionStatusActive && subscription.EndDate.Before(now) {
			subscription.Status = models.SubscriptionStatusExpired
			expired++
		}
	}
	return expired, nil
}

func (r *fakeSubscriptionRepo) FindDueForReminder(ctx context.Context, withinDays int) ([]models.Subscription, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, withinDays)

	var out []models.Subscription
	for _, subscription := range r.subscriptions {
		if subscription.Status != models.SubscriptionStatusActive || subscription.ReminderSentAt != nil {
			continue
		}
		if subscription.EndDate.After(now) && subscription.EndDate.Before(cutoff) {
			subscription.Plan = r.plans[subscription.PlanID]
			out = append(out, *subscription)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) MarkReminderSent(ctx context.Context, id string) error {
	subscription, ok := r.subscriptions[id]
	if !ok {
		return repositories.ErrSubscriptionNotFound
	}
	now := time.Now()
	subscription.ReminderSentAt = &now
	return nil
}

type fakeProvisionRepo struct {
	attempts map[string]*models.ProvisionAttempt
}

func newFakeProvisionRepo() *fakeProvisionRepo {
	return &fakeProvisionRepo{attempts: make(map[string]*models.ProvisionAttempt)}
}

func (r *fakeProvisionRepo) Create(ctx context.Context, attempt *models.ProvisionAttempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	attempt.CreatedAt = time.Now()
	attempt.UpdatedAt = time.Now()
	r.attempts[attempt.ID] = attempt
	return nil
}

func (r *fakeProvisionRepo) Update(ctx context.Context, attempt *models.ProvisionAttempt) error {
	if _, ok := r.attempts[attempt.ID]; !ok {
		return errors.New("attempt not persisted")
	}
	attempt.UpdatedAt = time.Now()
	r.attempts[attempt.ID] = attempt
	return nil
}

func (r *fakeProvisionRepo) FindByID(ctx context.Context, id string) (*models.ProvisionAttempt, error) {
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, repositories.ErrProvisionNotFound
	}
	return attempt, nil
}

func (r *fakeProvisionRepo) FindStale(ctx context.Context, tenantID string, cutoff time.Time) ([]models.ProvisionAttempt, error) {
	var out []models.ProvisionAttempt
	for _, attempt := range r.attempts {
		if attempt.TenantID != tenantID {
			continue
		}
		if attempt.State != models.ProvisionStatePending && attempt.State != models.ProvisionStateFailed {
			continue
		}
		if attempt.UpdatedAt.Before(cutoff) {
			out = append(out, *attempt)
		}
	}
	return out, nil
}

func (r *fakeProvisionRepo) ListByState(ctx context.Context, tenantID string, state models.ProvisionState) ([]models.ProvisionAttempt, error) {
	var out []models.ProvisionAttempt
	for _, attempt := range r.attempts {
		if attempt.TenantID == tenantID && attempt.State == state {
			out = append(out, *attempt)
		}
	}
	return out, nil
}

// recordingMailer captures outgoing mail.
type recordingMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to       []string
	subject  string
	template string
	data     email.TemplateData
}

func (m *recordingMailer) Send(msg *email.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: msg.To, subject: msg.Subject})
	return nil
}

func (m *recordingMailer) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, template: templateName, data: data})
	return nil
}
