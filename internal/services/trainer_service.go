package services

import (
	"context"
	"errors"
	"strings"

	"gymdesk_backend/internal/identity"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/internal/services/dto"
	"gymdesk_backend/pkg/apperrors"
)

type TrainerService interface {
	List(ctx context.Context, actor *Actor) ([]dto.TrainerRow, error)
	Create(ctx context.Context, actor *Actor, req *dto.CreateTrainerRequest) (*dto.CreateTrainerResponse, error)
	Update(ctx context.Context, actor *Actor, trainerID string, req *dto.UpdateTrainerRequest) error
	ToggleStatus(ctx context.Context, actor *Actor, trainerID string) (bool, error)
	Delete(ctx context.Context, actor *Actor, trainerID string) error

	// Specialization catalog (tenant-wide distinct tag names)
	ListSpecializations(ctx context.Context, actor *Actor) ([]string, error)
	DeleteSpecialization(ctx context.Context, actor *Actor, name string) (int64, error)
}

type TrainerServiceImpl struct {
	trainerRepo repositories.TrainerRepository
	profileRepo repositories.ProfileRepository
	provisioner *Provisioner
	identities  identity.Provider
}

func NewTrainerService(
	trainerRepo repositories.TrainerRepository,
	profileRepo repositories.ProfileRepository,
	provisioner *Provisioner,
	identities identity.Provider,
) TrainerService {
	return &TrainerServiceImpl{
		trainerRepo: trainerRepo,
		profileRepo: profileRepo,
		provisioner: provisioner,
		identities:  identities,
	}
}

func (s *TrainerServiceImpl) List(ctx context.Context, actor *Actor) ([]dto.TrainerRow, error) {
	trainers, err := s.trainerRepo.ListWithDetails(ctx, actor.TenantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rows := make([]dto.TrainerRow, 0, len(trainers))
	for _, t := range trainers {
		row := dto.TrainerRow{
			ID:              t.ID,
			ProfileID:       t.ProfileID,
			Bio:             t.Bio,
			ExperienceYears: t.ExperienceYears,
			Specializations: specializationNames(t.Specializations),
			ActiveClients:   len(t.Clients),
			CreatedAt:       t.CreatedAt,
			FullName:        "Unknown",
		}
		if t.Profile != nil {
			row.FullName = t.Profile.FullName
			row.Email = t.Profile.Email
			row.Phone = t.Profile.Phone
			row.AvatarURL = t.Profile.AvatarURL
			row.IsActive = t.Profile.IsActive
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *TrainerServiceImpl) Create(ctx context.Context, actor *Actor, req *dto.CreateTrainerRequest) (*dto.CreateTrainerResponse, error) {
	specs := normalizeSpecializations(req.Specializations)
	if len(specs) == 0 {
		return nil, apperrors.NewBadRequestError("at least one specialization is required")
	}

	attempt, err := s.provisioner.Begin(ctx, actor.TenantID, req.Email, models.UserRoleTrainer, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		TenantID:   actor.TenantID,
		IdentityID: attempt.IdentityID,
		Email:      req.Email,
		FullName:   buildFullName(req.FirstName, req.LastName),
		Phone:      req.Phone,
		Role:       models.UserRoleTrainer,
		IsActive:   true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		s.provisioner.Fail(ctx, attempt, err)
		return nil, apperrors.InternalError(err)
	}

	trainer := &models.Trainer{
		TenantID:        actor.TenantID,
		ProfileID:       profile.ID,
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
	}
	if err := s.trainerRepo.Create(ctx, trainer); err != nil {
		s.provisioner.Fail(ctx, attempt, err)
		return nil, apperrors.InternalError(err)
	}

	if err := s.trainerRepo.ReplaceSpecializations(ctx, actor.TenantID, trainer.ID, specs); err != nil {
		s.provisioner.Fail(ctx, attempt, err)
		return nil, apperrors.InternalError(err)
	}

	s.provisioner.Complete(ctx, attempt, profile.ID)

	return &dto.CreateTrainerResponse{
		IdentityID:      attempt.IdentityID,
		ProfileID:       profile.ID,
		TrainerID:       trainer.ID,
		Specializations: specs,
	}, nil
}

func (s *TrainerServiceImpl) Update(ctx context.Context, actor *Actor, trainerID string, req *dto.UpdateTrainerRequest) error {
	trainer, err := s.trainerRepo.FindByID(ctx, actor.TenantID, trainerID)
	if err != nil {
		return trainerLookupError(err)
	}
	if trainer.Profile == nil {
		return apperrors.ErrTrainerNotFound
	}

	specs := normalizeSpecializations(req.Specializations)
	if len(specs) == 0 {
		return apperrors.NewBadRequestError("at least one specialization is required")
	}

	fullName := buildFullName(req.FirstName, req.LastName)
	profileFields := map[string]interface{}{
		"full_name": fullName,
	}
	if req.Phone != "" {
		profileFields["phone"] = req.Phone
	}
	if err := s.profileRepo.UpdateFields(ctx, trainer.ProfileID, profileFields); err != nil {
		return apperrors.InternalError(err)
	}

	trainerFields := map[string]interface{}{
		"bio": req.Bio,
	}
	if req.ExperienceYears != nil {
		trainerFields["experience_years"] = *req.ExperienceYears
	}
	if err := s.trainerRepo.UpdateFields(ctx, trainerID, trainerFields); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.trainerRepo.ReplaceSpecializations(ctx, actor.TenantID, trainerID, specs); err != nil {
		return apperrors.InternalError(err)
	}

	if fullName != trainer.Profile.FullName {
		first, last := splitFullName(fullName)
		if err := s.identities.UpdateName(ctx, trainer.Profile.IdentityID, first, last); err != nil {
			return apperrors.ErrIdentityProvider(err)
		}
	}

	return nil
}

func (s *TrainerServiceImpl) ToggleStatus(ctx context.Context, actor *Actor, trainerID string) (bool, error) {
	trainer, err := s.trainerRepo.FindByID(ctx, actor.TenantID, trainerID)
	if err != nil {
		return false, trainerLookupError(err)
	}
	if trainer.Profile == nil {
		return false, apperrors.ErrTrainerNotFound
	}

	newStatus := !trainer.Profile.IsActive
	if err := s.profileRepo.SetActive(ctx, trainer.ProfileID, newStatus); err != nil {
		return false, apperrors.InternalError(err)
	}

	if newStatus {
		err = s.identities.UnbanUser(ctx, trainer.Profile.IdentityID)
	} else {
		err = s.identities.BanUser(ctx, trainer.Profile.IdentityID)
	}
	if err != nil {
		return false, apperrors.ErrIdentityProvider(err)
	}

	return newStatus, nil
}

func (s *TrainerServiceImpl) Delete(ctx context.Context, actor *Actor, trainerID string) error {
	trainer, err := s.trainerRepo.FindByID(ctx, actor.TenantID, trainerID)
	if err != nil {
		return trainerLookupError(err)
	}
	if trainer.Profile == nil {
		return apperrors.ErrTrainerNotFound
	}

	// The trainer row goes away for good (with its specializations and
	// assignments); the profile is only soft-deleted.
	if err := s.trainerRepo.Delete(ctx, trainerID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.profileRepo.SoftDelete(ctx, trainer.ProfileID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.identities.DeleteUser(ctx, trainer.Profile.IdentityID); err != nil {
		if !errors.Is(err, identity.ErrIdentityNotFound) {
			return apperrors.ErrIdentityProvider(err)
		}
	}

	return nil
}

func (s *TrainerServiceImpl) ListSpecializations(ctx context.Context, actor *Actor) ([]string, error) {
	names, err := s.trainerRepo.ListSpecializationNames(ctx, actor.TenantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return names, nil
}

// DeleteSpecialization removes the tag from every trainer in the tenant.
// Zero matches is not an error; the caller gets the count either way.
func (s *TrainerServiceImpl) DeleteSpecialization(ctx context.Context, actor *Actor, name string) (int64, error) {
	removed, err := s.trainerRepo.DeleteSpecializationByName(ctx, actor.TenantID, name)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return removed, nil
}

func trainerLookupError(err error) error {
	if errors.Is(err, repositories.ErrTrainerNotFound) {
		return apperrors.ErrTrainerNotFound
	}
	return apperrors.InternalError(err)
}

func specializationNames(specs []models.TrainerSpecialization) []string {
	names := make([]string, 0, len(specs))
	for _, sp := range specs {
		names = append(names, sp.Name)
	}
	return names
}

// normalizeSpecializations trims entries and drops empties and duplicates,
// preserving the order of first appearance.
func normalizeSpecializations(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
