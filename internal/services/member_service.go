package services

import (
	"context"
	"errors"
	"strings"

	"gymdesk_backend/internal/email"
	"gymdesk_backend/internal/identity"
	"gymdesk_backend/internal/logger"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/internal/services/dto"
	"gymdesk_backend/pkg/apperrors"
)

type MemberService interface {
	List(ctx context.Context, actor *Actor) ([]dto.MemberRow, error)
	Create(ctx context.Context, actor *Actor, req *dto.CreateMemberRequest) (*dto.CreateMemberResponse, error)
	Update(ctx context.Context, actor *Actor, clientID string, req *dto.UpdateMemberRequest) error
	ToggleStatus(ctx context.Context, actor *Actor, clientID string) (bool, error)
	Delete(ctx context.Context, actor *Actor, clientID string) error
}

type MemberServiceImpl struct {
	memberRepo  repositories.MemberRepository
	profileRepo repositories.ProfileRepository
	tenantRepo  repositories.TenantRepository
	provisioner *Provisioner
	identities  identity.Provider
	mailer      email.Provider
}

func NewMemberService(
	memberRepo repositories.MemberRepository,
	profileRepo repositories.ProfileRepository,
	tenantRepo repositories.TenantRepository,
	provisioner *Provisioner,
	identities identity.Provider,
	mailer email.Provider,
) MemberService {
	return &MemberServiceImpl{
		memberRepo:  memberRepo,
		profileRepo: profileRepo,
		tenantRepo:  tenantRepo,
		provisioner: provisioner,
		identities:  identities,
		mailer:      mailer,
	}
}

func (s *MemberServiceImpl) List(ctx context.Context, actor *Actor) ([]dto.MemberRow, error) {
	clients, err := s.memberRepo.ListWithDetails(ctx, actor.TenantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rows := make([]dto.MemberRow, 0, len(clients))
	for _, c := range clients {
		row := dto.MemberRow{
			ID:          c.ID,
			ProfileID:   c.ProfileID,
			Gender:      c.Gender,
			FitnessGoal: c.FitnessGoal,
			JoinedAt:    c.CreatedAt,
			Role:        string(models.UserRoleClient),
			FullName:    "Unknown",
		}
		if c.Profile != nil {
			row.FullName = c.Profile.FullName
			row.Email = c.Profile.Email
			row.Phone = c.Profile.Phone
			row.AvatarURL = c.Profile.AvatarURL
			row.IsActive = c.Profile.IsActive
			row.Role = string(c.Profile.Role)
		}
		if len(c.Subscriptions) > 0 {
			sub := c.Subscriptions[0]
			row.SubscriptionStatus = string(sub.Status)
			if sub.Plan != nil {
				row.PlanName = sub.Plan.Name
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *MemberServiceImpl) Create(ctx context.Context, actor *Actor, req *dto.CreateMemberRequest) (*dto.CreateMemberResponse, error) {
	// Requested role is honored only for admins; anyone else silently gets
	// the default. Deliberately not an error (see DESIGN.md).
	assignedRole := models.UserRoleClient
	if req.Role != "" && models.ValidRole(req.Role) && actor.Role.CanAssignRoles() {
		assignedRole = models.UserRole(req.Role)
	}

	attempt, err := s.provisioner.Begin(ctx, actor.TenantID, req.Email, assignedRole, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		TenantID:   actor.TenantID,
		IdentityID: attempt.IdentityID,
		Email:      req.Email,
		FullName:   buildFullName(req.FirstName, req.LastName),
		Phone:      req.Phone,
		Role:       assignedRole,
		IsActive:   true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		s.provisioner.Fail(ctx, attempt, err)
		return nil, apperrors.InternalError(err)
	}

	client := &models.Client{
		TenantID:    actor.TenantID,
		ProfileID:   profile.ID,
		Gender:      req.Gender,
		FitnessGoal: req.FitnessGoal,
	}
	if err := s.memberRepo.Create(ctx, client); err != nil {
		s.provisioner.Fail(ctx, attempt, err)
		return nil, apperrors.InternalError(err)
	}

	s.provisioner.Complete(ctx, attempt, profile.ID)
	s.sendWelcome(ctx, actor.TenantID, req.Email, req.FirstName)

	return &dto.CreateMemberResponse{
		IdentityID: attempt.IdentityID,
		ProfileID:  profile.ID,
		ClientID:   client.ID,
	}, nil
}

func (s *MemberServiceImpl) Update(ctx context.Context, actor *Actor, clientID string, req *dto.UpdateMemberRequest) error {
	client, err := s.memberRepo.FindByID(ctx, actor.TenantID, clientID)
	if err != nil {
		return memberLookupError(err)
	}
	if client.Profile == nil {
		return apperrors.ErrMemberNotFound
	}

	fullName := ""
	if req.FirstName != "" || req.LastName != "" {
		fullName = buildFullName(req.FirstName, req.LastName)
	}

	profileFields := map[string]interface{}{}
	if fullName != "" {
		profileFields["full_name"] = fullName
	}
	if req.Phone != "" {
		profileFields["phone"] = req.Phone
	}
	// Same silent-downgrade rule as create.
	if req.Role != "" && models.ValidRole(req.Role) && actor.Role.CanAssignRoles() {
		profileFields["role"] = models.UserRole(req.Role)
	}
	if len(profileFields) > 0 {
		if err := s.profileRepo.UpdateFields(ctx, client.ProfileID, profileFields); err != nil {
			return apperrors.InternalError(err)
		}
	}

	clientFields := map[string]interface{}{}
	if req.Gender != "" {
		clientFields["gender"] = req.Gender
	}
	if req.FitnessGoal != "" {
		clientFields["fitness_goal"] = req.FitnessGoal
	}
	if len(clientFields) > 0 {
		if err := s.memberRepo.UpdateFields(ctx, clientID, clientFields); err != nil {
			return apperrors.InternalError(err)
		}
	}

	// Name syncs back to the identity provider only when it actually changed.
	if fullName != "" && fullName != client.Profile.FullName {
		first, last := splitFullName(fullName)
		if err := s.identities.UpdateName(ctx, client.Profile.IdentityID, first, last); err != nil {
			return apperrors.ErrIdentityProvider(err)
		}
	}

	return nil
}

func (s *MemberServiceImpl) ToggleStatus(ctx context.Context, actor *Actor, clientID string) (bool, error) {
	client, err := s.memberRepo.FindByID(ctx, actor.TenantID, clientID)
	if err != nil {
		return false, memberLookupError(err)
	}
	if client.Profile == nil {
		return false, apperrors.ErrMemberNotFound
	}

	newStatus := !client.Profile.IsActive
	if err := s.profileRepo.SetActive(ctx, client.ProfileID, newStatus); err != nil {
		return false, apperrors.InternalError(err)
	}

	// Mirror the flag into the identity provider: inactive = banned.
	if newStatus {
		err = s.identities.UnbanUser(ctx, client.Profile.IdentityID)
	} else {
		err = s.identities.BanUser(ctx, client.Profile.IdentityID)
	}
	if err != nil {
		return false, apperrors.ErrIdentityProvider(err)
	}

	return newStatus, nil
}

func (s *MemberServiceImpl) Delete(ctx context.Context, actor *Actor, clientID string) error {
	client, err := s.memberRepo.FindByID(ctx, actor.TenantID, clientID)
	if err != nil {
		return memberLookupError(err)
	}
	if client.Profile == nil {
		return apperrors.ErrMemberNotFound
	}

	// Rows are soft-deleted; the identity record is hard-deleted and cannot
	// be restored.
	if err := s.memberRepo.SoftDelete(ctx, clientID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.profileRepo.SoftDelete(ctx, client.ProfileID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.identities.DeleteUser(ctx, client.Profile.IdentityID); err != nil {
		if !errors.Is(err, identity.ErrIdentityNotFound) {
			return apperrors.ErrIdentityProvider(err)
		}
	}

	return nil
}

func (s *MemberServiceImpl) sendWelcome(ctx context.Context, tenantID, to, firstName string) {
	if s.mailer == nil {
		return
	}

	tenantName := ""
	if tenant, err := s.tenantRepo.FindByID(ctx, tenantID); err == nil {
		tenantName = tenant.Name
	}

	err := s.mailer.SendTemplate([]string{to}, "Welcome to "+tenantName, email.TemplateWelcome, email.TemplateData{
		"FirstName":  firstName,
		"TenantName": tenantName,
	})
	if err != nil {
		// Welcome mail is best-effort; provisioning already succeeded.
		logger.CtxWarn(ctx, "failed to send welcome email", "to", to, "error", err.Error())
	}
}

func memberLookupError(err error) error {
	if errors.Is(err, repositories.ErrMemberNotFound) {
		return apperrors.ErrMemberNotFound
	}
	return apperrors.InternalError(err)
}

func buildFullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

func splitFullName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
