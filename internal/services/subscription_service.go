package services

import (
	"context"
	"errors"

	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/internal/services/dto"
	"gymdesk_backend/pkg/apperrors"
)

// recentPaymentsShown caps the payment history carried per subscription row.
const recentPaymentsShown = 5

type SubscriptionService interface {
	List(ctx context.Context, actor *Actor) ([]dto.SubscriptionRow, error)
	Create(ctx context.Context, actor *Actor, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionRow, error)
	Cancel(ctx context.Context, actor *Actor, subscriptionID string) error

	ListPlans(ctx context.Context, actor *Actor) ([]dto.PlanRow, error)
	CreatePlan(ctx context.Context, actor *Actor, req *dto.CreatePlanRequest) (*dto.PlanRow, error)
	DeletePlan(ctx context.Context, actor *Actor, planID string) error
}

type SubscriptionServiceImpl struct {
	subscriptionRepo repositories.SubscriptionRepository
	memberRepo       repositories.MemberRepository
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	memberRepo repositories.MemberRepository,
) SubscriptionService {
	return &SubscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		memberRepo:       memberRepo,
	}
}

func (s *SubscriptionServiceImpl) List(ctx context.Context, actor *Actor) ([]dto.SubscriptionRow, error) {
	subscriptions, err := s.subscriptionRepo.ListWithRelations(ctx, actor.TenantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rows := make([]dto.SubscriptionRow, 0, len(subscriptions))
	for _, sub := range subscriptions {
		rows = append(rows, subscriptionToRow(&sub))
	}
	return rows, nil
}

func (s *SubscriptionServiceImpl) Create(ctx context.Context, actor *Actor, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionRow, error) {
	if _, err := s.memberRepo.FindByID(ctx, actor.TenantID, req.ClientID); err != nil {
		return nil, memberLookupError(err)
	}

	plan, err := s.subscriptionRepo.FindPlanByID(ctx, actor.TenantID, req.PlanID)
	if err != nil {
		return nil, planLookupError(err)
	}

	status := models.SubscriptionStatusActive
	if req.Status != "" {
		status = models.SubscriptionStatus(req.Status)
	}

	subscription := &models.Subscription{
		TenantID:  actor.TenantID,
		ClientID:  req.ClientID,
		PlanID:    plan.ID,
		Status:    status,
		StartDate: req.StartDate,
		EndDate:   req.StartDate.AddDate(0, 0, plan.DurationDays),
	}
	if plan.SessionsLimit != nil {
		remaining := *plan.SessionsLimit
		subscription.RemainingSessions = &remaining
	}
	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, apperrors.InternalError(err)
	}

	subscription.Plan = plan
	row := subscriptionToRow(subscription)
	return &row, nil
}

func (s *SubscriptionServiceImpl) Cancel(ctx context.Context, actor *Actor, subscriptionID string) error {
	subscription, err := s.subscriptionRepo.FindByID(ctx, actor.TenantID, subscriptionID)
	if err != nil {
		return subscriptionLookupError(err)
	}
	if subscription.Status == models.SubscriptionStatusCancelled {
		return apperrors.ErrInvalidOperation("subscription", "subscription is already cancelled")
	}
	if err := s.subscriptionRepo.UpdateStatus(ctx, subscriptionID, models.SubscriptionStatusCancelled); err != nil {
		return subscriptionLookupError(err)
	}
	return nil
}

func (s *SubscriptionServiceImpl) ListPlans(ctx context.Context, actor *Actor) ([]dto.PlanRow, error) {
	plans, err := s.subscriptionRepo.ListPlans(ctx, actor.TenantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rows := make([]dto.PlanRow, 0, len(plans))
	for _, plan := range plans {
		rows = append(rows, planToRow(&plan))
	}
	return rows, nil
}

func (s *SubscriptionServiceImpl) CreatePlan(ctx context.Context, actor *Actor, req *dto.CreatePlanRequest) (*dto.PlanRow, error) {
	if !actor.Role.CanAssignRoles() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	plan := &models.MembershipPlan{
		TenantID:      actor.TenantID,
		Name:          req.Name,
		Price:         req.Price,
		DurationDays:  req.DurationDays,
		SessionsLimit: req.SessionsLimit,
	}
	if err := s.subscriptionRepo.CreatePlan(ctx, plan); err != nil {
		return nil, apperrors.InternalError(err)
	}

	row := planToRow(plan)
	return &row, nil
}

// DeletePlan soft-deletes the plan; existing subscriptions keep pointing at
// it and run out on their own schedule.
func (s *SubscriptionServiceImpl) DeletePlan(ctx context.Context, actor *Actor, planID string) error {
	if !actor.Role.CanAssignRoles() {
		return apperrors.ErrInsufficientPermissions
	}
	if _, err := s.subscriptionRepo.FindPlanByID(ctx, actor.TenantID, planID); err != nil {
		return planLookupError(err)
	}
	if err := s.subscriptionRepo.SoftDeletePlan(ctx, planID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func subscriptionToRow(sub *models.Subscription) dto.SubscriptionRow {
	row := dto.SubscriptionRow{
		ID:                sub.ID,
		Status:            string(sub.Status),
		StartDate:         sub.StartDate,
		EndDate:           sub.EndDate,
		RemainingSessions: sub.RemainingSessions,
		ClientID:          sub.ClientID,
		CreatedAt:         sub.CreatedAt,
	}
	if sub.Client != nil && sub.Client.Profile != nil {
		row.ClientName = sub.Client.Profile.FullName
		row.ClientEmail = sub.Client.Profile.Email
	}
	if sub.Plan != nil {
		row.Plan = planToRow(sub.Plan)
	}
	payments := sub.Payments
	if len(payments) > recentPaymentsShown {
		payments = payments[:recentPaymentsShown]
	}
	row.Payments = make([]dto.PaymentRow, 0, len(payments))
	for _, p := range payments {
		row.Payments = append(row.Payments, dto.PaymentRow{
			ID:            p.ID,
			Amount:        p.Amount,
			Status:        string(p.Status),
			PaymentMethod: p.PaymentMethod,
			PaidAt:        p.PaidAt,
		})
	}
	return row
}

func planToRow(plan *models.MembershipPlan) dto.PlanRow {
	return dto.PlanRow{
		ID:            plan.ID,
		Name:          plan.Name,
		Price:         plan.Price,
		DurationDays:  plan.DurationDays,
		SessionsLimit: plan.SessionsLimit,
	}
}

func subscriptionLookupError(err error) error {
	if errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return apperrors.ErrNotFound(err, "subscription", "Subscription not found")
	}
	return apperrors.InternalError(err)
}

func planLookupError(err error) error {
	if errors.Is(err, repositories.ErrPlanNotFound) {
		return apperrors.ErrPlanNotFound
	}
	return apperrors.InternalError(err)
}
