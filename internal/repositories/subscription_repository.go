package repositories

import (
	"context"
	"errors"
	"time"

	"gymdesk_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPlanNotFound         = errors.New("membership plan not found")
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) error
	FindByID(ctx context.Context, tenantID, id string) (*models.Subscription, error)
	// ListWithRelations returns subscriptions with client profile, plan and
	// payments newest first, newest subscription first.
	ListWithRelations(ctx context.Context, tenantID string) ([]models.Subscription, error)
	UpdateStatus(ctx context.Context, id string, status models.SubscriptionStatus) error

	ListPlans(ctx context.Context, tenantID string) ([]models.MembershipPlan, error)
	CreatePlan(ctx context.Context, plan *models.MembershipPlan) error
	FindPlanByID(ctx context.Context, tenantID, id string) (*models.MembershipPlan, error)
	SoftDeletePlan(ctx context.Context, id string) error

	// Worker queries
	ExpireOverdue(ctx context.Context) (int64, error)
	FindDueForReminder(ctx context.Context, withinDays int) ([]models.Subscription, error)
	MarkReminderSent(ctx context.Context, id string) error
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, subscription *models.Subscription) error {
	return r.db.WithContext(ctx).Create(subscription).Error
}

func (r *SubscriptionRepositoryImpl) FindByID(ctx context.Context, tenantID, id string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Plan").
		First(&subscription, "id = ? AND tenant_id = ?", id, tenantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *SubscriptionRepositoryImpl) ListWithRelations(ctx context.Context, tenantID string) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("Client.Profile").
		Preload("Plan").
		// No Limit here: a preload LIMIT caps the one batched IN query,
		// not each parent row. The service trims per subscription.
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("created_at DESC").
		Find(&subscriptions).Error
	return subscriptions, err
}

func (r *SubscriptionRepositoryImpl) UpdateStatus(ctx context.Context, id string, status models.SubscriptionStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) ListPlans(ctx context.Context, tenantID string) ([]models.MembershipPlan, error) {
	var plans []models.MembershipPlan
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepositoryImpl) CreatePlan(ctx context.Context, plan *models.MembershipPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *SubscriptionRepositoryImpl) FindPlanByID(ctx context.Context, tenantID, id string) (*models.MembershipPlan, error) {
	var plan models.MembershipPlan
	err := r.db.WithContext(ctx).
		First(&plan, "id = ? AND tenant_id = ?", id, tenantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionRepositoryImpl) SoftDeletePlan(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.MembershipPlan{}, "id = ?", id).Error
}

func (r *SubscriptionRepositoryImpl) ExpireOverdue(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("status = ? AND end_date < ?", models.SubscriptionStatusActive, time.Now()).
		Update("status", models.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}

func (r *SubscriptionRepositoryImpl) FindDueForReminder(ctx context.Context, withinDays int) ([]models.Subscription, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, withinDays)

	var subscriptions []models.Subscription
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date BETWEEN ? AND ? AND reminder_sent_at IS NULL",
			models.SubscriptionStatusActive, now, cutoff).
		Preload("Client.Profile").
		Preload("Plan").
		Find(&subscriptions).Error
	return subscriptions, err
}

func (r *SubscriptionRepositoryImpl) MarkReminderSent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("id = ?", id).Update("reminder_sent_at", time.Now()).Error
}
