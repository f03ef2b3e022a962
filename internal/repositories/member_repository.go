package repositories

import (
	"context"
	"errors"

	"gymdesk_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMemberNotFound = errors.New("member not found")

type MemberRepository interface {
	Create(ctx context.Context, client *models.Client) error
	// FindByID loads the client with its profile, tenant-scoped.
	FindByID(ctx context.Context, tenantID, id string) (*models.Client, error)
	// ListWithDetails returns non-deleted clients with profile and their
	// latest active subscription (plan preloaded), newest first.
	ListWithDetails(ctx context.Context, tenantID string) ([]models.Client, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	SoftDelete(ctx context.Context, id string) error
}

type MemberRepositoryImpl struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &MemberRepositoryImpl{db: db}
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *MemberRepositoryImpl) FindByID(ctx context.Context, tenantID, id string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Preload("Profile").
		First(&client, "id = ? AND tenant_id = ?", id, tenantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *MemberRepositoryImpl) ListWithDetails(ctx context.Context, tenantID string) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("Profile").
		Preload("Subscriptions", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.SubscriptionStatusActive).
				Order("created_at DESC")
		}).
		Preload("Subscriptions.Plan").
		Order("created_at DESC").
		Find(&clients).Error
	return clients, err
}

func (r *MemberRepositoryImpl) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id).Error
}
