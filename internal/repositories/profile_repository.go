package repositories

import (
	"context"
	"errors"
	"time"

	"gymdesk_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	// FindByIdentityID looks up the profile owning an external identity.
	// This is the tenant-resolution query that scopes every mutation.
	FindByIdentityID(ctx context.Context, identityID string) (*models.Profile, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	SetActive(ctx context.Context, id string, active bool) error
	SoftDelete(ctx context.Context, id string) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByIdentityID(ctx context.Context, identityID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "identity_id = ?", identityID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{"is_active": active})
}

func (r *ProfileRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	// Deactivate and stamp deleted_at in one update; gorm soft delete alone
	// would leave is_active untouched.
	return r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_at": time.Now(),
		}).Error
}
