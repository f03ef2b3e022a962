package repositories

import (
	"context"
	"errors"
	"time"

	"gymdesk_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProvisionNotFound = errors.New("provision attempt not found")

type ProvisionRepository interface {
	Create(ctx context.Context, attempt *models.ProvisionAttempt) error
	Update(ctx context.Context, attempt *models.ProvisionAttempt) error
	FindByID(ctx context.Context, id string) (*models.ProvisionAttempt, error)
	// FindStale returns pending/failed attempts older than cutoff —
	// candidates for orphaned-identity cleanup.
	FindStale(ctx context.Context, tenantID string, cutoff time.Time) ([]models.ProvisionAttempt, error)
	ListByState(ctx context.Context, tenantID string, state models.ProvisionState) ([]models.ProvisionAttempt, error)
}

type ProvisionRepositoryImpl struct {
	db *gorm.DB
}

func NewProvisionRepository(db *gorm.DB) ProvisionRepository {
	return &ProvisionRepositoryImpl{db: db}
}

func (r *ProvisionRepositoryImpl) Create(ctx context.Context, attempt *models.ProvisionAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *ProvisionRepositoryImpl) Update(ctx context.Context, attempt *models.ProvisionAttempt) error {
	return r.db.WithContext(ctx).Save(attempt).Error
}

func (r *ProvisionRepositoryImpl) FindByID(ctx context.Context, id string) (*models.ProvisionAttempt, error) {
	var attempt models.ProvisionAttempt
	err := r.db.WithContext(ctx).First(&attempt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProvisionNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *ProvisionRepositoryImpl) FindStale(ctx context.Context, tenantID string, cutoff time.Time) ([]models.ProvisionAttempt, error) {
	var attempts []models.ProvisionAttempt
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND state IN ? AND updated_at < ?",
			tenantID,
			[]models.ProvisionState{models.ProvisionStatePending, models.ProvisionStateFailed},
			cutoff).
		Order("created_at ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *ProvisionRepositoryImpl) ListByState(ctx context.Context, tenantID string, state models.ProvisionState) ([]models.ProvisionAttempt, error) {
	var attempts []models.ProvisionAttempt
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND state = ?", tenantID, state).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}
