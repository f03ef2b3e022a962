package repositories

import (
	"context"
	"errors"

	"gymdesk_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTrainerNotFound = errors.New("trainer not found")

type TrainerRepository interface {
	Create(ctx context.Context, trainer *models.Trainer) error
	FindByID(ctx context.Context, tenantID, id string) (*models.Trainer, error)
	// ListWithDetails returns trainers with profile, specializations and
	// active-client assignments, newest first.
	ListWithDetails(ctx context.Context, tenantID string) ([]models.Trainer, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete hard-deletes the trainer row; specialization and assignment
	// rows go with it (FK cascade).
	Delete(ctx context.Context, id string) error

	// Specialization catalog
	ReplaceSpecializations(ctx context.Context, tenantID, trainerID string, names []string) error
	ListSpecializationNames(ctx context.Context, tenantID string) ([]string, error)
	DeleteSpecializationByName(ctx context.Context, tenantID, name string) (int64, error)
}

type TrainerRepositoryImpl struct {
	db *gorm.DB
}

func NewTrainerRepository(db *gorm.DB) TrainerRepository {
	return &TrainerRepositoryImpl{db: db}
}

func (r *TrainerRepositoryImpl) Create(ctx context.Context, trainer *models.Trainer) error {
	return r.db.WithContext(ctx).Create(trainer).Error
}

func (r *TrainerRepositoryImpl) FindByID(ctx context.Context, tenantID, id string) (*models.Trainer, error) {
	var trainer models.Trainer
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Specializations").
		First(&trainer, "id = ? AND tenant_id = ?", id, tenantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

func (r *TrainerRepositoryImpl) ListWithDetails(ctx context.Context, tenantID string) ([]models.Trainer, error) {
	var trainers []models.Trainer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("Profile").
		Preload("Specializations").
		Preload("Clients", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.AssignmentStatusActive)
		}).
		Order("created_at DESC").
		Find(&trainers).Error
	return trainers, err
}

func (r *TrainerRepositoryImpl) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Trainer{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTrainerNotFound
	}
	return nil
}

func (r *TrainerRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Trainer{}, "id = ?", id).Error
}

// ReplaceSpecializations swaps the trainer's tag rows for exactly the
// submitted set: full delete-then-recreate, not a diff.
func (r *TrainerRepositoryImpl) ReplaceSpecializations(ctx context.Context, tenantID, trainerID string, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trainer_id = ?", trainerID).
			Delete(&models.TrainerSpecialization{}).Error; err != nil {
			return err
		}
		if len(names) == 0 {
			return nil
		}
		rows := make([]models.TrainerSpecialization, 0, len(names))
		for _, name := range names {
			rows = append(rows, models.TrainerSpecialization{
				TenantID:  tenantID,
				TrainerID: trainerID,
				Name:      name,
			})
		}
		return tx.Create(&rows).Error
	})
}

func (r *TrainerRepositoryImpl) ListSpecializationNames(ctx context.Context, tenantID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.TrainerSpecialization{}).
		Where("tenant_id = ?", tenantID).
		Distinct("name").
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

func (r *TrainerRepositoryImpl) DeleteSpecializationByName(ctx context.Context, tenantID, name string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Delete(&models.TrainerSpecialization{})
	return result.RowsAffected, result.Error
}
