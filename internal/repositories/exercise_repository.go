package repositories

import (
	"context"
	"errors"

	"gymdesk_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryWithCount is the list-view row for the category table.
type CategoryWithCount struct {
	models.ExerciseCategory
	ExerciseCount int64
}

type ExerciseRepository interface {
	CreateExercise(ctx context.Context, exercise *models.Exercise) error
	FindExerciseByID(ctx context.Context, tenantID, id string) (*models.Exercise, error)
	ListExercises(ctx context.Context, tenantID string) ([]models.Exercise, error)
	UpdateExercise(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteExercise(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, category *models.ExerciseCategory) error
	FindCategoryByID(ctx context.Context, tenantID, id string) (*models.ExerciseCategory, error)
	ListCategoriesWithCounts(ctx context.Context, tenantID string) ([]CategoryWithCount, error)
	UpdateCategory(ctx context.Context, id string, name string) error
	// DeleteCategoryUnlinking NULLs category_id on every exercise pointing
	// at the category, then removes the row. Never deletes exercises.
	DeleteCategoryUnlinking(ctx context.Context, id string) (unlinked int64, err error)
}

type ExerciseRepositoryImpl struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &ExerciseRepositoryImpl{db: db}
}

func (r *ExerciseRepositoryImpl) CreateExercise(ctx context.Context, exercise *models.Exercise) error {
	return r.db.WithContext(ctx).Create(exercise).Error
}

func (r *ExerciseRepositoryImpl) FindExerciseByID(ctx context.Context, tenantID, id string) (*models.Exercise, error) {
	var exercise models.Exercise
	err := r.db.WithContext(ctx).
		First(&exercise, "id = ? AND tenant_id = ?", id, tenantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepositoryImpl) ListExercises(ctx context.Context, tenantID string) ([]models.Exercise, error) {
	var exercises []models.Exercise
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("Category").
		Order("created_at DESC").
		Find(&exercises).Error
	return exercises, err
}

func (r *ExerciseRepositoryImpl) UpdateExercise(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Exercise{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

func (r *ExerciseRepositoryImpl) DeleteExercise(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Exercise{}, "id = ?", id).Error
}

func (r *ExerciseRepositoryImpl) CreateCategory(ctx context.Context, category *models.ExerciseCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *ExerciseRepositoryImpl) FindCategoryByID(ctx context.Context, tenantID, id string) (*models.ExerciseCategory, error) {
	var category models.ExerciseCategory
	err := r.db.WithContext(ctx).
		First(&category, "id = ? AND tenant_id = ?", id, tenantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *ExerciseRepositoryImpl) ListCategoriesWithCounts(ctx context.Context, tenantID string) ([]CategoryWithCount, error) {
	var categories []models.ExerciseCategory
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	rows := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Exercise{}).
			Where("category_id = ?", category.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		rows = append(rows, CategoryWithCount{ExerciseCategory: category, ExerciseCount: count})
	}
	return rows, nil
}

func (r *ExerciseRepositoryImpl) UpdateCategory(ctx context.Context, id string, name string) error {
	result := r.db.WithContext(ctx).Model(&models.ExerciseCategory{}).
		Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *ExerciseRepositoryImpl) DeleteCategoryUnlinking(ctx context.Context, id string) (int64, error) {
	var unlinked int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Exercise{}).
			Where("category_id = ?", id).
			Update("category_id", nil)
		if result.Error != nil {
			return result.Error
		}
		unlinked = result.RowsAffected

		return tx.Delete(&models.ExerciseCategory{}, "id = ?", id).Error
	})
	return unlinked, err
}
