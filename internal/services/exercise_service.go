package services

import (
	"context"
	"errors"

	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/internal/services/dto"
	"gymdesk_backend/pkg/apperrors"
)

type ExerciseService interface {
	ListExercises(ctx context.Context, actor *Actor) ([]dto.ExerciseRow, error)
	CreateExercise(ctx context.Context, actor *Actor, req *dto.CreateExerciseRequest) (*dto.ExerciseRow, error)
	UpdateExercise(ctx context.Context, actor *Actor, exerciseID string, req *dto.UpdateExerciseRequest) error
	DeleteExercise(ctx context.Context, actor *Actor, exerciseID string) error

	ListCategories(ctx context.Context, actor *Actor) ([]dto.CategoryRow, error)
	CreateCategory(ctx context.Context, actor *Actor, req *dto.CreateCategoryRequest) (*dto.CategoryRow, error)
	UpdateCategory(ctx context.Context, actor *Actor, categoryID string, req *dto.CreateCategoryRequest) error
	DeleteCategory(ctx context.Context, actor *Actor, categoryID string) (*dto.DeleteCategoryResponse, error)
}

type ExerciseServiceImpl struct {
	exerciseRepo repositories.ExerciseRepository
}

func NewExerciseService(exerciseRepo repositories.ExerciseRepository) ExerciseService {
	return &ExerciseServiceImpl{exerciseRepo: exerciseRepo}
}

func (s *ExerciseServiceImpl) ListExercises(ctx context.Context, actor *Actor) ([]dto.ExerciseRow, error) {
	exercises, err := s.exerciseRepo.ListExercises(ctx, actor.TenantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rows := make([]dto.ExerciseRow, 0, len(exercises))
	for _, e := range exercises {
		rows = append(rows, exerciseToRow(&e))
	}
	return rows, nil
}

func (s *ExerciseServiceImpl) CreateExercise(ctx context.Context, actor *Actor, req *dto.CreateExerciseRequest) (*dto.ExerciseRow, error) {
	categoryID, err := s.resolveCategory(ctx, actor.TenantID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	exercise := &models.Exercise{
		TenantID:     actor.TenantID,
		Name:         req.Name,
		CategoryID:   categoryID,
		MuscleGroup:  req.MuscleGroup,
		Difficulty:   models.Difficulty(req.Difficulty),
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Description:  req.Description,
	}
	if err := s.exerciseRepo.CreateExercise(ctx, exercise); err != nil {
		return nil, apperrors.InternalError(err)
	}

	row := exerciseToRow(exercise)
	return &row, nil
}

func (s *ExerciseServiceImpl) UpdateExercise(ctx context.Context, actor *Actor, exerciseID string, req *dto.UpdateExerciseRequest) error {
	if _, err := s.exerciseRepo.FindExerciseByID(ctx, actor.TenantID, exerciseID); err != nil {
		return exerciseLookupError(err)
	}

	categoryID, err := s.resolveCategory(ctx, actor.TenantID, req.CategoryID)
	if err != nil {
		return err
	}

	// Full-form resubmit: every column is written, absent optionals clear.
	fields := map[string]interface{}{
		"name":          req.Name,
		"category_id":   categoryID,
		"muscle_group":  req.MuscleGroup,
		"difficulty":    models.Difficulty(req.Difficulty),
		"video_url":     req.VideoURL,
		"thumbnail_url": req.ThumbnailURL,
		"description":   req.Description,
	}
	if err := s.exerciseRepo.UpdateExercise(ctx, exerciseID, fields); err != nil {
		return exerciseLookupError(err)
	}
	return nil
}

func (s *ExerciseServiceImpl) DeleteExercise(ctx context.Context, actor *Actor, exerciseID string) error {
	if _, err := s.exerciseRepo.FindExerciseByID(ctx, actor.TenantID, exerciseID); err != nil {
		return exerciseLookupError(err)
	}
	if err := s.exerciseRepo.DeleteExercise(ctx, exerciseID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ExerciseServiceImpl) ListCategories(ctx context.Context, actor *Actor) ([]dto.CategoryRow, error) {
	categories, err := s.exerciseRepo.ListCategoriesWithCounts(ctx, actor.TenantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rows := make([]dto.CategoryRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, dto.CategoryRow{
			ID:            c.ID,
			Name:          c.Name,
			ExerciseCount: c.ExerciseCount,
		})
	}
	return rows, nil
}

func (s *ExerciseServiceImpl) CreateCategory(ctx context.Context, actor *Actor, req *dto.CreateCategoryRequest) (*dto.CategoryRow, error) {
	category := &models.ExerciseCategory{
		TenantID: actor.TenantID,
		Name:     req.Name,
	}
	if err := s.exerciseRepo.CreateCategory(ctx, category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.CategoryRow{ID: category.ID, Name: category.Name}, nil
}

func (s *ExerciseServiceImpl) UpdateCategory(ctx context.Context, actor *Actor, categoryID string, req *dto.CreateCategoryRequest) error {
	if _, err := s.exerciseRepo.FindCategoryByID(ctx, actor.TenantID, categoryID); err != nil {
		return categoryLookupError(err)
	}
	if err := s.exerciseRepo.UpdateCategory(ctx, categoryID, req.Name); err != nil {
		return categoryLookupError(err)
	}
	return nil
}

// DeleteCategory detaches the category's exercises instead of deleting them.
func (s *ExerciseServiceImpl) DeleteCategory(ctx context.Context, actor *Actor, categoryID string) (*dto.DeleteCategoryResponse, error) {
	if _, err := s.exerciseRepo.FindCategoryByID(ctx, actor.TenantID, categoryID); err != nil {
		return nil, categoryLookupError(err)
	}

	unlinked, err := s.exerciseRepo.DeleteCategoryUnlinking(ctx, categoryID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.DeleteCategoryResponse{UnlinkedExercises: unlinked}, nil
}

// resolveCategory checks a submitted category id against the tenant; empty
// means unfiled.
func (s *ExerciseServiceImpl) resolveCategory(ctx context.Context, tenantID, categoryID string) (*string, error) {
	if categoryID == "" {
		return nil, nil
	}
	if _, err := s.exerciseRepo.FindCategoryByID(ctx, tenantID, categoryID); err != nil {
		return nil, categoryLookupError(err)
	}
	return &categoryID, nil
}

func exerciseToRow(e *models.Exercise) dto.ExerciseRow {
	row := dto.ExerciseRow{
		ID:           e.ID,
		Name:         e.Name,
		MuscleGroup:  e.MuscleGroup,
		Difficulty:   string(e.Difficulty),
		VideoURL:     e.VideoURL,
		ThumbnailURL: e.ThumbnailURL,
		Description:  e.Description,
		CreatedAt:    e.CreatedAt,
	}
	if e.CategoryID != nil {
		row.CategoryID = *e.CategoryID
	}
	if e.Category != nil {
		row.CategoryName = e.Category.Name
	}
	return row
}

func exerciseLookupError(err error) error {
	if errors.Is(err, repositories.ErrExerciseNotFound) {
		return apperrors.ErrExerciseNotFound
	}
	return apperrors.InternalError(err)
}

func categoryLookupError(err error) error {
	if errors.Is(err, repositories.ErrCategoryNotFound) {
		return apperrors.ErrCategoryNotFound
	}
	return apperrors.InternalError(err)
}
