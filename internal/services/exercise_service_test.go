package services

import (
	"context"
	"testing"

	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/services/dto"
	"gymdesk_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exerciseFixture struct {
	exercises *fakeExerciseRepo
	service   ExerciseService
	actor     *Actor
}

func newExerciseFixture(t *testing.T) *exerciseFixture {
	t.Helper()

	exercises := newFakeExerciseRepo()
	return &exerciseFixture{
		exercises: exercises,
		service:   NewExerciseService(exercises),
		actor: &Actor{
			ProfileID: "actor-profile",
			TenantID:  "tenant-1",
			Role:      models.UserRoleGymAdmin,
		},
	}
}

func (fx *exerciseFixture) createCategory(t *testing.T, name string) *dto.CategoryRow {
	t.Helper()
	row, err := fx.service.CreateCategory(context.Background(), fx.actor, &dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return row
}

func TestExerciseService_Create_WithCategory(t *testing.T) {
	t.Parallel()

	fx := newExerciseFixture(t)
	category := fx.createCategory(t, "Strength")

	row, err := fx.service.CreateExercise(context.Background(), fx.actor, &dto.CreateExerciseRequest{
		Name:        "Deadlift",
		CategoryID:  category.ID,
		MuscleGroup: "back",
		Difficulty:  "advanced",
	})
	require.NoError(t, err)

	assert.Equal(t, category.ID, row.CategoryID)
	assert.Equal(t, "advanced", row.Difficulty)

	listed, err := fx.service.ListExercises(context.Background(), fx.actor)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Strength", listed[0].CategoryName)
}

func TestExerciseService_Create_UnknownCategory(t *testing.T) {
	t.Parallel()

	fx := newExerciseFixture(t)

	_, err := fx.service.CreateExercise(context.Background(), fx.actor, &dto.CreateExerciseRequest{
		Name:       "Squat",
		CategoryID: "22222222-2222-2222-2222-222222222222",
		Difficulty: "beginner",
	})
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}

func TestExerciseService_Create_EmptyCategoryMeansUnfiled(t *testing.T) {
	t.Parallel()

	fx := newExerciseFixture(t)

	row, err := fx.service.CreateExercise(context.Background(), fx.actor, &dto.CreateExerciseRequest{
		Name:       "Plank",
		Difficulty: "beginner",
	})
	require.NoError(t, err)
	assert.Empty(t, row.CategoryID)
}

func TestExerciseService_Update_FullFormClearsAbsentFields(t *testing.T) {
	t.Parallel()

	fx := newExerciseFixture(t)
	category := fx.createCategory(t, "Cardio")

	created, err := fx.service.CreateExercise(context.Background(), fx.actor, &dto.CreateExerciseRequest{
		Name:        "Burpees",
		CategoryID:  category.ID,
		MuscleGroup: "full body",
		Difficulty:  "intermediate",
		VideoURL:    "https://cdn.gym.kz/burpees.mp4",
	})
	require.NoError(t, err)

	// Resubmit without category, muscle group or video: those columns reset.
	err = fx.service.UpdateExercise(context.Background(), fx.actor, created.ID, &dto.UpdateExerciseRequest{
		Name:       "Burpees",
		Difficulty: "advanced",
	})
	require.NoError(t, err)

	stored := fx.exercises.exercises[created.ID]
	assert.Nil(t, stored.CategoryID)
	assert.Empty(t, stored.MuscleGroup)
	assert.Empty(t, stored.VideoURL)
	assert.Equal(t, models.DifficultyAdvanced, stored.Difficulty)
}

func TestExerciseService_Update_OtherTenantExerciseIsNotFound(t *testing.T) {
	t.Parallel()

	fx := newExerciseFixture(t)
	created, err := fx.service.CreateExercise(context.Background(), fx.actor, &dto.CreateExerciseRequest{
		Name:       "Row",
		Difficulty: "beginner",
	})
	require.NoError(t, err)

	outsider := &Actor{ProfileID: "other", TenantID: "tenant-2", Role: models.UserRoleGymAdmin}
	err = fx.service.UpdateExercise(context.Background(), outsider, created.ID, &dto.UpdateExerciseRequest{
		Name:       "Row",
		Difficulty: "beginner",
	})
	assert.ErrorIs(t, err, apperrors.ErrExerciseNotFound)
}

func TestExerciseService_DeleteCategory_UnlinksExercises(t *testing.T) {
	t.Parallel()

	fx := newExerciseFixture(t)
	category := fx.createCategory(t, "Mobility")

	for _, name := range []string{"Hip Circles", "Cat-Cow"} {
		_, err := fx.service.CreateExercise(context.Background(), fx.actor, &dto.CreateExerciseRequest{
			Name:       name,
			CategoryID: category.ID,
			Difficulty: "beginner",
		})
		require.NoError(t, err)
	}

	resp, err := fx.service.DeleteCategory(context.Background(), fx.actor, category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.UnlinkedExercises)

	// Exercises survive the delete, just unfiled now.
	listed, err := fx.service.ListExercises(context.Background(), fx.actor)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
	for _, row := range listed {
		assert.Empty(t, row.CategoryID)
	}

	categories, err := fx.service.ListCategories(context.Background(), fx.actor)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestExerciseService_ListCategories_CountsExercises(t *testing.T) {
	t.Parallel()

	fx := newExerciseFixture(t)
	strength := fx.createCategory(t, "Strength")
	fx.createCategory(t, "Cardio")

	_, err := fx.service.CreateExercise(context.Background(), fx.actor, &dto.CreateExerciseRequest{
		Name:       "Bench Press",
		CategoryID: strength.ID,
		Difficulty: "intermediate",
	})
	require.NoError(t, err)

	rows, err := fx.service.ListCategories(context.Background(), fx.actor)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cardio", rows[0].Name)
	assert.Equal(t, int64(0), rows[0].ExerciseCount)
	assert.Equal(t, "Strength", rows[1].Name)
	assert.Equal(t, int64(1), rows[1].ExerciseCount)
}
