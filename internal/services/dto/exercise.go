package dto

import "time"

type CreateExerciseRequest struct {
	Name         string `json:"name" validate:"required,max=150"`
	CategoryID   string `json:"categoryId" validate:"omitempty,uuid"`
	MuscleGroup  string `json:"muscleGroup" validate:"omitempty,max=100"`
	Difficulty   string `json:"difficulty" validate:"required,is-difficulty"`
	VideoURL     string `json:"videoUrl" validate:"omitempty,url"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
	Description  string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateExerciseRequest carries the same rules as create; the whole form is
// resubmitted.
type UpdateExerciseRequest = CreateExerciseRequest

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ExerciseRow struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CategoryID   string    `json:"categoryId,omitempty"`
	CategoryName string    `json:"categoryName,omitempty"`
	MuscleGroup  string    `json:"muscleGroup,omitempty"`
	Difficulty   string    `json:"difficulty"`
	VideoURL     string    `json:"videoUrl,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CategoryRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ExerciseCount int64  `json:"exerciseCount"`
}

type DeleteCategoryResponse struct {
	UnlinkedExercises int64 `json:"unlinkedExercises"`
}
