package models

// ExerciseCategory is a catalog entry. Deleting a category unlinks its
// exercises (category_id set to NULL) instead of deleting them.
type ExerciseCategory struct {
	BaseModel
	TenantID string `gorm:"type:uuid;not null;index"`
	Name     string `gorm:"not null"`

	Exercises []Exercise `gorm:"foreignKey:CategoryID"`
}

type Exercise struct {
	BaseModel
	TenantID     string     `gorm:"type:uuid;not null;index"`
	Name         string     `gorm:"not null"`
	CategoryID   *string    `gorm:"type:uuid;index"`
	MuscleGroup  string
	Difficulty   Difficulty `gorm:"type:varchar(20);not null"`
	VideoURL     string
	ThumbnailURL string
	Description  string

	Category *ExerciseCategory `gorm:"foreignKey:CategoryID"`
}
