package database

import (
	"gymdesk_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection pool through gorm.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate brings the schema up to date. uuid-ossp backs the uuid defaults on
// every primary key.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.Tenant{},
		&models.Profile{},
		&models.Client{},
		&models.Trainer{},
		&models.TrainerSpecialization{},
		&models.ClientTrainer{},
		&models.ExerciseCategory{},
		&models.Exercise{},
		&models.MembershipPlan{},
		&models.Subscription{},
		&models.Payment{},
		&models.ProvisionAttempt{},
	)
}
