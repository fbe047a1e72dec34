package database

import (
	"activitytracker/internal/models"
	"log"

	"gorm.io/gorm"
)

// MigrateDatabase creates the users and activities tables, the unique
// indexes and the activities.user_id foreign key.
func MigrateDatabase(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Activity{},
	)
	if err != nil {
		log.Printf("Error during migration: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
