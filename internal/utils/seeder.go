package utils

import (
	"activitytracker/internal/models"
	"activitytracker/internal/repository"
	"activitytracker/internal/services"
	"context"
	"errors"
	"fmt"
	"log"
	mathrand "math/rand"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultNumUsers      = 100
	DefaultNumActivities = 5
	SeedPassword         = "TestPassword123!"
)

var (
	activityNames = []string{"Running", "Cycling", "Swimming", "Hiking", "Yoga", "Rowing", "Climbing", "Walking"}
	places        = []string{"Central Park", "Riverside", "City Gym", "Lakeshore Trail", "Community Pool", "Hill Path"}
	genders       = []string{"M", "F", "X"}
)

// Seeder creates demo data through the services so the usual validation applies.
type Seeder struct {
	users      services.UserService
	activities services.ActivityService
	rng        *mathrand.Rand
}

func NewSeeder(users services.UserService, activities services.ActivityService, seed int64) *Seeder {
	return &Seeder{
		users:      users,
		activities: activities,
		rng:        mathrand.New(mathrand.NewSource(seed)),
	}
}

// SeedResult summarises one Seed run.
type SeedResult struct {
	UsersCreated      int
	UsersSkipped      int
	ActivitiesCreated int
}

// Seed registers numUsers users named seeduserN@example.com (starting at
// startIndex) with up to activitiesPerUser activities each. Users whose email
// already exists are skipped.
func (s *Seeder) Seed(ctx context.Context, startIndex, numUsers, activitiesPerUser int) (SeedResult, error) {
	var result SeedResult
	if activitiesPerUser > len(activityNames) {
		activitiesPerUser = len(activityNames)
	}

	for i := startIndex; i < startIndex+numUsers; i++ {
		birthdate := time.Date(1960+s.rng.Intn(45), time.Month(1+s.rng.Intn(12)), 1+s.rng.Intn(28), 0, 0, 0, 0, time.UTC)
		user, err := s.users.Register(ctx, services.RegisterInput{
			FirstName: fmt.Sprintf("Seed%d", i),
			LastName:  "User",
			Email:     fmt.Sprintf("seeduser%d@example.com", i),
			Password:  SeedPassword,
			Gender:    genders[s.rng.Intn(len(genders))],
			Birthdate: birthdate.Format(models.BirthdateLayout),
		})
		if errors.Is(err, services.ErrEmailTaken) {
			result.UsersSkipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("seed user %d: %w", i, err)
		}
		result.UsersCreated++

		for _, idx := range s.rng.Perm(len(activityNames))[:activitiesPerUser] {
			date := time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour)
			_, err := s.activities.CreateActivity(ctx, services.CreateActivityInput{
				Name:      activityNames[idx],
				Place:     places[s.rng.Intn(len(places))],
				Latitude:  -90 + s.rng.Float64()*180,
				Longitude: -180 + s.rng.Float64()*360,
				Duration:  10 + s.rng.Intn(170),
				UserID:    user.ID,
				Date:      date.Format(models.ActivityDateLayout),
			})
			if err != nil {
				return result, fmt.Errorf("seed activity for user %d: %w", user.ID, err)
			}
			result.ActivitiesCreated++
		}

		if result.UsersCreated%100 == 0 {
			log.Printf("Seeded %d users so far", result.UsersCreated)
		}
	}

	log.Printf("✅ Seeded %d users (%d skipped) and %d activities",
		result.UsersCreated, result.UsersSkipped, result.ActivitiesCreated)
	return result, nil
}

// Stats returns the number of users and activities stored.
func Stats(ctx context.Context, users repository.UserRepository, activities repository.ActivityRepository) (int64, int64, error) {
	userCount, err := users.Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count users: %w", err)
	}
	activityCount, err := activities.Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count activities: %w", err)
	}
	return userCount, activityCount, nil
}

// ClearAllData deletes every activity and user in one transaction.
func ClearAllData(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Activity{}).Error; err != nil {
			return fmt.Errorf("clear activities: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		log.Println("✅ All data cleared successfully")
		return nil
	})
}
