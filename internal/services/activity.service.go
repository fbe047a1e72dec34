package services

import (
	"activitytracker/internal/models"
	"activitytracker/internal/observability"
	"activitytracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

type CreateActivityInput struct {
	Name      string
	Place     string
	Latitude  float64
	Longitude float64
	Duration  int
	UserID    uint
	Date      string // optional, YYYY-MM-DD HH:MM:SS; defaults to now
}

// UpdateActivityInput replaces every mutable field of an activity.
type UpdateActivityInput struct {
	Name      string
	Place     string
	Latitude  float64
	Longitude float64
	Duration  int
	Date      string // required, YYYY-MM-DD HH:MM:SS
}

type ActivityService interface {
	CreateActivity(ctx context.Context, in CreateActivityInput) (*models.Activity, error)
	ListActivities(ctx context.Context) ([]models.Activity, error)
	GetActivity(ctx context.Context, id uint) (*models.Activity, error)
	UpdateActivity(ctx context.Context, id uint, in UpdateActivityInput) (*models.Activity, error)
	ListUserActivities(ctx context.Context, userID uint) ([]models.Activity, error)
	GetUserActivity(ctx context.Context, userID, activityID uint) (*models.Activity, error)
	DeleteUserActivity(ctx context.Context, userID, activityID uint) (*models.Activity, error)
}

type activityService struct {
	tx         repository.Transactor
	users      repository.UserRepository
	activities repository.ActivityRepository
}

func NewActivityService(tx repository.Transactor, users repository.UserRepository, activities repository.ActivityRepository) ActivityService {
	return &activityService{tx: tx, users: users, activities: activities}
}

func parseActivityDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(models.ActivityDateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, Validation("Date must use the YYYY-MM-DD HH:MM:SS format", err)
	}
	return date, nil
}

func validateCoordinates(latitude, longitude float64) error {
	for _, v := range []float64{latitude, longitude} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Validation("Latitude and longitude must be finite numbers", nil)
		}
	}
	return nil
}

// CreateActivity rejects a duplicate (name, user) pair before it checks that
// the user exists.
func (s *activityService) CreateActivity(ctx context.Context, in CreateActivityInput) (*models.Activity, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, Validation("Activity name is required", nil)
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	activity := &models.Activity{
		Name:      name,
		Place:     in.Place,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Duration:  in.Duration,
		UserID:    in.UserID,
	}
	if in.Date != "" {
		date, err := parseActivityDate(in.Date)
		if err != nil {
			return nil, err
		}
		activity.Date = date
	}

	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		_, err := repos.Activities.FindByNameAndUserID(ctx, name, in.UserID)
		switch {
		case err == nil:
			return ErrActivityExists.with(fmt.Errorf("activity %q", name))
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		if _, err := repos.Users.FindByID(ctx, in.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		return repos.Activities.Create(ctx, activity)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrActivityExists.with(fmt.Errorf("activity %q", name))
		case errors.Is(err, repository.ErrForeignKeyMissing):
			return nil, ErrUserNotFound
		case KindOf(err) != KindInternal:
			return nil, err
		}
		return nil, fmt.Errorf("create activity: %w", err)
	}

	observability.RecordActivityCreated()
	return activity, nil
}

func (s *activityService) ListActivities(ctx context.Context) ([]models.Activity, error) {
	activities, err := s.activities.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func (s *activityService) GetActivity(ctx context.Context, id uint) (*models.Activity, error) {
	activity, err := s.activities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return activity, nil
}

// UpdateActivity overwrites all mutable fields. There is no partial update.
func (s *activityService) UpdateActivity(ctx context.Context, id uint, in UpdateActivityInput) (*models.Activity, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, Validation("Activity name is required", nil)
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	date, err := parseActivityDate(in.Date)
	if err != nil {
		return nil, err
	}

	var updated *models.Activity
	err = s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		activity, err := repos.Activities.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrActivityNotFound
			}
			return err
		}

		if name != activity.Name {
			other, err := repos.Activities.FindByNameAndUserID(ctx, name, activity.UserID)
			switch {
			case err == nil && other.ID != activity.ID:
				return ErrActivityExists.with(fmt.Errorf("activity %q", name))
			case err != nil && !errors.Is(err, repository.ErrNotFound):
				return err
			}
		}

		activity.Name = name
		activity.Place = in.Place
		activity.Latitude = in.Latitude
		activity.Longitude = in.Longitude
		activity.Duration = in.Duration
		activity.Date = date

		if err := repos.Activities.Update(ctx, activity); err != nil {
			return err
		}
		updated = activity
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrActivityExists.with(fmt.Errorf("activity %q", name))
		case KindOf(err) != KindInternal:
			return nil, err
		}
		return nil, fmt.Errorf("update activity: %w", err)
	}
	return updated, nil
}

// ListUserActivities returns the user's activities in insertion order.
func (s *activityService) ListUserActivities(ctx context.Context, userID uint) ([]models.Activity, error) {
	if err := s.requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	activities, err := s.activities.FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user activities: %w", err)
	}
	return activities, nil
}

// GetUserActivity reports ErrActivityNotFound when the activity exists but
// belongs to another user.
func (s *activityService) GetUserActivity(ctx context.Context, userID, activityID uint) (*models.Activity, error) {
	if err := s.requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	activity, err := s.activities.FindByUserIDAndID(ctx, userID, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("get user activity: %w", err)
	}
	return activity, nil
}

func (s *activityService) DeleteUserActivity(ctx context.Context, userID, activityID uint) (*models.Activity, error) {
	var deleted *models.Activity
	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		if err := s.requireUser(ctx, repos.Users, userID); err != nil {
			return err
		}
		activity, err := repos.Activities.FindByUserIDAndID(ctx, userID, activityID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrActivityNotFound
			}
			return err
		}
		if err := repos.Activities.Delete(ctx, activity.ID); err != nil {
			return err
		}
		deleted = activity
		return nil
	})
	if err != nil {
		if KindOf(err) != KindInternal {
			return nil, err
		}
		return nil, fmt.Errorf("delete user activity: %w", err)
	}
	return deleted, nil
}

func (s *activityService) requireUser(ctx context.Context, users repository.UserRepository, userID uint) error {
	if _, err := users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	return nil
}
