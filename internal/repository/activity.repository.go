package repository

import (
	"activitytracker/internal/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	FindAll(ctx context.Context) ([]models.Activity, error)
	FindByID(ctx context.Context, id uint) (*models.Activity, error)
	FindAllByUserID(ctx context.Context, userID uint) ([]models.Activity, error)
	FindByUserIDAndID(ctx context.Context, userID, id uint) (*models.Activity, error)
	FindByNameAndUserID(ctx context.Context, name string, userID uint) (*models.Activity, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(activity).Error)
}

func (r *activityRepository) FindAll(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).Order("id").Find(&activities).Error
	return activities, translate(err)
}

func (r *activityRepository) FindByID(ctx context.Context, id uint) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		return nil, translate(err)
	}
	return &activity, nil
}

// FindAllByUserID returns the user's activities in insertion order.
func (r *activityRepository) FindAllByUserID(ctx context.Context, userID uint) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&activities).Error
	return activities, translate(err)
}

func (r *activityRepository) FindByUserIDAndID(ctx context.Context, userID, id uint) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&activity).Error
	if err != nil {
		return nil, translate(err)
	}
	return &activity, nil
}

func (r *activityRepository) FindByNameAndUserID(ctx context.Context, name string, userID uint) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.WithContext(ctx).Where("name = ? AND user_id = ?", name, userID).First(&activity).Error
	if err != nil {
		return nil, translate(err)
	}
	return &activity, nil
}

// Update overwrites every column, zero values included.
func (r *activityRepository) Update(ctx context.Context, activity *models.Activity) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(activity).Error)
}

func (r *activityRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Activity{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *activityRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Activity{})
	return result.RowsAffected, translate(result.Error)
}

func (r *activityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Activity{}).Count(&count).Error
	return count, translate(err)
}
