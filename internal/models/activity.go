package models

import (
	"time"

	"gorm.io/gorm"
)

// ActivityDateLayout is the wire format of Activity.Date.
const ActivityDateLayout = "2006-01-02 15:04:05"

// Activity belongs to exactly one User. (name, user_id) is unique; the same
// name may be reused by different users.
type Activity struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;uniqueIndex:idx_activity_name_user"`
	Place     string    `gorm:"size:200"`
	Latitude  float64
	Longitude float64
	Duration  int
	Date      time.Time
	UserID    uint `gorm:"not null;index;uniqueIndex:idx_activity_name_user"`
	User      User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate stamps Date with the creation time when the caller left it unset.
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.Date.IsZero() {
		a.Date = time.Now()
	}
	a.Date = a.Date.Truncate(time.Second)
	return nil
}

type ActivityResponse struct {
	ID        uint    `json:"id" example:"1"`
	Name      string  `json:"name" example:"Morning run"`
	Place     string  `json:"place" example:"Central Park"`
	Latitude  float64 `json:"latitude" example:"40.785091"`
	Longitude float64 `json:"longitude" example:"-73.968285"`
	Duration  int     `json:"duration" example:"45"`
	Date      string  `json:"date" example:"2024-05-01 07:30:00"`
	UserID    uint    `json:"user_id" example:"1"`
}

func (a *Activity) ToResponse() ActivityResponse {
	return ActivityResponse{
		ID:        a.ID,
		Name:      a.Name,
		Place:     a.Place,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		Duration:  a.Duration,
		Date:      a.Date.Format(ActivityDateLayout),
		UserID:    a.UserID,
	}
}

func ToActivityResponses(activities []Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, activities[i].ToResponse())
	}
	return out
}
