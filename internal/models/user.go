package models

import "time"

// BirthdateLayout is the wire format of User.Birthdate.
const BirthdateLayout = "2006-01-02"

type User struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"size:50"`
	LastName  string    `gorm:"size:50"`
	Email     string    `gorm:"size:100;uniqueIndex;not null"`
	Password  string    `gorm:"size:200;not null"`
	Gender    string    `gorm:"size:2"`
	Birthdate time.Time `gorm:"type:date"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserResponse is the public view of a User. The password digest is never exposed.
type UserResponse struct {
	ID        uint   `json:"id" example:"1"`
	FirstName string `json:"firstName" example:"Jane"`
	LastName  string `json:"lastName" example:"Doe"`
	Email     string `json:"email" example:"jane@example.com"`
	Gender    string `json:"gender" example:"F"`
	Birthdate string `json:"birthdate" example:"1990-04-21"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Gender:    u.Gender,
		Birthdate: u.Birthdate.Format(BirthdateLayout),
	}
}

func ToUserResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out
}
