package models

import (
	"time"
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null;default:'student'"`
	PhotoURL  string    `json:"photo_url"`
	PhotoID   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

// UserProfile is what GET /users/me returns.
type UserProfile struct {
	User
	EnrolledCourses []Course `json:"enrolled_courses"`
}
