package models

import (
	"time"

	"gorm.io/datatypes"
)

type CourseProgress struct {
	ID                uint                     `json:"id" gorm:"primaryKey"`
	UserID            uint                     `json:"user_id" gorm:"not null;uniqueIndex:ux_course_progress_user_course"`
	CourseID          uint                     `json:"course_id" gorm:"not null;uniqueIndex:ux_course_progress_user_course;index"`
	CompletedLectures datatypes.JSONSlice[uint] `json:"completed_lectures" gorm:"type:jsonb"`
	IsCompleted       bool                     `json:"is_completed" gorm:"default:false"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

type CourseProgressResponse struct {
	Course    *Course `json:"course"`
	Progress  []uint  `json:"progress"`
	Completed bool    `json:"completed"`
}
