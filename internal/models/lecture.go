package models

import (
	"time"
)

type Lecture struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CourseID      uint      `json:"course_id" gorm:"not null;index"`
	Title         string    `json:"title" gorm:"not null"`
	VideoURL      string    `json:"video_url"`
	VideoKey      string    `json:"-"`
	IsPreviewFree bool      `json:"is_preview_free" gorm:"default:false"`
	Position      int       `json:"position" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateLectureRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

type UpdateLectureRequest struct {
	Title         string `form:"title" validate:"required,max=200"`
	IsPreviewFree bool   `form:"is_preview_free"`
}
