package models

import (
	"time"
)

const (
	LevelBeginner = "beginner"
	LevelMedium   = "medium"
	LevelAdvance  = "advance"
)

type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

type Course struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatorID    uint      `json:"creator_id" gorm:"not null;index"`
	Creator      *User     `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	CategoryID   *uint     `json:"category_id" gorm:"index"`
	Category     *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Title        string    `json:"title" gorm:"not null"`
	Subtitle     string    `json:"subtitle"`
	Description  string    `json:"description" gorm:"type:text"`
	Level        string    `json:"level" gorm:"type:varchar(20)"`
	Price        float64   `json:"price" gorm:"not null;default:0"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ThumbnailID  string    `json:"-"`
	IsPublished  bool      `json:"is_published" gorm:"default:false;index"`
	Lectures     []Lecture `json:"lectures,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasLecture reports whether lectureID is one of the course's lectures.
func (c *Course) HasLecture(lectureID uint) bool {
	for _, l := range c.Lectures {
		if l.ID == lectureID {
			return true
		}
	}
	return false
}

// Enrollment is the single source for both a user's enrolled courses and a
// course's enrolled students.
type Enrollment struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCourseRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	CategoryID *uint  `json:"category_id"`
}

// UpdateCourseRequest is parsed from a multipart form, the thumbnail arrives
// as the courseThumbnail file part.
type UpdateCourseRequest struct {
	Title       string  `form:"title" validate:"required,max=200"`
	Subtitle    string  `form:"subtitle" validate:"max=300"`
	Description string  `form:"description"`
	CategoryID  *uint   `form:"category_id"`
	Level       string  `form:"level" validate:"omitempty,course_level"`
	Price       float64 `form:"price" validate:"gte=0"`
}

type CourseSearchQuery struct {
	Query       string
	CategoryIDs []uint
	SortByPrice string // "low", "high" or empty
}

type CourseWithStatus struct {
	Course    *Course `json:"course"`
	Purchased bool    `json:"purchased"`
}
