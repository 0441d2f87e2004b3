package repository

import (
	"github.com/sefazor/learnhub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) IsEnrolled(userID, courseID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// Enroll is idempotent.
func (r *EnrollmentRepository) Enroll(userID, courseID uint) error {
	return enroll(r.db, userID, courseID)
}

func enroll(db *gorm.DB, userID, courseID uint) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Enrollment{UserID: userID, CourseID: courseID}).Error
}

// ListCourses returns the courses a user is enrolled in, most recent first.
func (r *EnrollmentRepository) ListCourses(userID uint) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.
		Preload("Creator", publicCreator).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *EnrollmentRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) ListByCourseIDs(courseIDs []uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if len(courseIDs) == 0 {
		return enrollments, nil
	}
	err := r.db.Where("course_id IN ?", courseIDs).Find(&enrollments).Error
	return enrollments, err
}
