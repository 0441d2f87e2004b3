package repository

import (
	"github.com/sefazor/learnhub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Get(userID, courseID uint) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetOrCreate returns the user's progress for a course, inserting an empty
// record first if none exists. Concurrent first calls share one row.
func (r *ProgressRepository) GetOrCreate(userID, courseID uint) (*models.CourseProgress, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&models.CourseProgress{
		UserID:            userID,
		CourseID:          courseID,
		CompletedLectures: []uint{},
	}).Error
	if err != nil {
		return nil, err
	}
	return r.Get(userID, courseID)
}

func (r *ProgressRepository) Save(progress *models.CourseProgress) error {
	return r.db.Save(progress).Error
}

func (r *ProgressRepository) ListByCourseIDs(courseIDs []uint) ([]models.CourseProgress, error) {
	var progresses []models.CourseProgress
	if len(courseIDs) == 0 {
		return progresses, nil
	}
	err := r.db.Where("course_id IN ?", courseIDs).Find(&progresses).Error
	return progresses, err
}
