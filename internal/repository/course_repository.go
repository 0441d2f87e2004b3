package repository

import (
	"github.com/sefazor/learnhub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func orderedLectures(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

func publicCreator(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "photo_url", "role")
}

func (r *CourseRepository) Create(course *models.Course) error {
	return r.db.Omit(clause.Associations).Create(course).Error
}

// GetByID loads a course with its ordered lectures, creator and category.
func (r *CourseRepository) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.
		Preload("Lectures", orderedLectures).
		Preload("Creator", publicCreator).
		Preload("Category").
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) GetByIDs(ids []uint) ([]models.Course, error) {
	var courses []models.Course
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.db.Preload("Creator", publicCreator).Where("id IN ?", ids).Find(&courses).Error
	return courses, err
}

// Search lists published courses matching the query.
func (r *CourseRepository) Search(q models.CourseSearchQuery) ([]models.Course, error) {
	var courses []models.Course

	db := r.db.Model(&models.Course{}).
		Preload("Creator", publicCreator).
		Preload("Category").
		Where("is_published = ?", true)

	if q.Query != "" {
		like := "%" + q.Query + "%"
		db = db.Where("title ILIKE ? OR subtitle ILIKE ?", like, like)
	}
	if len(q.CategoryIDs) > 0 {
		db = db.Where("category_id IN ?", q.CategoryIDs)
	}

	switch q.SortByPrice {
	case "low":
		db = db.Order("price ASC")
	case "high":
		db = db.Order("price DESC")
	default:
		db = db.Order("created_at DESC")
	}

	err := db.Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) GetByCreator(creatorID uint) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.
		Preload("Category").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *models.Course) error {
	return r.db.Omit(clause.Associations).Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Lecture{}, &models.CourseProgress{}, &models.Review{}} {
			if err := tx.Where("course_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		var quizIDs []uint
		if err := tx.Model(&models.Quiz{}).Where("course_id = ?", id).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.QuizAttempt{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Quiz{}, quizIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Course{}, id).Error
	})
}
