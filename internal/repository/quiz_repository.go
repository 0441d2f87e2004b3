package repository

import (
	"github.com/sefazor/learnhub-backend/internal/models"
	"gorm.io/gorm"
)

type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(quiz *models.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *QuizRepository) GetByID(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) GetByCourse(courseID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.Where("course_id = ?", courseID).First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Update(quiz *models.Quiz) error {
	return r.db.Save(quiz).Error
}

func (r *QuizRepository) CreateAttempt(attempt *models.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *QuizRepository) LatestAttempt(userID, quizID uint) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.db.
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC, id DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *QuizRepository) ListAttempts(userID, quizID uint) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := r.db.
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC, id DESC").
		Find(&attempts).Error
	return attempts, err
}
