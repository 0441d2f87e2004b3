package service

import (
	"errors"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/utils"
	"gorm.io/gorm"
)

type QuizService struct {
	courseRepo     CourseRepository
	enrollmentRepo EnrollmentRepository
	quizRepo       QuizRepository
}

func NewQuizService(courseRepo CourseRepository, enrollmentRepo EnrollmentRepository, quizRepo QuizRepository) *QuizService {
	return &QuizService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		quizRepo:       quizRepo,
	}
}

func (s *QuizService) Create(userID uint, req models.CreateQuizRequest) (*models.Quiz, error) {
	if _, err := ownedCourse(s.courseRepo, userID, req.CourseID); err != nil {
		return nil, err
	}
	if err := validateQuestions(req.Questions); err != nil {
		return nil, err
	}

	_, err := s.quizRepo.GetByCourse(req.CourseID)
	if err == nil {
		return nil, ErrQuizExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	quiz := &models.Quiz{
		CourseID:  req.CourseID,
		Title:     req.Title,
		Questions: req.Questions,
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Update(userID, quizID uint, req models.UpdateQuizRequest) (*models.Quiz, error) {
	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if _, err := ownedCourse(s.courseRepo, userID, quiz.CourseID); err != nil {
		return nil, err
	}
	if err := validateQuestions(req.Questions); err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Questions = req.Questions
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// GetForCourse returns the course quiz, with answers only for its owner.
func (s *QuizService) GetForCourse(userID, courseID uint) (*models.QuizView, error) {
	course, err := loadCourse(s.courseRepo, courseID)
	if err != nil {
		return nil, err
	}
	if err := requireAccess(s.enrollmentRepo, course, userID); err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByCourse(courseID)
	if err != nil {
		return nil, notFound(err, ErrQuizNotFound)
	}

	view := quiz.View(course.CreatorID == userID)
	return &view, nil
}

// Submit grades an attempt and stores it.
func (s *QuizService) Submit(userID, quizID uint, answers []int) (*models.QuizAttempt, error) {
	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(userID, quiz.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	correct, score, err := ScoreQuiz(quiz.Questions, answers)
	if err != nil {
		return nil, err
	}

	attempt := &models.QuizAttempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		CourseID:       quiz.CourseID,
		Answers:        answers,
		CorrectCount:   correct,
		TotalQuestions: len(quiz.Questions),
		Score:          score,
		IsPassed:       score >= models.PassingScore,
	}
	if err := s.quizRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *QuizService) LatestAttempt(userID, quizID uint) (*models.QuizAttempt, error) {
	if _, err := s.loadQuiz(quizID); err != nil {
		return nil, err
	}
	attempt, err := s.quizRepo.LatestAttempt(userID, quizID)
	if err != nil {
		return nil, notFound(err, ErrAttemptNotFound)
	}
	return attempt, nil
}

func (s *QuizService) ListAttempts(userID, quizID uint) ([]models.QuizAttempt, error) {
	if _, err := s.loadQuiz(quizID); err != nil {
		return nil, err
	}
	return s.quizRepo.ListAttempts(userID, quizID)
}

func (s *QuizService) loadQuiz(id uint) (*models.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, ErrQuizNotFound)
	}
	return quiz, nil
}

// ScoreQuiz counts correct answers and returns the percentage score rounded
// to two decimals. answers must line up one-to-one with questions.
func ScoreQuiz(questions []models.QuizQuestion, answers []int) (int, float64, error) {
	if len(questions) == 0 {
		return 0, 0, ErrEmptyQuiz
	}
	if len(answers) != len(questions) {
		return 0, 0, ErrAnswerCountMismatch
	}

	correct := 0
	for i, q := range questions {
		if answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return correct, utils.Round2(100 * float64(correct) / float64(len(questions))), nil
}

func validateQuestions(questions []models.QuizQuestion) error {
	if len(questions) == 0 {
		return ErrEmptyQuiz
	}
	for _, q := range questions {
		if len(q.Options) < 2 || q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return ErrInvalidQuestion
		}
	}
	return nil
}
