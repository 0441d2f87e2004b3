package models

import (
	"time"

	"gorm.io/datatypes"
)

// PassingScore is the minimum percentage for a passed attempt.
const PassingScore = 60.0

type QuizQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"min=2,dive,required"`
	CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
}

type Quiz struct {
	ID        uint                              `json:"id" gorm:"primaryKey"`
	CourseID  uint                              `json:"course_id" gorm:"not null;uniqueIndex"`
	Title     string                            `json:"title" gorm:"not null"`
	Questions datatypes.JSONSlice[QuizQuestion] `json:"questions" gorm:"type:jsonb"`
	CreatedAt time.Time                         `json:"created_at"`
	UpdatedAt time.Time                         `json:"updated_at"`
}

type QuizAttempt struct {
	ID             uint                     `json:"id" gorm:"primaryKey"`
	UserID         uint                     `json:"user_id" gorm:"not null;index:ix_quiz_attempt_user_quiz"`
	QuizID         uint                     `json:"quiz_id" gorm:"not null;index:ix_quiz_attempt_user_quiz"`
	CourseID       uint                     `json:"course_id" gorm:"not null"`
	Answers        datatypes.JSONSlice[int] `json:"answers" gorm:"type:jsonb"`
	CorrectCount   int                      `json:"correct_count"`
	TotalQuestions int                      `json:"total_questions"`
	Score          float64                  `json:"score"`
	IsPassed       bool                     `json:"is_passed"`
	CreatedAt      time.Time                `json:"created_at" gorm:"index"`
}

type CreateQuizRequest struct {
	CourseID  uint           `json:"course_id" validate:"required"`
	Title     string         `json:"title" validate:"required,max=200"`
	Questions []QuizQuestion `json:"questions" validate:"required,min=1,dive"`
}

type UpdateQuizRequest struct {
	Title     string         `json:"title" validate:"required,max=200"`
	Questions []QuizQuestion `json:"questions" validate:"required,min=1,dive"`
}

type SubmitQuizRequest struct {
	Answers []int `json:"answers" validate:"required"`
}

// QuestionView is a question as served to clients. CorrectAnswer is only set
// for the course owner.
type QuestionView struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
}

type QuizView struct {
	ID        uint           `json:"id"`
	CourseID  uint           `json:"course_id"`
	Title     string         `json:"title"`
	Questions []QuestionView `json:"questions"`
}

// View renders the quiz, exposing answers only when withAnswers is set.
func (q *Quiz) View(withAnswers bool) QuizView {
	view := QuizView{
		ID:        q.ID,
		CourseID:  q.CourseID,
		Title:     q.Title,
		Questions: make([]QuestionView, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		qv := QuestionView{Question: question.Question, Options: question.Options}
		if withAnswers {
			answer := question.CorrectAnswer
			qv.CorrectAnswer = &answer
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}
