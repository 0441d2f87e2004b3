package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/service"
	"github.com/sefazor/learnhub-backend/pkg/utils"
)

type QuizHandler struct {
	quizService *service.QuizService
	validator   *utils.Validator
}

func NewQuizHandler(quizService *service.QuizService, validator *utils.Validator) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		validator:   validator,
	}
}

func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req models.CreateQuizRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	quiz, err := h.quizService.Create(currentUserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(quiz, "Quiz created successfully"))
}

func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	quizID, err := paramID(c, "quizId")
	if err != nil {
		return fail(c, err)
	}

	var req models.UpdateQuizRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	quiz, err := h.quizService.Update(currentUserID(c), quizID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(quiz, "Quiz updated successfully"))
}

func (h *QuizHandler) GetCourseQuiz(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return fail(c, err)
	}

	quiz, err := h.quizService.GetForCourse(currentUserID(c), courseID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(quiz, ""))
}

func (h *QuizHandler) SubmitAttempt(c *fiber.Ctx) error {
	quizID, err := paramID(c, "quizId")
	if err != nil {
		return fail(c, err)
	}

	var req models.SubmitQuizRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	attempt, err := h.quizService.Submit(currentUserID(c), quizID, req.Answers)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(attempt, "Quiz submitted"))
}

func (h *QuizHandler) GetLatestAttempt(c *fiber.Ctx) error {
	quizID, err := paramID(c, "quizId")
	if err != nil {
		return fail(c, err)
	}

	attempt, err := h.quizService.LatestAttempt(currentUserID(c), quizID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(attempt, ""))
}

func (h *QuizHandler) GetAttempts(c *fiber.Ctx) error {
	quizID, err := paramID(c, "quizId")
	if err != nil {
		return fail(c, err)
	}

	attempts, err := h.quizService.ListAttempts(currentUserID(c), quizID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(attempts, ""))
}
