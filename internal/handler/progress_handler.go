package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/service"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (h *ProgressHandler) GetCourseProgress(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return fail(c, err)
	}

	progress, err := h.progressService.Get(currentUserID(c), courseID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(progress, ""))
}

func (h *ProgressHandler) ToggleLecture(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return fail(c, err)
	}
	lectureID, err := paramID(c, "lectureId")
	if err != nil {
		return fail(c, err)
	}

	progress, err := h.progressService.ToggleLecture(currentUserID(c), courseID, lectureID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(progress, "Lecture progress updated"))
}

func (h *ProgressHandler) MarkAsCompleted(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return fail(c, err)
	}

	progress, err := h.progressService.MarkComplete(currentUserID(c), courseID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(progress, "Course marked as completed"))
}

func (h *ProgressHandler) MarkAsIncomplete(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return fail(c, err)
	}

	progress, err := h.progressService.MarkIncomplete(currentUserID(c), courseID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(progress, "Course marked as incomplete"))
}
