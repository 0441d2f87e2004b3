package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/service"
	"github.com/sefazor/learnhub-backend/pkg/utils"
)

var errUnsupportedVideo = &validationError{msg: "video must be a video file"}

type LectureHandler struct {
	lectureService *service.LectureService
	validator      *utils.Validator
}

func NewLectureHandler(lectureService *service.LectureService, validator *utils.Validator) *LectureHandler {
	return &LectureHandler{
		lectureService: lectureService,
		validator:      validator,
	}
}

func (h *LectureHandler) CreateLecture(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req models.CreateLectureRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	lecture, err := h.lectureService.Create(currentUserID(c), courseID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(lecture, "Lecture created successfully"))
}

func (h *LectureHandler) GetCourseLectures(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	lectures, err := h.lectureService.List(currentUserID(c), courseID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(lectures, ""))
}

func (h *LectureHandler) GetLecture(c *fiber.Ctx) error {
	lectureID, err := paramID(c, "lectureId")
	if err != nil {
		return fail(c, err)
	}

	lecture, err := h.lectureService.Get(currentUserID(c), lectureID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(lecture, ""))
}

// EditLecture takes a multipart form with title, is_preview_free and an optional video.
func (h *LectureHandler) EditLecture(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	lectureID, err := paramID(c, "lectureId")
	if err != nil {
		return fail(c, err)
	}

	var req models.UpdateLectureRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	var video *service.Upload
	if fh := formFile(c, "video"); fh != nil {
		if !strings.HasPrefix(fh.Header.Get("Content-Type"), "video/") {
			return fail(c, errUnsupportedVideo)
		}
		upload, f, err := openUpload(fh)
		if err != nil {
			return fail(c, err)
		}
		defer f.Close()
		video = upload
	}

	lecture, err := h.lectureService.Update(c.UserContext(), currentUserID(c), courseID, lectureID, req, video)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(lecture, "Lecture updated successfully"))
}

func (h *LectureHandler) RemoveLecture(c *fiber.Ctx) error {
	lectureID, err := paramID(c, "lectureId")
	if err != nil {
		return fail(c, err)
	}

	if err := h.lectureService.Delete(c.UserContext(), currentUserID(c), lectureID); err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Lecture removed successfully"))
}
