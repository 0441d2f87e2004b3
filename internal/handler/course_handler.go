package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/service"
	"github.com/sefazor/learnhub-backend/pkg/qrcode"
	"github.com/sefazor/learnhub-backend/pkg/utils"
)

type CourseHandler struct {
	courseService *service.CourseService
	validator     *utils.Validator
}

func NewCourseHandler(courseService *service.CourseService, validator *utils.Validator) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		validator:     validator,
	}
}

func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req models.CreateCourseRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	course, err := h.courseService.Create(currentUserID(c), req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(course, "Course created successfully"))
}

// SearchCourses lists published courses. Query: q, categories=1,2, sort=low|high.
func (h *CourseHandler) SearchCourses(c *fiber.Ctx) error {
	query := models.CourseSearchQuery{
		Query:       strings.TrimSpace(c.Query("q")),
		CategoryIDs: utils.ParseUintList(c.Query("categories")),
	}
	switch sort := c.Query("sort"); sort {
	case "low", "high":
		query.SortByPrice = sort
	}

	courses, err := h.courseService.Search(query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(courses, ""))
}

func (h *CourseHandler) GetCreatorCourses(c *fiber.Ctx) error {
	courses, err := h.courseService.GetByCreator(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(courses, ""))
}

func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	course, err := h.courseService.GetByID(courseID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(course, ""))
}

// UpdateCourse takes a multipart form; the thumbnail arrives as courseThumbnail.
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req models.UpdateCourseRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	var thumbnail *service.Upload
	if fh := formFile(c, "courseThumbnail"); fh != nil {
		if err := h.validator.Var(fh.Header.Get("Content-Type"), "supported_image"); err != nil {
			return fail(c, errUnsupportedImage)
		}
		upload, f, err := openUpload(fh)
		if err != nil {
			return fail(c, err)
		}
		defer f.Close()
		thumbnail = upload
	}

	course, err := h.courseService.Update(c.UserContext(), currentUserID(c), courseID, req, thumbnail)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(course, "Course updated successfully"))
}

func (h *CourseHandler) PublishCourse(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	publish := c.QueryBool("publish", true)
	course, err := h.courseService.SetPublished(currentUserID(c), courseID, publish)
	if err != nil {
		return fail(c, err)
	}

	msg := "Course published"
	if !publish {
		msg = "Course unpublished"
	}
	return c.JSON(models.SuccessResponse(course, msg))
}

func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.courseService.Delete(c.UserContext(), currentUserID(c), courseID); err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Course deleted successfully"))
}

// GetCourseQRCode renders a PNG linking to the course page.
func (h *CourseHandler) GetCourseQRCode(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	png, err := h.courseService.QRCode(courseID, c.QueryInt("size", qrcode.DefaultSize))
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(png)
}
