package handler

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/service"
	"github.com/sefazor/learnhub-backend/pkg/utils"
)

var (
	errInvalidBody      = errors.New("invalid request body")
	errInvalidID        = errors.New("invalid id")
	errUnsupportedImage = errors.New("unsupported image type")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

// decode parses the request body into req and validates it.
func decode(c *fiber.Ctx, v *utils.Validator, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errInvalidBody
	}
	if err := v.Struct(req); err != nil {
		return &validationError{msg: utils.FormatErrors(err)}
	}
	return nil
}

func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// formFile returns the first file of a multipart field, or nil.
func formFile(c *fiber.Ctx, field string) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	if files := form.File[field]; len(files) > 0 {
		return files[0]
	}
	return nil
}

// openUpload opens a multipart file for a service call. The caller closes the returned file.
func openUpload(fh *multipart.FileHeader) (*service.Upload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, f, nil
}

func statusFor(err error) int {
	var verr *validationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, errInvalidBody),
		errors.Is(err, errInvalidID),
		errors.Is(err, errUnsupportedImage),
		errors.Is(err, errCaptchaFailed),
		errors.Is(err, service.ErrIncorrectPassword),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrFreeCourse),
		errors.Is(err, service.ErrCourseNotPublished),
		errors.Is(err, service.ErrNoLectures),
		errors.Is(err, service.ErrCourseHasEnrollments),
		errors.Is(err, service.ErrInvalidQuestion),
		errors.Is(err, service.ErrEmptyQuiz),
		errors.Is(err, service.ErrAnswerCountMismatch),
		errors.Is(err, service.ErrInvalidSignature),
		errors.Is(err, service.ErrInvalidWebhookPayload):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotEnrolled):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrLectureNotFound),
		errors.Is(err, service.ErrLectureNotInCourse),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrPurchaseNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrReviewExists),
		errors.Is(err, service.ErrQuizExists),
		errors.Is(err, service.ErrCategoryExists):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(models.ErrorResponse(err.Error()))
}
