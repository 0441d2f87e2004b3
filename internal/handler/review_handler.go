package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/service"
	"github.com/sefazor/learnhub-backend/pkg/utils"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
	validator     *utils.Validator
}

func NewReviewHandler(reviewService *service.ReviewService, validator *utils.Validator) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator,
	}
}

func (h *ReviewHandler) GetCourseReviews(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return fail(c, err)
	}

	reviews, err := h.reviewService.ListByCourse(courseID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(reviews, ""))
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return fail(c, err)
	}

	var req models.CreateReviewRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	review, err := h.reviewService.Create(currentUserID(c), courseID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(review, "Review added"))
}

func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := paramID(c, "reviewId")
	if err != nil {
		return fail(c, err)
	}

	if err := h.reviewService.Delete(currentUserID(c), reviewID); err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Review deleted"))
}
