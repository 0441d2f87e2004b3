package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/service"
	"github.com/sefazor/learnhub-backend/pkg/utils"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	courseService  *service.CourseService
	validator      *utils.Validator
}

func NewPaymentHandler(paymentService *service.PaymentService, courseService *service.CourseService, validator *utils.Validator) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		courseService:  courseService,
		validator:      validator,
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req models.CreateCheckoutSessionRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	session, err := h.paymentService.CreateCheckoutSession(c.UserContext(), currentUserID(c), req.CourseID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(session, ""))
}

// HandleStripeWebhook needs the raw body for signature verification. Once the
// event is authenticated the answer is 200, whatever fulfillment does.
func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := append([]byte(nil), c.Body()...)

	if err := h.paymentService.HandleWebhook(c.UserContext(), payload, c.Get("Stripe-Signature")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(fiber.Map{"received": true})
}

func (h *PaymentHandler) GetCourseDetailWithStatus(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return fail(c, err)
	}

	detail, err := h.courseService.GetDetailWithStatus(currentUserID(c), courseID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(detail, ""))
}

func (h *PaymentHandler) GetPurchasedCourses(c *fiber.Ctx) error {
	courses, err := h.paymentService.GetPurchasedCourses(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(courses, ""))
}

func (h *PaymentHandler) GetPurchaseHistory(c *fiber.Ctx) error {
	purchases, err := h.paymentService.GetUserPurchaseHistory(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(purchases, ""))
}
