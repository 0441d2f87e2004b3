package server

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/redis"
	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/sefazor/learnhub-backend/internal/handler"
	"github.com/sefazor/learnhub-backend/internal/middleware"
	"github.com/sefazor/learnhub-backend/internal/models"
	"go.uber.org/zap"
)

const (
	webhookPath = "/api/v1/purchase/webhook"
	bodyLimit   = 512 << 20 // lecture videos
)

type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Course    *handler.CourseHandler
	Lecture   *handler.LectureHandler
	Progress  *handler.ProgressHandler
	Quiz      *handler.QuizHandler
	Review    *handler.ReviewHandler
	Category  *handler.CategoryHandler
	Payment   *handler.PaymentHandler
	Dashboard *handler.DashboardHandler
}

func NewFiberApp(cfg *config.Config, log *zap.Logger, tokens middleware.TokenValidator, h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "LearnHub API",
		BodyLimit: bodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				log.Error("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(models.ErrorResponse(err.Error()))
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE",
		AllowCredentials: true,
	}))
	app.Use(newLimiter(cfg, log))

	RegisterRoutes(app, tokens, h)
	return app
}

// newLimiter keeps counters in Redis when configured so they are shared
// between instances. Stripe webhook deliveries are never limited.
func newLimiter(cfg *config.Config, log *zap.Logger) fiber.Handler {
	limiterCfg := limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), webhookPath)
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse("Too many requests, slow down"))
		},
	}

	if cfg.Redis.Enabled() {
		limiterCfg.Storage = redis.New(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			Database: 1, // cache uses DB 0
		})
		log.Info("rate limiter using redis storage")
	}

	return limiter.New(limiterCfg)
}

func RegisterRoutes(app *fiber.App, tokens middleware.TokenValidator, h *Handlers) {
	auth := middleware.AuthMiddleware(tokens)
	instructor := middleware.RequireInstructor()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(models.SuccessResponse(nil, "ok"))
	})

	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("/register", h.Auth.Register)
	users.Post("/login", h.Auth.Login)
	users.Post("/logout", h.Auth.Logout)
	users.Post("/forgot-password", h.Auth.ForgotPassword)
	users.Post("/reset-password", h.Auth.ResetPassword)
	users.Get("/me", auth, h.User.GetMyProfile)
	users.Put("/update-profile", auth, h.User.UpdateProfile)
	users.Post("/change-password", auth, h.Auth.ChangePassword)

	courses := api.Group("/courses")
	courses.Get("/", h.Course.SearchCourses)
	courses.Post("/", auth, instructor, h.Course.CreateCourse)
	courses.Get("/creator", auth, instructor, h.Course.GetCreatorCourses)
	courses.Get("/:id", h.Course.GetCourse)
	courses.Get("/:id/qrcode", h.Course.GetCourseQRCode)
	courses.Put("/:id", auth, instructor, h.Course.UpdateCourse)
	courses.Patch("/:id/publish", auth, instructor, h.Course.PublishCourse)
	courses.Delete("/:id", auth, instructor, h.Course.DeleteCourse)
	courses.Post("/:id/lectures", auth, instructor, h.Lecture.CreateLecture)
	courses.Get("/:id/lectures", auth, h.Lecture.GetCourseLectures)
	courses.Put("/:id/lectures/:lectureId", auth, instructor, h.Lecture.EditLecture)

	lectures := api.Group("/lectures", auth)
	lectures.Get("/:lectureId", h.Lecture.GetLecture)
	lectures.Delete("/:lectureId", instructor, h.Lecture.RemoveLecture)

	progress := api.Group("/progress", auth)
	progress.Get("/:courseId", h.Progress.GetCourseProgress)
	progress.Post("/:courseId/lectures/:lectureId/toggle", h.Progress.ToggleLecture)
	progress.Post("/:courseId/complete", h.Progress.MarkAsCompleted)
	progress.Post("/:courseId/incomplete", h.Progress.MarkAsIncomplete)

	quiz := api.Group("/quiz", auth)
	quiz.Post("/", instructor, h.Quiz.CreateQuiz)
	quiz.Put("/:quizId", instructor, h.Quiz.UpdateQuiz)
	quiz.Get("/course/:courseId", h.Quiz.GetCourseQuiz)
	quiz.Post("/:quizId/attempt", h.Quiz.SubmitAttempt)
	quiz.Get("/:quizId/attempts/latest", h.Quiz.GetLatestAttempt)
	quiz.Get("/:quizId/attempts", h.Quiz.GetAttempts)

	review := api.Group("/review")
	review.Get("/:courseId", h.Review.GetCourseReviews)
	review.Post("/:courseId", auth, h.Review.CreateReview)
	review.Delete("/:reviewId", auth, h.Review.DeleteReview)

	categories := api.Group("/categories")
	categories.Get("/", h.Category.GetCategories)
	categories.Post("/", auth, instructor, h.Category.CreateCategory)
	categories.Delete("/:id", auth, instructor, h.Category.DeleteCategory)

	purchase := api.Group("/purchase")
	purchase.Post("/webhook", h.Payment.HandleStripeWebhook)
	purchase.Post("/checkout", auth, h.Payment.CreateCheckoutSession)
	purchase.Get("/course/:courseId/detail-with-status", auth, h.Payment.GetCourseDetailWithStatus)
	purchase.Get("/history", auth, h.Payment.GetPurchaseHistory)
	purchase.Get("/", auth, h.Payment.GetPurchasedCourses)

	api.Get("/dashboard", auth, instructor, h.Dashboard.GetDashboard)
}
