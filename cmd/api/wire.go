//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/sefazor/learnhub-backend/internal/handler"
	"github.com/sefazor/learnhub-backend/internal/middleware"
	"github.com/sefazor/learnhub-backend/internal/repository"
	"github.com/sefazor/learnhub-backend/internal/server"
	"github.com/sefazor/learnhub-backend/internal/service"
	"github.com/sefazor/learnhub-backend/pkg/captcha"
	"github.com/sefazor/learnhub-backend/pkg/email"
	"github.com/sefazor/learnhub-backend/pkg/payment"
	"github.com/sefazor/learnhub-backend/pkg/qrcode"
	"github.com/sefazor/learnhub-backend/pkg/storage"
	"github.com/sefazor/learnhub-backend/pkg/utils"
	"go.uber.org/zap"
)

var repositorySet = wire.NewSet(
	repository.NewUserRepository,
	wire.Bind(new(service.UserRepository), new(*repository.UserRepository)),
	repository.NewCategoryRepository,
	wire.Bind(new(service.CategoryRepository), new(*repository.CategoryRepository)),
	repository.NewCourseRepository,
	wire.Bind(new(service.CourseRepository), new(*repository.CourseRepository)),
	repository.NewLectureRepository,
	wire.Bind(new(service.LectureRepository), new(*repository.LectureRepository)),
	repository.NewEnrollmentRepository,
	wire.Bind(new(service.EnrollmentRepository), new(*repository.EnrollmentRepository)),
	repository.NewPurchaseRepository,
	wire.Bind(new(service.PurchaseRepository), new(*repository.PurchaseRepository)),
	repository.NewProgressRepository,
	wire.Bind(new(service.ProgressRepository), new(*repository.ProgressRepository)),
	repository.NewQuizRepository,
	wire.Bind(new(service.QuizRepository), new(*repository.QuizRepository)),
	repository.NewReviewRepository,
	wire.Bind(new(service.ReviewRepository), new(*repository.ReviewRepository)),
	repository.NewWebhookEventRepository,
	wire.Bind(new(service.WebhookEventRepository), new(*repository.WebhookEventRepository)),
)

var infraSet = wire.NewSet(
	provideDatabase,
	provideCache,
	provideTokenManager,
	storage.NewR2Storage,
	wire.Bind(new(storage.StorageService), new(*storage.R2Storage)),
	storage.NewCloudflareImages,
	wire.Bind(new(storage.ImageService), new(*storage.CloudflareImages)),
	email.NewEmailService,
	wire.Bind(new(service.Mailer), new(*email.EmailService)),
	payment.NewStripeService,
	wire.Bind(new(service.CheckoutProvider), new(*payment.StripeService)),
	qrcode.NewQRService,
	captcha.NewTurnstile,
	wire.Bind(new(handler.CaptchaVerifier), new(*captcha.Turnstile)),
	utils.NewValidator,
)

var serviceSet = wire.NewSet(
	service.NewAuthService,
	wire.Bind(new(middleware.TokenValidator), new(*service.AuthService)),
	service.NewUserService,
	service.NewCourseService,
	service.NewLectureService,
	service.NewProgressService,
	service.NewQuizService,
	service.NewReviewService,
	service.NewCategoryService,
	provideDashboardService,
	wire.Bind(new(service.DashboardInvalidator), new(*service.DashboardService)),
	service.NewPaymentService,
	wire.Bind(new(service.EventProcessor), new(*service.PaymentService)),
	provideReconciler,
)

var handlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewCourseHandler,
	handler.NewLectureHandler,
	handler.NewProgressHandler,
	handler.NewQuizHandler,
	handler.NewReviewHandler,
	handler.NewCategoryHandler,
	handler.NewPaymentHandler,
	handler.NewDashboardHandler,
	wire.Struct(new(server.Handlers), "*"),
	server.NewFiberApp,
)

func InitializeApp(cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		repositorySet,
		infraSet,
		serviceSet,
		handlerSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
