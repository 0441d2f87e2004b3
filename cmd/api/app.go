package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/sefazor/learnhub-backend/internal/service"
	"github.com/sefazor/learnhub-backend/pkg/cache"
	"github.com/sefazor/learnhub-backend/pkg/database"
	jwtPkg "github.com/sefazor/learnhub-backend/pkg/jwt"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is everything main needs to run and stop the service.
type App struct {
	Server     *fiber.App
	Reconciler *service.WebhookReconciler
}

func provideDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewDatabase(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideCache(cfg *config.Config, log *zap.Logger) (cache.Cache, func()) {
	c := cache.New(cfg, log)
	return c, func() {
		if rc, ok := c.(*cache.RedisCache); ok {
			rc.Close()
		}
	}
}

func provideTokenManager(cfg *config.Config) *jwtPkg.Manager {
	return jwtPkg.NewManager(cfg.JWTSecret, cfg.JWTTTL)
}

func provideDashboardService(
	courseRepo service.CourseRepository,
	purchaseRepo service.PurchaseRepository,
	enrollmentRepo service.EnrollmentRepository,
	progressRepo service.ProgressRepository,
	c cache.Cache,
	cfg *config.Config,
	log *zap.Logger,
) *service.DashboardService {
	return service.NewDashboardService(courseRepo, purchaseRepo, enrollmentRepo, progressRepo, c, cfg.DashboardCacheTTL, log)
}

func provideReconciler(
	webhookRepo service.WebhookEventRepository,
	purchaseRepo service.PurchaseRepository,
	processor service.EventProcessor,
	cfg *config.Config,
	log *zap.Logger,
) *service.WebhookReconciler {
	return service.NewWebhookReconciler(webhookRepo, purchaseRepo, processor, cfg.WebhookRetrySchedule, log)
}
