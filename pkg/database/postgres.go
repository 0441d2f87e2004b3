package database

import (
	"fmt"

	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/sefazor/learnhub-backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var defaultCategories = []string{
	"Web Development",
	"Data Science",
	"Mobile Development",
	"Design",
	"Business",
	"DevOps",
}

func NewDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database ready")
	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Course{},
		&models.Lecture{},
		&models.Enrollment{},
		&models.Purchase{},
		&models.CourseProgress{},
		&models.Quiz{},
		&models.QuizAttempt{},
		&models.Review{},
		&models.WebhookEvent{},
	)
	if err != nil {
		return err
	}

	// Seed categories once
	for _, name := range defaultCategories {
		var count int64
		db.Model(&models.Category{}).Where("name = ?", name).Count(&count)
		if count == 0 {
			if err := db.Create(&models.Category{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
