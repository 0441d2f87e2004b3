package repository

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "learnhub.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, creatorID uint, lectures int) *models.Course {
	t.Helper()
	course := &models.Course{CreatorID: creatorID, Title: "Go in practice", Price: 25, IsPublished: true}
	require.NoError(t, db.Create(course).Error)
	for i := 0; i < lectures; i++ {
		lecture := models.Lecture{CourseID: course.ID, Title: fmt.Sprintf("Lecture %d", i+1), Position: i}
		require.NoError(t, db.Create(&lecture).Error)
		course.Lectures = append(course.Lectures, lecture)
	}
	return course
}

func seedPurchase(t *testing.T, db *gorm.DB, userID, courseID uint, sessionID string) *models.Purchase {
	t.Helper()
	purchase := &models.Purchase{
		UserID:    userID,
		CourseID:  courseID,
		Amount:    25,
		Currency:  "usd",
		Status:    models.PurchaseStatusPending,
		PaymentID: sessionID,
	}
	require.NoError(t, NewPurchaseRepository(db).Create(purchase))
	return purchase
}

func countEnrollments(t *testing.T, db *gorm.DB, userID, courseID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error)
	return n
}

func purchaseStatus(t *testing.T, db *gorm.DB, sessionID string) string {
	t.Helper()
	purchase, err := NewPurchaseRepository(db).GetByPaymentID(sessionID)
	require.NoError(t, err)
	return purchase.Status
}
