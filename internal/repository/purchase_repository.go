package repository

import (
	"time"

	"github.com/sefazor/learnhub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(purchase *models.Purchase) error {
	return r.db.Omit(clause.Associations).Create(purchase).Error
}

func (r *PurchaseRepository) GetByPaymentID(paymentID string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.Where("payment_id = ?", paymentID).First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepository) GetUserPurchaseHistory(userID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *PurchaseRepository) ListByCourseIDs(courseIDs []uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if len(courseIDs) == 0 {
		return purchases, nil
	}
	err := r.db.Where("course_id IN ?", courseIDs).Find(&purchases).Error
	return purchases, err
}

// CompleteAndEnroll marks the purchase completed and enrolls its user in one
// transaction. The second result is false when the purchase was already
// completed, in which case only the enrollment is re-asserted. A refunded
// purchase is returned unchanged and grants no enrollment.
func (r *PurchaseRepository) CompleteAndEnroll(paymentID, paymentIntentID string) (*models.Purchase, bool, error) {
	var purchase models.Purchase
	completedNow := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_id = ?", paymentID).
			First(&purchase).Error; err != nil {
			return err
		}

		if purchase.Status == models.PurchaseStatusRefunded {
			return nil
		}
		if purchase.Status != models.PurchaseStatusCompleted {
			updates := map[string]interface{}{"status": models.PurchaseStatusCompleted}
			if paymentIntentID != "" {
				updates["payment_intent_id"] = paymentIntentID
			}
			if err := tx.Model(&purchase).Updates(updates).Error; err != nil {
				return err
			}
			purchase.Status = models.PurchaseStatusCompleted
			completedNow = true
		}

		return enroll(tx, purchase.UserID, purchase.CourseID)
	})
	if err != nil {
		return nil, false, err
	}
	return &purchase, completedNow, nil
}

// MarkFailed fails a purchase that is still pending. Completed or refunded
// purchases are left untouched.
func (r *PurchaseRepository) MarkFailed(paymentID string) (bool, error) {
	result := r.db.Model(&models.Purchase{}).
		Where("payment_id = ? AND status = ?", paymentID, models.PurchaseStatusPending).
		Update("status", models.PurchaseStatusFailed)
	return result.RowsAffected > 0, result.Error
}

// RefundByPaymentIntent marks the completed purchase refunded and removes the
// enrollment it granted.
func (r *PurchaseRepository) RefundByPaymentIntent(paymentIntentID string) (*models.Purchase, error) {
	var purchase models.Purchase

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_intent_id = ?", paymentIntentID).
			First(&purchase).Error; err != nil {
			return err
		}
		if purchase.Status == models.PurchaseStatusRefunded {
			return nil
		}

		if err := tx.Model(&purchase).Update("status", models.PurchaseStatusRefunded).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND course_id = ?", purchase.UserID, purchase.CourseID).
			Delete(&models.Enrollment{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// FailStalePending fails pending purchases created before cutoff.
func (r *PurchaseRepository) FailStalePending(cutoff time.Time) (int64, error) {
	result := r.db.Model(&models.Purchase{}).
		Where("status = ? AND created_at < ?", models.PurchaseStatusPending, cutoff).
		Update("status", models.PurchaseStatusFailed)
	return result.RowsAffected, result.Error
}
