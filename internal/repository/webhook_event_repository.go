package repository

import (
	"time"

	"github.com/sefazor/learnhub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WebhookEventRepository struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// CreateIfNotExists records a delivery keyed by its Stripe event id and
// returns the stored row, reporting whether this call inserted it.
func (r *WebhookEventRepository) CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.WebhookEvent
	if err := r.db.Where("event_id = ?", event.EventID).First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

// MarkProcessed records the outcome of one processing attempt. An empty
// processingError marks the event done.
func (r *WebhookEventRepository) MarkProcessed(id uint, processingError string) error {
	updates := map[string]interface{}{
		"attempts":         gorm.Expr("attempts + 1"),
		"processing_error": processingError,
	}
	if processingError == "" {
		now := time.Now()
		updates["processed_at"] = &now
	}
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}

// ListRetryable returns unprocessed events that failed fewer than maxAttempts times.
func (r *WebhookEventRepository) ListRetryable(maxAttempts, limit int) ([]models.WebhookEvent, error) {
	var events []models.WebhookEvent
	err := r.db.
		Where("processed_at IS NULL AND processing_error <> '' AND attempts < ?", maxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
