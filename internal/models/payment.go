package models

import (
	"time"
)

const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"
	PurchaseStatusRefunded  = "refunded"
)

type Purchase struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"not null;index"`
	CourseID        uint      `json:"course_id" gorm:"not null;index"`
	Course          *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Amount          float64   `json:"amount" gorm:"not null"`
	Currency        string    `json:"currency" gorm:"type:varchar(3);not null"`
	Status          string    `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentID       string    `json:"payment_id" gorm:"uniqueIndex;not null"`
	PaymentIntentID string    `json:"payment_intent_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// WebhookEvent is the ledger of Stripe deliveries, keyed by Stripe's event id.
type WebhookEvent struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	EventID         string     `json:"event_id" gorm:"uniqueIndex;not null"`
	Type            string     `json:"type" gorm:"not null"`
	Payload         []byte     `json:"-" gorm:"type:bytea"`
	SignatureValid  bool       `json:"signature_valid"`
	Attempts        int        `json:"attempts" gorm:"not null;default:0"`
	ProcessedAt     *time.Time `json:"processed_at"`
	ProcessingError string     `json:"processing_error" gorm:"type:text"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type CreateCheckoutSessionRequest struct {
	CourseID uint `json:"course_id" validate:"required"`
}

type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}
