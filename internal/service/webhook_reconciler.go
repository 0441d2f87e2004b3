package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

const (
	MaxWebhookAttempts  = 5
	PendingPurchaseTTL  = 48 * time.Hour
	reconcileBatchSize  = 50
	reconcileRunTimeout = 2 * time.Minute
)

// EventProcessor applies a Stripe event. *PaymentService implements it.
type EventProcessor interface {
	ProcessEvent(ctx context.Context, event stripe.Event) error
}

// WebhookReconciler retries webhook events whose processing failed and
// expires checkouts that never completed.
type WebhookReconciler struct {
	webhookRepo  WebhookEventRepository
	purchaseRepo PurchaseRepository
	processor    EventProcessor
	schedule     string
	cron         *cron.Cron
	now          func() time.Time
	log          *zap.Logger
}

func NewWebhookReconciler(webhookRepo WebhookEventRepository, purchaseRepo PurchaseRepository, processor EventProcessor, schedule string, log *zap.Logger) *WebhookReconciler {
	return &WebhookReconciler{
		webhookRepo:  webhookRepo,
		purchaseRepo: purchaseRepo,
		processor:    processor,
		schedule:     schedule,
		cron:         cron.New(),
		now:          time.Now,
		log:          log.Named("reconciler"),
	}
}

func (r *WebhookReconciler) Start() error {
	_, err := r.cron.AddFunc(r.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileRunTimeout)
		defer cancel()
		r.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	r.log.Info("webhook reconciler started", zap.String("schedule", r.schedule))
	return nil
}

// Stop waits for a running pass to finish.
func (r *WebhookReconciler) Stop() {
	<-r.cron.Stop().Done()
	r.log.Info("webhook reconciler stopped")
}

// RunOnce performs one reconciliation pass.
func (r *WebhookReconciler) RunOnce(ctx context.Context) {
	events, err := r.webhookRepo.ListRetryable(MaxWebhookAttempts, reconcileBatchSize)
	if err != nil {
		r.log.Error("failed to list retryable webhook events", zap.Error(err))
	}

	for _, stored := range events {
		if ctx.Err() != nil {
			return
		}

		var event stripe.Event
		errMsg := ""
		if err := json.Unmarshal(stored.Payload, &event); err != nil {
			errMsg = err.Error()
		} else if err := r.processor.ProcessEvent(ctx, event); err != nil {
			errMsg = err.Error()
		}

		if err := r.webhookRepo.MarkProcessed(stored.ID, errMsg); err != nil {
			r.log.Error("failed to update webhook event", zap.String("event_id", stored.EventID), zap.Error(err))
			continue
		}
		if errMsg != "" {
			r.log.Warn("webhook retry failed",
				zap.String("event_id", stored.EventID),
				zap.Int("attempt", stored.Attempts+1),
				zap.String("error", errMsg),
			)
		} else {
			r.log.Info("webhook retry succeeded", zap.String("event_id", stored.EventID))
		}
	}

	expired, err := r.purchaseRepo.FailStalePending(r.now().Add(-PendingPurchaseTTL))
	if err != nil {
		r.log.Error("failed to expire stale purchases", zap.Error(err))
		return
	}
	if expired > 0 {
		r.log.Info("expired stale pending purchases", zap.Int64("count", expired))
	}
}
