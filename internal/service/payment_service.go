package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/email"
	"github.com/sefazor/learnhub-backend/pkg/payment"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	EventCheckoutCompleted          = "checkout.session.completed"
	EventCheckoutAsyncPaymentOK     = "checkout.session.async_payment_succeeded"
	EventCheckoutExpired            = "checkout.session.expired"
	EventCheckoutAsyncPaymentFailed = "checkout.session.async_payment_failed"
	EventChargeRefunded             = "charge.refunded"
)

// DashboardInvalidator drops cached instructor stats after sales change.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, instructorID uint)
}

type PaymentService struct {
	provider       CheckoutProvider
	userRepo       UserRepository
	courseRepo     CourseRepository
	enrollmentRepo EnrollmentRepository
	purchaseRepo   PurchaseRepository
	webhookRepo    WebhookEventRepository
	dashboard      DashboardInvalidator
	mailer         Mailer
	currency       string
	frontendURL    string
	log            *zap.Logger
}

func NewPaymentService(
	cfg *config.Config,
	provider CheckoutProvider,
	userRepo UserRepository,
	courseRepo CourseRepository,
	enrollmentRepo EnrollmentRepository,
	purchaseRepo PurchaseRepository,
	webhookRepo WebhookEventRepository,
	dashboard DashboardInvalidator,
	mailer Mailer,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		provider:       provider,
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		purchaseRepo:   purchaseRepo,
		webhookRepo:    webhookRepo,
		dashboard:      dashboard,
		mailer:         mailer,
		currency:       cfg.Stripe.Currency,
		frontendURL:    cfg.FrontendURL,
		log:            log.Named("payment"),
	}
}

// CreateCheckoutSession opens a Stripe Checkout session for one course and
// records a pending purchase keyed by the session id.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, userID, courseID uint) (*models.CheckoutSession, error) {
	course, err := loadCourse(s.courseRepo, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, ErrCourseNotPublished
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}
	if payment.ToMinorUnits(course.Price, s.currency) <= 0 {
		return nil, ErrFreeCourse
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutParams{
		UserID:        userID,
		CourseID:      courseID,
		Title:         course.Title,
		ImageURL:      course.ThumbnailURL,
		CustomerEmail: user.Email,
		Amount:        course.Price,
		Currency:      s.currency,
		SuccessURL:    fmt.Sprintf("%s/course-progress/%d", s.frontendURL, courseID),
		CancelURL:     fmt.Sprintf("%s/course-detail/%d", s.frontendURL, courseID),
	})
	if err != nil {
		s.log.Error("checkout session creation failed", zap.Uint("course_id", courseID), zap.Uint("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	purchase := &models.Purchase{
		UserID:    userID,
		CourseID:  courseID,
		Amount:    course.Price,
		Currency:  s.currency,
		Status:    models.PurchaseStatusPending,
		PaymentID: session.SessionID,
	}
	if err := s.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}

	s.log.Info("checkout session created", zap.String("session_id", session.SessionID), zap.Uint("course_id", courseID), zap.Uint("user_id", userID))

	return &models.CheckoutSession{
		SessionID: session.SessionID,
		URL:       session.URL,
	}, nil
}

// HandleWebhook authenticates a Stripe delivery, records it in the event
// ledger and processes it once. Only authentication and parse failures are
// returned; processing failures are logged, stored on the ledger row and
// retried by the reconciler.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	verified := s.provider.VerifiesSignatures()
	if !verified {
		s.log.Warn("STRIPE_WEBHOOK_SECRET not set, accepting unsigned webhook")
	}

	event, err := s.provider.ConstructEvent(payload, signatureHeader)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			return ErrInvalidSignature
		}
		return fmt.Errorf("%w: %v", ErrInvalidWebhookPayload, err)
	}
	if event.ID == "" || event.Type == "" {
		return ErrInvalidWebhookPayload
	}

	log := s.log.With(zap.String("event_id", event.ID), zap.String("event_type", string(event.Type)))

	created, stored, err := s.webhookRepo.CreateIfNotExists(&models.WebhookEvent{
		EventID:        event.ID,
		Type:           string(event.Type),
		Payload:        payload,
		SignatureValid: verified,
	})
	if err != nil {
		// Process without the ledger; fulfillment is idempotent.
		log.Error("failed to record webhook event", zap.Error(err))
		if procErr := s.ProcessEvent(ctx, event); procErr != nil {
			log.Error("webhook processing failed", zap.Error(procErr))
		}
		return nil
	}

	if !created && stored.ProcessedAt != nil {
		log.Info("duplicate webhook delivery ignored")
		return nil
	}

	procErr := s.ProcessEvent(ctx, event)
	errMsg := ""
	if procErr != nil {
		errMsg = procErr.Error()
		log.Error("webhook processing failed", zap.Error(procErr))
	}
	if err := s.webhookRepo.MarkProcessed(stored.ID, errMsg); err != nil {
		log.Error("failed to update webhook event", zap.Error(err))
	}
	return nil
}

// ProcessEvent applies one Stripe event. Applying the same event twice has
// the same effect as applying it once.
func (s *PaymentService) ProcessEvent(ctx context.Context, event stripe.Event) error {
	if event.Data == nil {
		return ErrInvalidWebhookPayload
	}

	switch string(event.Type) {
	case EventCheckoutCompleted, EventCheckoutAsyncPaymentOK:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}
		if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
			// Delayed payment methods complete through async_payment_succeeded.
			s.log.Info("checkout completed without payment yet", zap.String("session_id", session.ID))
			return nil
		}
		return s.fulfill(ctx, session.ID, paymentIntentID(session.PaymentIntent))

	case EventCheckoutExpired, EventCheckoutAsyncPaymentFailed:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}
		failed, err := s.purchaseRepo.MarkFailed(session.ID)
		if err != nil {
			return err
		}
		s.log.Info("checkout session closed without payment", zap.String("session_id", session.ID), zap.Bool("purchase_failed", failed))
		return nil

	case EventChargeRefunded:
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return err
		}
		intentID := paymentIntentID(charge.PaymentIntent)
		if intentID == "" {
			return nil
		}

		purchase, err := s.purchaseRepo.RefundByPaymentIntent(intentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The completion may not have been applied yet; leave the event
			// for the reconciler.
			return fmt.Errorf("%w for payment intent %s", ErrPurchaseNotFound, intentID)
		}
		if err != nil {
			return err
		}

		s.log.Info("purchase refunded", zap.Uint("purchase_id", purchase.ID), zap.Uint("course_id", purchase.CourseID))
		s.invalidateDashboard(ctx, purchase.CourseID)
		return nil

	default:
		s.log.Debug("unhandled webhook event", zap.String("event_type", string(event.Type)))
		return nil
	}
}

func (s *PaymentService) fulfill(ctx context.Context, sessionID, intentID string) error {
	purchase, completedNow, err := s.purchaseRepo.CompleteAndEnroll(sessionID, intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w for session %s", ErrPurchaseNotFound, sessionID)
		}
		return err
	}
	if purchase.Status == models.PurchaseStatusRefunded {
		s.log.Warn("completion for refunded purchase ignored", zap.String("session_id", sessionID))
		return nil
	}

	s.log.Info("purchase fulfilled",
		zap.String("session_id", sessionID),
		zap.Uint("user_id", purchase.UserID),
		zap.Uint("course_id", purchase.CourseID),
		zap.Bool("first_delivery", completedNow),
	)

	course := s.invalidateDashboard(ctx, purchase.CourseID)
	if completedNow && course != nil {
		go s.sendReceipt(*purchase, course.Title)
	}
	return nil
}

func (s *PaymentService) invalidateDashboard(ctx context.Context, courseID uint) *models.Course {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		s.log.Warn("could not load course for dashboard invalidation", zap.Uint("course_id", courseID), zap.Error(err))
		return nil
	}
	s.dashboard.Invalidate(ctx, course.CreatorID)
	return course
}

func (s *PaymentService) sendReceipt(purchase models.Purchase, courseTitle string) {
	user, err := s.userRepo.GetByID(purchase.UserID)
	if err != nil {
		s.log.Warn("receipt skipped, user not found", zap.Uint("user_id", purchase.UserID), zap.Error(err))
		return
	}

	err = s.mailer.SendEnrollmentReceipt(user.Email, user.Name, email.Receipt{
		CourseID:    purchase.CourseID,
		CourseTitle: courseTitle,
		Amount:      purchase.Amount,
		Currency:    purchase.Currency,
		Reference:   purchase.PaymentID,
	})
	if err != nil {
		s.log.Warn("receipt email failed", zap.Uint("purchase_id", purchase.ID), zap.Error(err))
	}
}

func (s *PaymentService) GetPurchasedCourses(userID uint) ([]models.Course, error) {
	return s.enrollmentRepo.ListCourses(userID)
}

func (s *PaymentService) GetUserPurchaseHistory(userID uint) ([]models.Purchase, error) {
	return s.purchaseRepo.GetUserPurchaseHistory(userID)
}

func paymentIntentID(pi *stripe.PaymentIntent) string {
	if pi == nil {
		return ""
	}
	return pi.ID
}
