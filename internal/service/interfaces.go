package service

import (
	"context"
	"time"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/email"
	"github.com/sefazor/learnhub-backend/pkg/payment"
	"github.com/stripe/stripe-go/v74"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	Update(user *models.User) error
}

type CategoryRepository interface {
	List() ([]models.Category, error)
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	NameExists(name string) (bool, error)
	Delete(id uint) error
}

type CourseRepository interface {
	Create(course *models.Course) error
	GetByID(id uint) (*models.Course, error)
	GetByIDs(ids []uint) ([]models.Course, error)
	Search(q models.CourseSearchQuery) ([]models.Course, error)
	GetByCreator(creatorID uint) ([]models.Course, error)
	Update(course *models.Course) error
	Delete(id uint) error
}

type LectureRepository interface {
	Create(lecture *models.Lecture) error
	GetByID(id uint) (*models.Lecture, error)
	ListByCourse(courseID uint) ([]models.Lecture, error)
	Update(lecture *models.Lecture) error
	Delete(lecture *models.Lecture) error
}

type EnrollmentRepository interface {
	IsEnrolled(userID, courseID uint) (bool, error)
	Enroll(userID, courseID uint) error
	ListCourses(userID uint) ([]models.Course, error)
	CountByCourse(courseID uint) (int64, error)
	ListByCourseIDs(courseIDs []uint) ([]models.Enrollment, error)
}

type PurchaseRepository interface {
	Create(purchase *models.Purchase) error
	GetByPaymentID(paymentID string) (*models.Purchase, error)
	GetUserPurchaseHistory(userID uint) ([]models.Purchase, error)
	ListByCourseIDs(courseIDs []uint) ([]models.Purchase, error)
	CompleteAndEnroll(paymentID, paymentIntentID string) (*models.Purchase, bool, error)
	MarkFailed(paymentID string) (bool, error)
	RefundByPaymentIntent(paymentIntentID string) (*models.Purchase, error)
	FailStalePending(cutoff time.Time) (int64, error)
}

type ProgressRepository interface {
	Get(userID, courseID uint) (*models.CourseProgress, error)
	GetOrCreate(userID, courseID uint) (*models.CourseProgress, error)
	Save(progress *models.CourseProgress) error
	ListByCourseIDs(courseIDs []uint) ([]models.CourseProgress, error)
}

type QuizRepository interface {
	Create(quiz *models.Quiz) error
	GetByID(id uint) (*models.Quiz, error)
	GetByCourse(courseID uint) (*models.Quiz, error)
	Update(quiz *models.Quiz) error
	CreateAttempt(attempt *models.QuizAttempt) error
	LatestAttempt(userID, quizID uint) (*models.QuizAttempt, error)
	ListAttempts(userID, quizID uint) ([]models.QuizAttempt, error)
}

type ReviewRepository interface {
	Create(review *models.Review) error
	Exists(userID, courseID uint) (bool, error)
	GetByID(id uint) (*models.Review, error)
	ListByCourse(courseID uint) ([]models.Review, error)
	Delete(id uint) error
}

type WebhookEventRepository interface {
	CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkProcessed(id uint, processingError string) error
	ListRetryable(maxAttempts, limit int) ([]models.WebhookEvent, error)
}

// CheckoutProvider is the payment gateway. *payment.StripeService implements it.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, p payment.CheckoutParams) (*payment.CheckoutResult, error)
	ConstructEvent(payload []byte, signatureHeader string) (stripe.Event, error)
	VerifiesSignatures() bool
}

// Mailer sends transactional email. *email.EmailService implements it.
type Mailer interface {
	SendWelcomeEmail(email, name string) error
	SendEnrollmentReceipt(email, name string, r email.Receipt) error
	SendPasswordResetEmail(email, resetToken string) error
}
