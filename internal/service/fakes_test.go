package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/email"
	"github.com/sefazor/learnhub-backend/pkg/payment"
	"github.com/stripe/stripe-go/v74"
	"gorm.io/gorm"
)

type enrollmentKey struct{ userID, courseID uint }

// store is an in-memory stand-in for the database shared by the fakes.
type store struct {
	mu          sync.Mutex
	nextID      uint
	users       map[uint]*models.User
	courses     map[uint]*models.Course
	enrollments map[enrollmentKey]models.Enrollment
	purchases   []*models.Purchase
	progress    map[enrollmentKey]*models.CourseProgress
	quizzes     map[uint]*models.Quiz
	attempts    []models.QuizAttempt
	reviews     map[uint]*models.Review
	events      map[string]*models.WebhookEvent
	categories  map[uint]*models.Category
	now         time.Time
}

func newStore() *store {
	return &store{
		users:       map[uint]*models.User{},
		courses:     map[uint]*models.Course{},
		enrollments: map[enrollmentKey]models.Enrollment{},
		progress:    map[enrollmentKey]*models.CourseProgress{},
		quizzes:     map[uint]*models.Quiz{},
		reviews:     map[uint]*models.Review{},
		events:      map[string]*models.WebhookEvent{},
		categories:  map[uint]*models.Category{},
		now:         time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (s *store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *store) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *store) addUser(name, role string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{ID: s.id(), Name: name, Email: name + "@example.com", Role: role}
	s.users[u.ID] = u
	return u
}

// addCourse stores a published course with n lectures.
func (s *store) addCourse(creatorID uint, price float64, lectures int) *models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &models.Course{ID: s.id(), CreatorID: creatorID, Title: "Course", Price: price, IsPublished: true}
	for i := 0; i < lectures; i++ {
		c.Lectures = append(c.Lectures, models.Lecture{ID: s.id(), CourseID: c.ID, Position: i})
	}
	s.courses[c.ID] = c
	return c
}

func (s *store) enroll(userID, courseID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollments[enrollmentKey{userID, courseID}] = models.Enrollment{UserID: userID, CourseID: courseID}
}

func (s *store) enrollmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.enrollments)
}

func (s *store) purchase(paymentID string) *models.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.purchases {
		if p.PaymentID == paymentID {
			cp := *p
			return &cp
		}
	}
	return nil
}

func (s *store) event(eventID string) *models.WebhookEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[eventID]; ok {
		cp := *e
		return &cp
	}
	return nil
}

type fakeUsers struct{ *store }

func (f fakeUsers) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.id()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f fakeUsers) GetByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f fakeUsers) GetByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeUsers) EmailExists(email string) (bool, error) {
	_, err := f.GetByEmail(email)
	return err == nil, nil
}

func (f fakeUsers) Update(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

type fakeCourses struct{ *store }

func (f fakeCourses) Create(course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	course.ID = f.id()
	cp := *course
	f.courses[course.ID] = &cp
	return nil
}

func (f fakeCourses) GetByID(id uint) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	cp.Lectures = append([]models.Lecture(nil), c.Lectures...)
	return &cp, nil
}

func (f fakeCourses) GetByIDs(ids []uint) ([]models.Course, error) {
	var out []models.Course
	for _, id := range ids {
		if c, err := f.GetByID(id); err == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f fakeCourses) Search(models.CourseSearchQuery) ([]models.Course, error) {
	return nil, errors.New("not implemented")
}

func (f fakeCourses) GetByCreator(creatorID uint) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Course
	for _, c := range f.courses {
		if c.CreatorID == creatorID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeCourses) Update(course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *course
	f.courses[course.ID] = &cp
	return nil
}

func (f fakeCourses) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.courses, id)
	return nil
}

type fakeEnrollments struct{ *store }

func (f fakeEnrollments) IsEnrolled(userID, courseID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.enrollments[enrollmentKey{userID, courseID}]
	return ok, nil
}

func (f fakeEnrollments) Enroll(userID, courseID uint) error {
	f.enroll(userID, courseID)
	return nil
}

func (f fakeEnrollments) ListCourses(userID uint) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Course
	for k := range f.enrollments {
		if k.userID == userID {
			out = append(out, *f.courses[k.courseID])
		}
	}
	return out, nil
}

func (f fakeEnrollments) CountByCourse(courseID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.enrollments {
		if k.courseID == courseID {
			n++
		}
	}
	return n, nil
}

func (f fakeEnrollments) ListByCourseIDs(courseIDs []uint) ([]models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Enrollment
	for k, e := range f.enrollments {
		if containsID(courseIDs, k.courseID) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePurchases struct{ *store }

func (f fakePurchases) Create(purchase *models.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.purchases {
		if p.PaymentID == purchase.PaymentID {
			return gorm.ErrDuplicatedKey
		}
	}
	purchase.ID = f.id()
	purchase.CreatedAt = f.tick()
	cp := *purchase
	f.purchases = append(f.purchases, &cp)
	return nil
}

func (f fakePurchases) GetByPaymentID(paymentID string) (*models.Purchase, error) {
	if p := f.purchase(paymentID); p != nil {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakePurchases) GetUserPurchaseHistory(userID uint) ([]models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Purchase
	for i := len(f.purchases) - 1; i >= 0; i-- {
		if f.purchases[i].UserID == userID {
			out = append(out, *f.purchases[i])
		}
	}
	return out, nil
}

func (f fakePurchases) ListByCourseIDs(courseIDs []uint) ([]models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Purchase
	for _, p := range f.purchases {
		if containsID(courseIDs, p.CourseID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f fakePurchases) CompleteAndEnroll(paymentID, paymentIntentID string) (*models.Purchase, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.purchases {
		if p.PaymentID != paymentID {
			continue
		}
		if p.Status == models.PurchaseStatusRefunded {
			cp := *p
			return &cp, false, nil
		}
		completedNow := false
		if p.Status != models.PurchaseStatusCompleted {
			p.Status = models.PurchaseStatusCompleted
			if paymentIntentID != "" {
				p.PaymentIntentID = paymentIntentID
			}
			completedNow = true
		}
		f.enrollments[enrollmentKey{p.UserID, p.CourseID}] = models.Enrollment{UserID: p.UserID, CourseID: p.CourseID}
		cp := *p
		return &cp, completedNow, nil
	}
	return nil, false, gorm.ErrRecordNotFound
}

func (f fakePurchases) MarkFailed(paymentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.purchases {
		if p.PaymentID == paymentID && p.Status == models.PurchaseStatusPending {
			p.Status = models.PurchaseStatusFailed
			return true, nil
		}
	}
	return false, nil
}

func (f fakePurchases) RefundByPaymentIntent(paymentIntentID string) (*models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.purchases {
		if p.PaymentIntentID != paymentIntentID {
			continue
		}
		if p.Status != models.PurchaseStatusRefunded {
			p.Status = models.PurchaseStatusRefunded
			delete(f.enrollments, enrollmentKey{p.UserID, p.CourseID})
		}
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakePurchases) FailStalePending(cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.purchases {
		if p.Status == models.PurchaseStatusPending && p.CreatedAt.Before(cutoff) {
			p.Status = models.PurchaseStatusFailed
			n++
		}
	}
	return n, nil
}

type fakeProgress struct{ *store }

func (f fakeProgress) Get(userID, courseID uint) (*models.CourseProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.progress[enrollmentKey{userID, courseID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.CompletedLectures = append([]uint(nil), p.CompletedLectures...)
	return &cp, nil
}

func (f fakeProgress) GetOrCreate(userID, courseID uint) (*models.CourseProgress, error) {
	f.mu.Lock()
	key := enrollmentKey{userID, courseID}
	if _, ok := f.progress[key]; !ok {
		f.progress[key] = &models.CourseProgress{ID: f.id(), UserID: userID, CourseID: courseID, CompletedLectures: []uint{}}
	}
	f.mu.Unlock()
	return f.Get(userID, courseID)
}

func (f fakeProgress) Save(progress *models.CourseProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if progress.ID == 0 {
		progress.ID = f.id()
	}
	cp := *progress
	cp.CompletedLectures = append([]uint(nil), progress.CompletedLectures...)
	f.progress[enrollmentKey{progress.UserID, progress.CourseID}] = &cp
	return nil
}

func (f fakeProgress) ListByCourseIDs(courseIDs []uint) ([]models.CourseProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CourseProgress
	for _, p := range f.progress {
		if containsID(courseIDs, p.CourseID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeQuizzes struct{ *store }

func (f fakeQuizzes) Create(quiz *models.Quiz) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	quiz.ID = f.id()
	cp := *quiz
	f.quizzes[quiz.ID] = &cp
	return nil
}

func (f fakeQuizzes) GetByID(id uint) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}

func (f fakeQuizzes) GetByCourse(courseID uint) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.quizzes {
		if q.CourseID == courseID {
			cp := *q
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeQuizzes) Update(quiz *models.Quiz) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *quiz
	f.quizzes[quiz.ID] = &cp
	return nil
}

func (f fakeQuizzes) CreateAttempt(attempt *models.QuizAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	attempt.ID = f.id()
	attempt.CreatedAt = f.tick()
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f fakeQuizzes) LatestAttempt(userID, quizID uint) (*models.QuizAttempt, error) {
	attempts, _ := f.ListAttempts(userID, quizID)
	if len(attempts) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &attempts[0], nil
}

func (f fakeQuizzes) ListAttempts(userID, quizID uint) ([]models.QuizAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.QuizAttempt
	for i := len(f.attempts) - 1; i >= 0; i-- {
		a := f.attempts[i]
		if a.UserID == userID && a.QuizID == quizID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeReviews struct{ *store }

func (f fakeReviews) Create(review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	review.ID = f.id()
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f fakeReviews) Exists(userID, courseID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.UserID == userID && r.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeReviews) GetByID(id uint) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f fakeReviews) ListByCourse(courseID uint) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, r := range f.reviews {
		if r.CourseID == courseID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f fakeReviews) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reviews, id)
	return nil
}

type fakeEvents struct {
	*store
	failCreate bool
}

func (f fakeEvents) CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	if f.failCreate {
		return false, nil, errors.New("ledger unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if stored, ok := f.events[event.EventID]; ok {
		cp := *stored
		return false, &cp, nil
	}
	event.ID = f.id()
	event.CreatedAt = f.tick()
	cp := *event
	f.events[event.EventID] = &cp
	out := cp
	return true, &out, nil
}

func (f fakeEvents) MarkProcessed(id uint, processingError string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.ID == id {
			e.Attempts++
			e.ProcessingError = processingError
			if processingError == "" {
				now := f.now
				e.ProcessedAt = &now
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f fakeEvents) ListRetryable(maxAttempts, limit int) ([]models.WebhookEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WebhookEvent
	for _, e := range f.events {
		if e.ProcessedAt == nil && e.ProcessingError != "" && e.Attempts < maxAttempts {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCategories struct{ *store }

func (f fakeCategories) List() ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f fakeCategories) Create(category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	category.ID = f.id()
	cp := *category
	f.categories[category.ID] = &cp
	return nil
}

func (f fakeCategories) GetByID(id uint) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeCategories) NameExists(name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeCategories) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.categories, id)
	for _, c := range f.courses {
		if c.CategoryID != nil && *c.CategoryID == id {
			c.CategoryID = nil
		}
	}
	return nil
}

// fakeProvider parses webhook bodies as JSON and rejects any signature
// header equal to "bad".
type fakeProvider struct {
	mu       sync.Mutex
	sessions []payment.CheckoutParams
	err      error
}

func (p *fakeProvider) CreateCheckoutSession(_ context.Context, params payment.CheckoutParams) (*payment.CheckoutResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.sessions = append(p.sessions, params)
	id := fmt.Sprintf("cs_test_%d", len(p.sessions))
	return &payment.CheckoutResult{SessionID: id, URL: "https://checkout.stripe.test/" + id}, nil
}

func (p *fakeProvider) ConstructEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	if signatureHeader == "bad" {
		return stripe.Event{}, payment.ErrInvalidSignature
	}
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return stripe.Event{}, err
	}
	return event, nil
}

func (p *fakeProvider) VerifiesSignatures() bool { return true }

type fakeMailer struct {
	mu       sync.Mutex
	receipts []email.Receipt
	welcomes []string
	resets   []string
}

func (m *fakeMailer) SendWelcomeEmail(to, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes = append(m.welcomes, to)
	return nil
}

func (m *fakeMailer) SendEnrollmentReceipt(_, _ string, r email.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts = append(m.receipts, r)
	return nil
}

func (m *fakeMailer) SendPasswordResetEmail(to, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, to)
	return nil
}

func (m *fakeMailer) receiptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.receipts)
}

type fakeInvalidator struct {
	mu          sync.Mutex
	instructors []uint
}

func (f *fakeInvalidator) Invalidate(_ context.Context, instructorID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.instructors = append(f.instructors, instructorID)
}
