package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/cache"
	"github.com/sefazor/learnhub-backend/pkg/utils"
	"go.uber.org/zap"
)

const trendDays = 30

type DashboardService struct {
	courseRepo     CourseRepository
	purchaseRepo   PurchaseRepository
	enrollmentRepo EnrollmentRepository
	progressRepo   ProgressRepository
	cache          cache.Cache
	ttl            time.Duration
	now            func() time.Time
	log            *zap.Logger
}

func NewDashboardService(courseRepo CourseRepository, purchaseRepo PurchaseRepository, enrollmentRepo EnrollmentRepository, progressRepo ProgressRepository, c cache.Cache, ttl time.Duration, log *zap.Logger) *DashboardService {
	return &DashboardService{
		courseRepo:     courseRepo,
		purchaseRepo:   purchaseRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		cache:          c,
		ttl:            ttl,
		now:            time.Now,
		log:            log.Named("dashboard"),
	}
}

func dashboardKey(instructorID uint) string {
	return fmt.Sprintf("dashboard:%d", instructorID)
}

func (s *DashboardService) Get(ctx context.Context, instructorID uint) (*models.DashboardStats, error) {
	key := dashboardKey(instructorID)

	var cached models.DashboardStats
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.log.Warn("dashboard cache read failed", zap.Uint("instructor_id", instructorID), zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	courses, err := s.courseRepo.GetByCreator(instructorID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	purchases, err := s.purchaseRepo.ListByCourseIDs(ids)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollmentRepo.ListByCourseIDs(ids)
	if err != nil {
		return nil, err
	}
	progresses, err := s.progressRepo.ListByCourseIDs(ids)
	if err != nil {
		return nil, err
	}

	stats := AggregateDashboard(courses, purchases, enrollments, progresses, s.now())

	if err := s.cache.SetJSON(ctx, key, stats, s.ttl); err != nil {
		s.log.Warn("dashboard cache write failed", zap.Uint("instructor_id", instructorID), zap.Error(err))
	}
	return &stats, nil
}

// Invalidate drops the cached stats of one instructor.
func (s *DashboardService) Invalidate(ctx context.Context, instructorID uint) {
	if err := s.cache.Delete(ctx, dashboardKey(instructorID)); err != nil {
		s.log.Warn("dashboard cache invalidation failed", zap.Uint("instructor_id", instructorID), zap.Error(err))
	}
}

// AggregateDashboard reduces an instructor's rows into dashboard stats. Only
// completed purchases count as revenue or sales. The trend covers the last
// thirty UTC days ending on now.
func AggregateDashboard(courses []models.Course, purchases []models.Purchase, enrollments []models.Enrollment, progresses []models.CourseProgress, now time.Time) models.DashboardStats {
	stats := models.DashboardStats{
		TotalCourses:     len(courses),
		TotalEnrollments: len(enrollments),
		EnrollmentTrend:  make([]models.TrendPoint, trendDays),
		Courses:          make([]models.CourseSales, 0, len(courses)),
	}

	today := now.UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(trendDays - 1))
	bucket := make(map[string]int, trendDays)
	for i := 0; i < trendDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		stats.EnrollmentTrend[i].Date = day
		bucket[day] = i
	}

	perCourse := make(map[uint]*models.CourseSales, len(courses))
	for _, c := range courses {
		stats.Courses = append(stats.Courses, models.CourseSales{
			CourseID: c.ID,
			Title:    c.Title,
			Price:    c.Price,
		})
	}
	for i := range stats.Courses {
		perCourse[stats.Courses[i].CourseID] = &stats.Courses[i]
	}

	revenue := 0.0
	for _, p := range purchases {
		if p.Status != models.PurchaseStatusCompleted {
			continue
		}
		revenue += p.Amount
		stats.TotalSales++

		if row, ok := perCourse[p.CourseID]; ok {
			row.Sales++
			row.Revenue += p.Amount
		}
		if i, ok := bucket[p.CreatedAt.UTC().Format("2006-01-02")]; ok {
			stats.EnrollmentTrend[i].Enrollments++
		}
	}
	stats.TotalRevenue = utils.Round2(revenue)

	if len(progresses) > 0 {
		completed := 0
		for _, p := range progresses {
			if p.IsCompleted {
				completed++
			}
		}
		stats.CompletionRate = utils.Round2(100 * float64(completed) / float64(len(progresses)))
	}

	for i := range stats.Courses {
		stats.Courses[i].Revenue = utils.Round2(stats.Courses[i].Revenue)
	}
	sort.SliceStable(stats.Courses, func(i, j int) bool {
		if stats.Courses[i].Revenue != stats.Courses[j].Revenue {
			return stats.Courses[i].Revenue > stats.Courses[j].Revenue
		}
		return stats.Courses[i].CourseID < stats.Courses[j].CourseID
	})

	return stats
}
