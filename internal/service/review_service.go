package service

import (
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/utils"
)

type ReviewService struct {
	courseRepo     CourseRepository
	enrollmentRepo EnrollmentRepository
	reviewRepo     ReviewRepository
}

func NewReviewService(courseRepo CourseRepository, enrollmentRepo EnrollmentRepository, reviewRepo ReviewRepository) *ReviewService {
	return &ReviewService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		reviewRepo:     reviewRepo,
	}
}

func (s *ReviewService) ListByCourse(courseID uint) (*models.CourseReviews, error) {
	if _, err := loadCourse(s.courseRepo, courseID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	result := &models.CourseReviews{Reviews: reviews, Count: len(reviews)}
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		result.AverageRating = utils.Round2(float64(total) / float64(len(reviews)))
	}
	return result, nil
}

func (s *ReviewService) Create(userID, courseID uint, req models.CreateReviewRequest) (*models.Review, error) {
	if _, err := loadCourse(s.courseRepo, courseID); err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	exists, err := s.reviewRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		UserID:   userID,
		CourseID: courseID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(userID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return notFound(err, ErrReviewNotFound)
	}
	if review.UserID != userID {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(reviewID)
}
