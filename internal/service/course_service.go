package service

import (
	"context"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/qrcode"
	"github.com/sefazor/learnhub-backend/pkg/storage"
	"go.uber.org/zap"
)

type CourseService struct {
	courseRepo     CourseRepository
	categoryRepo   CategoryRepository
	enrollmentRepo EnrollmentRepository
	images         storage.ImageService
	qr             *qrcode.QRService
	log            *zap.Logger
}

func NewCourseService(courseRepo CourseRepository, categoryRepo CategoryRepository, enrollmentRepo EnrollmentRepository, images storage.ImageService, qr *qrcode.QRService, log *zap.Logger) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		categoryRepo:   categoryRepo,
		enrollmentRepo: enrollmentRepo,
		images:         images,
		qr:             qr,
		log:            log.Named("course"),
	}
}

func (s *CourseService) Create(creatorID uint, req models.CreateCourseRequest) (*models.Course, error) {
	if err := s.checkCategory(req.CategoryID); err != nil {
		return nil, err
	}

	course := &models.Course{
		CreatorID:  creatorID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Level:      models.LevelBeginner,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Search(q models.CourseSearchQuery) ([]models.Course, error) {
	return s.courseRepo.Search(q)
}

func (s *CourseService) GetByCreator(creatorID uint) ([]models.Course, error) {
	return s.courseRepo.GetByCreator(creatorID)
}

// GetByID returns the public view of a course, without video URLs of locked lectures.
func (s *CourseService) GetByID(id uint) (*models.Course, error) {
	course, err := loadCourse(s.courseRepo, id)
	if err != nil {
		return nil, err
	}
	lockVideos(course.Lectures)
	return course, nil
}

// GetDetailWithStatus returns the course and whether userID has access to its content.
func (s *CourseService) GetDetailWithStatus(userID, courseID uint) (*models.CourseWithStatus, error) {
	course, err := loadCourse(s.courseRepo, courseID)
	if err != nil {
		return nil, err
	}

	purchased, err := s.enrollmentRepo.IsEnrolled(userID, courseID)
	if err != nil {
		return nil, err
	}

	if !purchased && course.CreatorID != userID {
		lockVideos(course.Lectures)
	}
	return &models.CourseWithStatus{Course: course, Purchased: purchased}, nil
}

func (s *CourseService) Update(ctx context.Context, userID, courseID uint, req models.UpdateCourseRequest, thumbnail *Upload) (*models.Course, error) {
	course, err := ownedCourse(s.courseRepo, userID, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(req.CategoryID); err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Subtitle = req.Subtitle
	course.Description = req.Description
	course.CategoryID = req.CategoryID
	if req.Level != "" {
		course.Level = req.Level
	}
	course.Price = req.Price

	oldThumbnailID := ""
	if thumbnail != nil {
		imageID, _, err := s.images.Upload(ctx, thumbnail.Reader, thumbnail.Filename)
		if err != nil {
			return nil, err
		}
		oldThumbnailID = course.ThumbnailID
		course.ThumbnailID = imageID
		course.ThumbnailURL = s.images.GetPublicURL(imageID)
	}

	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}

	if oldThumbnailID != "" {
		if err := s.images.Delete(ctx, oldThumbnailID); err != nil {
			s.log.Warn("failed to delete old thumbnail", zap.Uint("course_id", courseID), zap.Error(err))
		}
	}

	return course, nil
}

func (s *CourseService) SetPublished(userID, courseID uint, publish bool) (*models.Course, error) {
	course, err := ownedCourse(s.courseRepo, userID, courseID)
	if err != nil {
		return nil, err
	}
	if publish && len(course.Lectures) == 0 {
		return nil, ErrNoLectures
	}

	course.IsPublished = publish
	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course nobody has enrolled in.
func (s *CourseService) Delete(ctx context.Context, userID, courseID uint) error {
	course, err := ownedCourse(s.courseRepo, userID, courseID)
	if err != nil {
		return err
	}

	count, err := s.enrollmentRepo.CountByCourse(courseID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCourseHasEnrollments
	}

	if err := s.courseRepo.Delete(courseID); err != nil {
		return err
	}

	if course.ThumbnailID != "" {
		if err := s.images.Delete(ctx, course.ThumbnailID); err != nil {
			s.log.Warn("failed to delete thumbnail", zap.Uint("course_id", courseID), zap.Error(err))
		}
	}
	return nil
}

func (s *CourseService) QRCode(courseID uint, size int) ([]byte, error) {
	if _, err := loadCourse(s.courseRepo, courseID); err != nil {
		return nil, err
	}
	return s.qr.GenerateCourseQRCode(courseID, size)
}

// ownedCourse loads a course and checks that userID created it.
func ownedCourse(repo CourseRepository, userID, courseID uint) (*models.Course, error) {
	course, err := loadCourse(repo, courseID)
	if err != nil {
		return nil, err
	}
	if course.CreatorID != userID {
		return nil, ErrForbidden
	}
	return course, nil
}

func (s *CourseService) checkCategory(categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categoryRepo.GetByID(*categoryID)
	return notFound(err, ErrCategoryNotFound)
}

func loadCourse(repo CourseRepository, id uint) (*models.Course, error) {
	course, err := repo.GetByID(id)
	if err != nil {
		return nil, notFound(err, ErrCourseNotFound)
	}
	return course, nil
}

// requireAccess allows the course owner and enrolled users.
func requireAccess(enrollments EnrollmentRepository, course *models.Course, userID uint) error {
	if course.CreatorID == userID {
		return nil
	}
	enrolled, err := enrollments.IsEnrolled(userID, course.ID)
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrNotEnrolled
	}
	return nil
}

func lockVideos(lectures []models.Lecture) {
	for i := range lectures {
		if !lectures[i].IsPreviewFree {
			lectures[i].VideoURL = ""
		}
	}
}
