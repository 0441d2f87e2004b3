package service

import (
	"context"
	"errors"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/storage"
	"go.uber.org/zap"
)

type LectureService struct {
	courseRepo     CourseRepository
	lectureRepo    LectureRepository
	enrollmentRepo EnrollmentRepository
	videos         storage.StorageService
	log            *zap.Logger
}

func NewLectureService(courseRepo CourseRepository, lectureRepo LectureRepository, enrollmentRepo EnrollmentRepository, videos storage.StorageService, log *zap.Logger) *LectureService {
	return &LectureService{
		courseRepo:     courseRepo,
		lectureRepo:    lectureRepo,
		enrollmentRepo: enrollmentRepo,
		videos:         videos,
		log:            log.Named("lecture"),
	}
}

func (s *LectureService) Create(userID, courseID uint, req models.CreateLectureRequest) (*models.Lecture, error) {
	if _, err := ownedCourse(s.courseRepo, userID, courseID); err != nil {
		return nil, err
	}

	lecture := &models.Lecture{CourseID: courseID, Title: req.Title}
	if err := s.lectureRepo.Create(lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

// List returns the course's lectures. Video URLs of locked lectures are
// blanked for users without access.
func (s *LectureService) List(userID, courseID uint) ([]models.Lecture, error) {
	course, err := loadCourse(s.courseRepo, courseID)
	if err != nil {
		return nil, err
	}

	lectures, err := s.lectureRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	err = requireAccess(s.enrollmentRepo, course, userID)
	if err == nil {
		return lectures, nil
	}
	if !errors.Is(err, ErrNotEnrolled) {
		return nil, err
	}

	lockVideos(lectures)
	return lectures, nil
}

func (s *LectureService) Get(userID, lectureID uint) (*models.Lecture, error) {
	lecture, err := s.loadLecture(lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.IsPreviewFree {
		return lecture, nil
	}

	course, err := loadCourse(s.courseRepo, lecture.CourseID)
	if err != nil {
		return nil, err
	}
	if err := requireAccess(s.enrollmentRepo, course, userID); err != nil {
		if errors.Is(err, ErrNotEnrolled) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return lecture, nil
}

// Update edits a lecture and optionally replaces its video. The previous
// video is deleted best-effort once the new one is stored.
func (s *LectureService) Update(ctx context.Context, userID, courseID, lectureID uint, req models.UpdateLectureRequest, video *Upload) (*models.Lecture, error) {
	if _, err := ownedCourse(s.courseRepo, userID, courseID); err != nil {
		return nil, err
	}

	lecture, err := s.loadLecture(lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.CourseID != courseID {
		return nil, ErrLectureNotInCourse
	}

	lecture.Title = req.Title
	lecture.IsPreviewFree = req.IsPreviewFree

	oldKey := ""
	if video != nil {
		key := storage.LectureVideoKey(courseID, video.Filename)
		if err := s.videos.Upload(ctx, key, video.Reader, video.ContentType); err != nil {
			return nil, err
		}
		oldKey = lecture.VideoKey
		lecture.VideoKey = key
		lecture.VideoURL = s.videos.PublicURL(key)
	}

	if err := s.lectureRepo.Update(lecture); err != nil {
		return nil, err
	}

	if oldKey != "" {
		s.deleteVideo(ctx, oldKey)
	}

	return lecture, nil
}

// Delete removes the lecture and drops it from every learner's progress.
func (s *LectureService) Delete(ctx context.Context, userID, lectureID uint) error {
	lecture, err := s.loadLecture(lectureID)
	if err != nil {
		return err
	}
	if _, err := ownedCourse(s.courseRepo, userID, lecture.CourseID); err != nil {
		return err
	}

	if err := s.lectureRepo.Delete(lecture); err != nil {
		return err
	}

	if lecture.VideoKey != "" {
		s.deleteVideo(ctx, lecture.VideoKey)
	}
	return nil
}

func (s *LectureService) deleteVideo(ctx context.Context, key string) {
	if err := s.videos.Delete(ctx, key); err != nil {
		s.log.Warn("failed to delete lecture video", zap.String("key", key), zap.Error(err))
	}
}

func (s *LectureService) loadLecture(id uint) (*models.Lecture, error) {
	lecture, err := s.lectureRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, ErrLectureNotFound)
	}
	return lecture, nil
}
