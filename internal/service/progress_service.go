package service

import (
	"errors"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/repository"
	"gorm.io/gorm"
)

type ProgressService struct {
	courseRepo     CourseRepository
	enrollmentRepo EnrollmentRepository
	progressRepo   ProgressRepository
}

func NewProgressService(courseRepo CourseRepository, enrollmentRepo EnrollmentRepository, progressRepo ProgressRepository) *ProgressService {
	return &ProgressService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
	}
}

func (s *ProgressService) Get(userID, courseID uint) (*models.CourseProgressResponse, error) {
	course, err := s.accessibleCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.Get(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.CourseProgressResponse{Course: course, Progress: []uint{}}, nil
		}
		return nil, err
	}

	return response(course, progress), nil
}

// ToggleLecture flips one lecture's completion. The progress record is
// created on first use.
func (s *ProgressService) ToggleLecture(userID, courseID, lectureID uint) (*models.CourseProgressResponse, error) {
	course, err := s.accessibleCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if !course.HasLecture(lectureID) {
		return nil, ErrLectureNotFound
	}

	progress, err := s.progressRepo.GetOrCreate(userID, courseID)
	if err != nil {
		return nil, err
	}

	if containsID(progress.CompletedLectures, lectureID) {
		progress.CompletedLectures = repository.RemoveID(progress.CompletedLectures, lectureID)
	} else {
		progress.CompletedLectures = append(progress.CompletedLectures, lectureID)
	}

	return s.save(course, progress)
}

func (s *ProgressService) MarkComplete(userID, courseID uint) (*models.CourseProgressResponse, error) {
	course, err := s.accessibleCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.GetOrCreate(userID, courseID)
	if err != nil {
		return nil, err
	}

	progress.CompletedLectures = lectureIDs(course)
	return s.save(course, progress)
}

func (s *ProgressService) MarkIncomplete(userID, courseID uint) (*models.CourseProgressResponse, error) {
	course, err := s.accessibleCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.GetOrCreate(userID, courseID)
	if err != nil {
		return nil, err
	}

	progress.CompletedLectures = []uint{}
	return s.save(course, progress)
}

func (s *ProgressService) save(course *models.Course, progress *models.CourseProgress) (*models.CourseProgressResponse, error) {
	progress.IsCompleted = repository.CoversAll(progress.CompletedLectures, lectureIDs(course))
	if err := s.progressRepo.Save(progress); err != nil {
		return nil, err
	}
	return response(course, progress), nil
}

func (s *ProgressService) accessibleCourse(userID, courseID uint) (*models.Course, error) {
	course, err := loadCourse(s.courseRepo, courseID)
	if err != nil {
		return nil, err
	}
	if err := requireAccess(s.enrollmentRepo, course, userID); err != nil {
		return nil, err
	}
	return course, nil
}

func response(course *models.Course, progress *models.CourseProgress) *models.CourseProgressResponse {
	completed := progress.CompletedLectures
	if completed == nil {
		completed = []uint{}
	}
	return &models.CourseProgressResponse{
		Course:    course,
		Progress:  completed,
		Completed: progress.IsCompleted,
	}
}

func lectureIDs(course *models.Course) []uint {
	ids := make([]uint, 0, len(course.Lectures))
	for _, l := range course.Lectures {
		ids = append(ids, l.ID)
	}
	return ids
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
