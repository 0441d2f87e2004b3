package service

import (
	"context"
	"io"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/storage"
	"go.uber.org/zap"
)

// Upload is a file taken from a multipart form.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type UserService struct {
	userRepo       UserRepository
	enrollmentRepo EnrollmentRepository
	images         storage.ImageService
	log            *zap.Logger
}

func NewUserService(userRepo UserRepository, enrollmentRepo EnrollmentRepository, images storage.ImageService, log *zap.Logger) *UserService {
	return &UserService{
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
		images:         images,
		log:            log.Named("user"),
	}
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) GetProfile(userID uint) (*models.UserProfile, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.enrollmentRepo.ListCourses(userID)
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{User: *user, EnrolledCourses: courses}, nil
}

// UpdateProfile renames the user and optionally replaces the profile photo.
// The previous photo is deleted best-effort.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest, photo *Upload) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name

	oldPhotoID := ""
	if photo != nil {
		imageID, _, err := s.images.Upload(ctx, photo.Reader, photo.Filename)
		if err != nil {
			return nil, err
		}
		oldPhotoID = user.PhotoID
		user.PhotoID = imageID
		user.PhotoURL = s.images.GetPublicURL(imageID)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if oldPhotoID != "" {
		if err := s.images.Delete(ctx, oldPhotoID); err != nil {
			s.log.Warn("failed to delete old profile photo", zap.String("image_id", oldPhotoID), zap.Error(err))
		}
	}

	return user, nil
}
