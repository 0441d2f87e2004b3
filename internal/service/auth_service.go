package service

import (
	"errors"
	"fmt"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/bcrypt"
	jwtPkg "github.com/sefazor/learnhub-backend/pkg/jwt"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo UserRepository
	mailer   Mailer
	tokens   *jwtPkg.Manager
	log      *zap.Logger
}

func NewAuthService(userRepo UserRepository, mailer Mailer, tokens *jwtPkg.Manager, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		tokens:   tokens,
		log:      log.Named("auth"),
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	go func() {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
			s.log.Warn("welcome email failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}()

	return user, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.NeedsRehash(user.Password) {
		if hashed, err := bcrypt.HashPassword(req.Password); err == nil {
			user.Password = hashed
			if err := s.userRepo.Update(user); err != nil {
				s.log.Warn("password rehash failed", zap.Uint("user_id", user.ID), zap.Error(err))
			}
		}
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

// ValidateToken resolves a session token to its claims.
func (s *AuthService) ValidateToken(token string) (*jwtPkg.Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) ChangePassword(userID uint, req models.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}

	if err := bcrypt.ComparePassword(user.Password, req.CurrentPassword); err != nil {
		return ErrIncorrectPassword
	}

	hashedPassword, err := bcrypt.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(user)
}

// ForgotPassword never reveals whether the address is registered.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	resetToken, err := s.tokens.GenerateResetToken(user.ID)
	if err != nil {
		return err
	}

	go func() {
		if err := s.mailer.SendPasswordResetEmail(user.Email, resetToken); err != nil {
			s.log.Warn("password reset email failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}()
	return nil
}

func (s *AuthService) ResetPassword(token string, newPassword string) error {
	claims, err := s.tokens.ValidateResetToken(token)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}

	hashedPassword, err := bcrypt.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(user)
}

// notFound maps gorm's missing-row error onto a domain error.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
