package qrcode

import (
	"fmt"

	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 1024
)

// QRService renders share codes that point at a course's public page.
type QRService struct {
	baseURL string // e.g. "https://learnhub.example/course-detail/"
}

func NewQRService(cfg *config.Config) *QRService {
	return &QRService{
		baseURL: cfg.FrontendURL + "/course-detail/",
	}
}

// CourseURL is the link encoded in a course's QR code.
func (s *QRService) CourseURL(courseID uint) string {
	return fmt.Sprintf("%s%d", s.baseURL, courseID)
}

// GenerateCourseQRCode returns a PNG; size is clamped to [MinSize, MaxSize].
func (s *QRService) GenerateCourseQRCode(courseID uint, size int) ([]byte, error) {
	switch {
	case size <= 0:
		size = DefaultSize
	case size < MinSize:
		size = MinSize
	case size > MaxSize:
		size = MaxSize
	}

	png, err := qrcode.Encode(s.CourseURL(courseID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}
