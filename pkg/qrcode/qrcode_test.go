package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCourseQRCode(t *testing.T) {
	s := NewQRService(&config.Config{FrontendURL: "https://learnhub.test"})
	assert.Equal(t, "https://learnhub.test/course-detail/9", s.CourseURL(9))

	data, err := s.GenerateCourseQRCode(9, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())

	data, err = s.GenerateCourseQRCode(9, 5000)
	require.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, MaxSize, img.Bounds().Dx())
}
