package utils

import (
	"testing"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUintList(t *testing.T) {
	assert.Equal(t, []uint{1, 2, 3}, ParseUintList("1, 2,,3"))
	assert.Equal(t, []uint{4}, ParseUintList("x,0,4,-1"))
	assert.Nil(t, ParseUintList(""))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 66.67, Round2(200.0/3))
	assert.Equal(t, 33.33, Round2(100.0/3))
	assert.Equal(t, 100.0, Round2(100))
}

func TestValidatorCustomTags(t *testing.T) {
	v := NewValidator()

	t.Run("course level", func(t *testing.T) {
		req := models.UpdateCourseRequest{Title: "Go", Level: "advance"}
		assert.NoError(t, v.Struct(req))

		req.Level = "expert"
		err := v.Struct(req)
		require.Error(t, err)
		assert.Contains(t, FormatErrors(err), "beginner, medium, advance")
	})

	t.Run("user role", func(t *testing.T) {
		req := models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}
		assert.NoError(t, v.Struct(req))

		req.Role = "admin"
		err := v.Struct(req)
		require.Error(t, err)
		assert.Contains(t, FormatErrors(err), "student or instructor")
	})

	t.Run("required fields", func(t *testing.T) {
		err := v.Struct(models.LoginRequest{})
		require.Error(t, err)
		msg := FormatErrors(err)
		assert.Contains(t, msg, "email is required")
		assert.Contains(t, msg, "password is required")
	})
}
