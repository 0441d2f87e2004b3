package service

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/pkg/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeImages struct {
	uploaded []string
	deleted  []string
}

func (f *fakeImages) Upload(_ context.Context, r io.Reader, filename string) (string, []string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", nil, err
	}
	id := "img_" + filename
	f.uploaded = append(f.uploaded, id)
	return id, nil, nil
}

func (f *fakeImages) Delete(_ context.Context, imageID string) error {
	f.deleted = append(f.deleted, imageID)
	return nil
}

func (f *fakeImages) GetPublicURL(imageID string) string    { return "https://img.test/" + imageID }
func (f *fakeImages) GetThumbnailURL(imageID string) string { return "https://img.test/thumb/" + imageID }

func newCourseService(st *store, images *fakeImages) *CourseService {
	qr := qrcode.NewQRService(&config.Config{FrontendURL: "https://learnhub.test"})
	return NewCourseService(fakeCourses{st}, fakeCategories{st}, fakeEnrollments{st}, images, qr, zap.NewNop())
}

func TestCourseAuthoring(t *testing.T) {
	st := newStore()
	images := &fakeImages{}
	svc := newCourseService(st, images)
	ctx := context.Background()

	missing := uint(999)
	_, err := svc.Create(1, models.CreateCourseRequest{Title: "Go", CategoryID: &missing})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	course, err := svc.Create(1, models.CreateCourseRequest{Title: "Go"})
	require.NoError(t, err)
	assert.False(t, course.IsPublished)

	_, err = svc.SetPublished(1, course.ID, true)
	assert.ErrorIs(t, err, ErrNoLectures)

	_, err = svc.Update(ctx, 2, course.ID, models.UpdateCourseRequest{Title: "Hijack"}, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, 1, course.ID, models.UpdateCourseRequest{Title: "Go 101", Level: models.LevelMedium, Price: 15},
		&Upload{Reader: bytes.NewReader([]byte("png")), Filename: "a.png"})
	require.NoError(t, err)
	assert.Equal(t, "Go 101", updated.Title)
	assert.Equal(t, "https://img.test/img_a.png", updated.ThumbnailURL)

	_, err = svc.Update(ctx, 1, course.ID, models.UpdateCourseRequest{Title: "Go 101"},
		&Upload{Reader: bytes.NewReader([]byte("png")), Filename: "b.png"})
	require.NoError(t, err)
	assert.Equal(t, []string{"img_a.png"}, images.deleted)

	st.courses[course.ID].Lectures = []models.Lecture{{ID: 50, CourseID: course.ID}}
	published, err := svc.SetPublished(1, course.ID, true)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	png, err := svc.QRCode(course.ID, 128)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestCourseDeleteRequiresNoEnrollments(t *testing.T) {
	st := newStore()
	svc := newCourseService(st, &fakeImages{})
	course := st.addCourse(1, 10, 1)
	st.enroll(5, course.ID)

	assert.ErrorIs(t, svc.Delete(context.Background(), 2, course.ID), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), 1, course.ID), ErrCourseHasEnrollments)

	empty := st.addCourse(1, 10, 0)
	require.NoError(t, svc.Delete(context.Background(), 1, empty.ID))
	_, err := svc.GetByID(empty.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	status, err := svc.GetDetailWithStatus(5, course.ID)
	require.NoError(t, err)
	assert.True(t, status.Purchased)
}
