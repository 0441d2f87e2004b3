package service

import (
	"testing"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviews(t *testing.T) {
	st := newStore()
	svc := NewReviewService(fakeCourses{st}, fakeEnrollments{st}, fakeReviews{st})
	course := st.addCourse(1, 10, 1)

	_, err := svc.Create(2, course.ID, models.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrNotEnrolled)

	st.enroll(2, course.ID)
	st.enroll(3, course.ID)
	first, err := svc.Create(2, course.ID, models.CreateReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = svc.Create(2, course.ID, models.CreateReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrReviewExists)
	_, err = svc.Create(3, course.ID, models.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	list, err := svc.ListByCourse(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, 4.5, list.AverageRating)

	assert.ErrorIs(t, svc.Delete(3, first.ID), ErrForbidden)
	require.NoError(t, svc.Delete(2, first.ID))
	assert.ErrorIs(t, svc.Delete(2, first.ID), ErrReviewNotFound)
}

func TestCategories(t *testing.T) {
	st := newStore()
	svc := NewCategoryService(fakeCategories{st})

	cat, err := svc.Create(models.CreateCategoryRequest{Name: " Design "})
	require.NoError(t, err)
	assert.Equal(t, "Design", cat.Name)

	_, err = svc.Create(models.CreateCategoryRequest{Name: "Design"})
	assert.ErrorIs(t, err, ErrCategoryExists)

	course := st.addCourse(1, 10, 0)
	st.courses[course.ID].CategoryID = &cat.ID

	require.NoError(t, svc.Delete(cat.ID))
	assert.Nil(t, st.courses[course.ID].CategoryID)
	assert.ErrorIs(t, svc.Delete(cat.ID), ErrCategoryNotFound)
}
