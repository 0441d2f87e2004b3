package repository

import (
	"testing"

	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveID(t *testing.T) {
	assert.Equal(t, []uint{1, 3}, RemoveID([]uint{1, 2, 3}, 2))
	assert.Equal(t, []uint{1}, RemoveID([]uint{1}, 9))
	assert.Empty(t, RemoveID(nil, 1))
}

func TestCoversAll(t *testing.T) {
	assert.True(t, CoversAll([]uint{3, 1, 2}, []uint{1, 2, 3}))
	assert.True(t, CoversAll([]uint{1, 2, 3, 99}, []uint{1, 2, 3}))
	assert.False(t, CoversAll([]uint{1, 2}, []uint{1, 2, 3}))
	assert.False(t, CoversAll(nil, nil))
}

func TestLectureChangesRecomputeCompletion(t *testing.T) {
	db := newTestDB(t)
	lectures := NewLectureRepository(db)
	progress := NewProgressRepository(db)
	student := seedUser(t, db, "stu")
	course := seedCourse(t, db, seedUser(t, db, "ins").ID, 2)

	done := []uint{course.Lectures[0].ID, course.Lectures[1].ID}
	require.NoError(t, progress.Save(&models.CourseProgress{
		UserID: student.ID, CourseID: course.ID, CompletedLectures: done, IsCompleted: true,
	}))

	extra := &models.Lecture{CourseID: course.ID, Title: "Bonus"}
	require.NoError(t, lectures.Create(extra))
	assert.Equal(t, 2, extra.Position)

	got, err := progress.Get(student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, got.IsCompleted)
	assert.Len(t, got.CompletedLectures, 2)

	require.NoError(t, lectures.Delete(extra))

	got, err = progress.Get(student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)

	require.NoError(t, lectures.Delete(&course.Lectures[0]))

	got, err = progress.Get(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{course.Lectures[1].ID}, []uint(got.CompletedLectures))
	assert.True(t, got.IsCompleted)

	remaining, err := lectures.ListByCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, course.Lectures[1].ID, remaining[0].ID)
}
