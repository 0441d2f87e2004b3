package repository

import (
	"github.com/sefazor/learnhub-backend/internal/models"
	"gorm.io/gorm"
)

type LectureRepository struct {
	db *gorm.DB
}

func NewLectureRepository(db *gorm.DB) *LectureRepository {
	return &LectureRepository{db: db}
}

// Create appends the lecture at the end of its course. Learners who had
// finished the course no longer cover every lecture.
func (r *LectureRepository) Create(lecture *models.Lecture) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxPos *int
		if err := tx.Model(&models.Lecture{}).
			Where("course_id = ?", lecture.CourseID).
			Select("MAX(position)").
			Scan(&maxPos).Error; err != nil {
			return err
		}
		if maxPos != nil {
			lecture.Position = *maxPos + 1
		}
		if err := tx.Create(lecture).Error; err != nil {
			return err
		}
		return tx.Model(&models.CourseProgress{}).
			Where("course_id = ? AND is_completed = ?", lecture.CourseID, true).
			Update("is_completed", false).Error
	})
}

func (r *LectureRepository) GetByID(id uint) (*models.Lecture, error) {
	var lecture models.Lecture
	if err := r.db.First(&lecture, id).Error; err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *LectureRepository) ListByCourse(courseID uint) ([]models.Lecture, error) {
	var lectures []models.Lecture
	err := r.db.Where("course_id = ?", courseID).Order("position ASC, id ASC").Find(&lectures).Error
	return lectures, err
}

func (r *LectureRepository) Update(lecture *models.Lecture) error {
	return r.db.Save(lecture).Error
}

// Delete removes the lecture and strips it from every progress record of its
// course, recomputing completion against the remaining lectures.
func (r *LectureRepository) Delete(lecture *models.Lecture) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Lecture{}, lecture.ID).Error; err != nil {
			return err
		}

		var remaining []uint
		if err := tx.Model(&models.Lecture{}).
			Where("course_id = ?", lecture.CourseID).
			Pluck("id", &remaining).Error; err != nil {
			return err
		}

		var progresses []models.CourseProgress
		if err := tx.Where("course_id = ?", lecture.CourseID).Find(&progresses).Error; err != nil {
			return err
		}

		for i := range progresses {
			p := &progresses[i]
			p.CompletedLectures = RemoveID(p.CompletedLectures, lecture.ID)
			p.IsCompleted = CoversAll(p.CompletedLectures, remaining)
			if err := tx.Save(p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveID returns ids without id.
func RemoveID(ids []uint, id uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// CoversAll reports whether done contains every id in all, and all is non-empty.
func CoversAll(done, all []uint) bool {
	if len(all) == 0 {
		return false
	}
	set := make(map[uint]struct{}, len(done))
	for _, id := range done {
		set[id] = struct{}{}
	}
	for _, id := range all {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
