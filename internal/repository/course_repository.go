package repository

import (
	"poker_school_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindPublished(language string) ([]model.Course, error) {
	var courses []model.Course
	q := r.DB.Where("published_at IS NOT NULL")
	if language != "" {
		q = q.Where("language = ?", language)
	}
	err := q.Order("display_order ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ? AND published_at IS NOT NULL", id).First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindByIDs(ids []string) ([]model.Course, error) {
	var courses []model.Course
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.DB.Where("id IN ? AND published_at IS NOT NULL", ids).
		Order("display_order ASC").Find(&courses).Error
	return courses, err
}
