package repository

import (
	"poker_school_backend/internal/model"

	"gorm.io/gorm"
)

type ChapterRepository struct {
	DB *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{DB: db}
}

func (r *ChapterRepository) FindPublishedByCourse(courseID string) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Where("course_id = ? AND published_at IS NOT NULL", courseID).
		Order("display_order ASC").Find(&chapters).Error
	return chapters, err
}

func (r *ChapterRepository) FindByID(id string) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.DB.Where("id = ? AND published_at IS NOT NULL", id).First(&chapter).Error
	return &chapter, err
}

func (r *ChapterRepository) FindPublishedIDsByCourse(courseID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Chapter{}).
		Where("course_id = ? AND published_at IS NOT NULL", courseID).
		Order("display_order ASC").Pluck("id", &ids).Error
	return ids, err
}

// Components returns the chapter's ordered child references.
func (r *ChapterRepository) Components(chapterID string) ([]model.ChapterComponent, error) {
	var refs []model.ChapterComponent
	err := r.DB.Where("chapter_id = ?", chapterID).
		Order("position ASC").Find(&refs).Error
	return refs, err
}

// AllComponents returns every chapter->component reference ordered by chapter,
// used by the mapper when it rebuilds its cache.
func (r *ChapterRepository) AllComponents() ([]model.ChapterComponent, error) {
	var refs []model.ChapterComponent
	err := r.DB.Order("chapter_id ASC, position ASC").Find(&refs).Error
	return refs, err
}
