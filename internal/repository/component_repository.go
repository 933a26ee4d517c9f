package repository

import (
	"poker_school_backend/internal/model"

	"gorm.io/gorm"
)

// ComponentRepository reads the leaf catalog entities: course videos, course
// quizzes, free videos, free quizzes and their questions.
type ComponentRepository struct {
	DB *gorm.DB
}

func NewComponentRepository(db *gorm.DB) *ComponentRepository {
	return &ComponentRepository{DB: db}
}

func (r *ComponentRepository) FindVideoByID(id string) (*model.Video, error) {
	var video model.Video
	err := r.DB.Where("id = ? AND published_at IS NOT NULL", id).First(&video).Error
	return &video, err
}

func (r *ComponentRepository) FindVideosByIDs(ids []string) ([]model.Video, error) {
	var videos []model.Video
	if len(ids) == 0 {
		return videos, nil
	}
	err := r.DB.Where("id IN ? AND published_at IS NOT NULL", ids).Find(&videos).Error
	return videos, err
}

func (r *ComponentRepository) FindQuizByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ? AND published_at IS NOT NULL", id).First(&quiz).Error
	return &quiz, err
}

func (r *ComponentRepository) FindQuizzesByIDs(ids []string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if len(ids) == 0 {
		return quizzes, nil
	}
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id IN ? AND published_at IS NOT NULL", ids).Find(&quizzes).Error
	return quizzes, err
}

type FreeVideoFilter struct {
	GameType string
	Audience string
	Language string
	LessonID string
}

func (r *ComponentRepository) FindFreeVideos(f FreeVideoFilter) ([]model.FreeVideo, error) {
	var videos []model.FreeVideo
	q := r.DB.Where("published_at IS NOT NULL")
	if f.GameType != "" {
		q = q.Where("game_type = ?", f.GameType)
	}
	if f.Audience != "" {
		q = q.Where("audience = ?", f.Audience)
	}
	if f.Language != "" {
		q = q.Where("language = ?", f.Language)
	}
	if f.LessonID != "" {
		q = q.Where("id = ?", f.LessonID)
	}
	err := q.Order("display_order ASC").Find(&videos).Error
	return videos, err
}

func (r *ComponentRepository) FindFreeVideoByID(id string) (*model.FreeVideo, error) {
	var video model.FreeVideo
	err := r.DB.Where("id = ? AND published_at IS NOT NULL", id).First(&video).Error
	return &video, err
}

func (r *ComponentRepository) FindFreeQuizzes(language string) ([]model.FreeQuiz, error) {
	var quizzes []model.FreeQuiz
	q := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("published_at IS NOT NULL")
	if language != "" {
		q = q.Where("language = ?", language)
	}
	err := q.Order("display_order ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *ComponentRepository) FindFreeQuizByID(id string) (*model.FreeQuiz, error) {
	var quiz model.FreeQuiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ? AND published_at IS NOT NULL", id).First(&quiz).Error
	return &quiz, err
}

// CountQuestions returns question counts per owner id for one owner type,
// letting callers drop zero-question quizzes without loading question bodies.
func (r *ComponentRepository) CountQuestions(ownerType string, ownerIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return counts, nil
	}
	type row struct {
		OwnerID string
		N       int64
	}
	var rows []row
	err := r.DB.Model(&model.Question{}).
		Select("owner_id, COUNT(*) AS n").
		Where("owner_type = ? AND owner_id IN ?", ownerType, ownerIDs).
		Group("owner_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		counts[rw.OwnerID] = rw.N
	}
	return counts, nil
}

func (r *ComponentRepository) FindQuestionIDs(ownerType, ownerID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Question{}).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("position ASC").Pluck("id", &ids).Error
	return ids, err
}
