package repository

import (
	"errors"
	"time"

	"poker_school_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookmarkRepository struct {
	DB *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *BookmarkRepository {
	return &BookmarkRepository{DB: db}
}

// Toggle flips the bookmark state and reports whether the item is bookmarked
// after the call.
func (r *BookmarkRepository) Toggle(userID string, kind model.BookmarkKind, itemID string) (bool, error) {
	var existing model.Bookmark
	err := r.DB.Where("user_id = ? AND item_id = ?", userID, itemID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, r.DB.Create(&model.Bookmark{UserID: userID, Kind: kind, ItemID: itemID}).Error
	}
	if err != nil {
		return false, err
	}
	// hard delete so the (user, item) unique slot frees up for a re-bookmark
	return false, r.DB.Unscoped().Delete(&existing).Error
}

func (r *BookmarkRepository) FindByUserAndKind(userID string, kind model.BookmarkKind) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	err := r.DB.Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC").Find(&bookmarks).Error
	return bookmarks, err
}

type LastSeenRepository struct {
	DB *gorm.DB
}

func NewLastSeenRepository(db *gorm.DB) *LastSeenRepository {
	return &LastSeenRepository{DB: db}
}

// Record replaces the pointer for the row's (user, course, component kind)
// slot.
func (r *LastSeenRepository) Record(ls *model.LastSeen) error {
	ls.SeenAt = time.Now()
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "component_kind"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"chapter_id":   ls.ChapterID,
			"component_id": ls.ComponentID,
			"progress":     ls.Progress,
			"answers":      ls.Answers,
			"seen_at":      ls.SeenAt,
		}),
	}).Create(ls).Error
}

func (r *LastSeenRepository) FindByUser(userID string) ([]model.LastSeen, error) {
	var rows []model.LastSeen
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Upsert(userID, videoID string, rating int) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"rating": rating}),
	}).Create(&model.Feedback{UserID: userID, VideoID: videoID, Rating: rating}).Error
}

func (r *FeedbackRepository) FindByUserAndVideo(userID, videoID string) (*model.Feedback, error) {
	var fb model.Feedback
	err := r.DB.Where("user_id = ? AND video_id = ?", userID, videoID).First(&fb).Error
	return &fb, err
}

func (r *FeedbackRepository) AverageForVideo(videoID string) (float64, int64, error) {
	var avg float64
	var count int64
	if err := r.DB.Model(&model.Feedback{}).Where("video_id = ?", videoID).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}
	err := r.DB.Model(&model.Feedback{}).Where("video_id = ?", videoID).
		Select("AVG(rating)").Scan(&avg).Error
	return avg, count, err
}
