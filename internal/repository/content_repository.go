package repository

import (
	"poker_school_backend/internal/model"

	"gorm.io/gorm"
)

// ContentRepository reads the editorial surfaces: banners, feeds, live
// streams, the app-open popup and the home section layout.
type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) FindBanners(language string) ([]model.Banner, error) {
	var banners []model.Banner
	q := r.DB.Where("published_at IS NOT NULL")
	if language != "" {
		q = q.Where("language = ?", language)
	}
	err := q.Order("display_order ASC").Find(&banners).Error
	return banners, err
}

func (r *ContentRepository) FindFeeds(language string) ([]model.Feed, error) {
	var feeds []model.Feed
	q := r.DB.Where("published_at IS NOT NULL")
	if language != "" {
		q = q.Where("language = ?", language)
	}
	err := q.Order("published_at DESC").Find(&feeds).Error
	return feeds, err
}

func (r *ContentRepository) FindLiveStreams(streamID, language string) ([]model.LiveStream, error) {
	var streams []model.LiveStream
	q := r.DB.Where("published_at IS NOT NULL")
	if streamID != "" {
		q = q.Where("id = ?", streamID)
	}
	if language != "" {
		q = q.Where("language = ?", language)
	}
	err := q.Order("starts_at ASC").Find(&streams).Error
	return streams, err
}

func (r *ContentRepository) FindPopups(day string) ([]model.Popup, error) {
	var popups []model.Popup
	q := r.DB.Where("published_at IS NOT NULL")
	if day != "" {
		q = q.Where("day = ?", day)
	}
	err := q.Find(&popups).Error
	return popups, err
}

func (r *ContentRepository) HomeSections() ([]model.HomeSection, error) {
	var sections []model.HomeSection
	err := r.DB.Where("enabled = ?", true).Order("display_order ASC").Find(&sections).Error
	return sections, err
}
