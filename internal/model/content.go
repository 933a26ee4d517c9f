package model

import (
	"time"

	"gorm.io/datatypes"
)

type Banner struct {
	UUIDBase
	Title       string     `gorm:"type:varchar(255)" json:"title"`
	ImageID     string     `gorm:"type:varchar(36)" json:"imageId"`
	TargetURL   string     `gorm:"type:varchar(512)" json:"targetUrl"`
	Language    string     `gorm:"type:varchar(32);index" json:"language"`
	Order       int        `gorm:"column:display_order" json:"order"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
}

type Feed struct {
	UUIDBase
	Title       string     `gorm:"type:varchar(255)" json:"title"`
	Body        string     `gorm:"type:text" json:"body"`
	ImageID     string     `gorm:"type:varchar(36)" json:"imageId"`
	VideoURL    string     `gorm:"type:varchar(512)" json:"videoUrl"`
	Language    string     `gorm:"type:varchar(32);index" json:"language"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
}

type LiveStream struct {
	UUIDBase
	Title       string         `gorm:"type:varchar(255)" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	URL         string         `gorm:"type:varchar(512)" json:"url"`
	ThumbnailID string         `gorm:"type:varchar(36)" json:"thumbnailId"`
	Tags        datatypes.JSON `json:"tags"`
	StartsAt    *time.Time     `json:"startsAt"`
	IsActive    bool           `json:"isActive"`
	Language    string         `gorm:"type:varchar(32);index" json:"language"`
	PublishedAt *time.Time     `gorm:"index" json:"publishedAt"`
}

// Popup is an app-open announcement keyed by onboarding day. The app asks
// for the popup of a given day; rows without a day show every day.
type Popup struct {
	UUIDBase
	Title            string     `gorm:"type:varchar(255)" json:"title"`
	VideoURL         string     `gorm:"type:varchar(512)" json:"videoUrl"`
	Duration         string     `gorm:"type:varchar(32)" json:"duration"`
	ThumbnailID      string     `gorm:"type:varchar(36)" json:"thumbnailId"`
	BackgroundID     string     `gorm:"type:varchar(36)" json:"backgroundId"`
	BackgroundColour string     `gorm:"type:varchar(32)" json:"backgroundColour"`
	Day              string     `gorm:"type:varchar(16);index" json:"day"`
	PublishedAt      *time.Time `gorm:"index" json:"publishedAt"`
}

// HomeSection orders the blocks of the aggregated home payload. Seeded with
// defaults on first boot; the CMS reorders and toggles them afterwards.
type HomeSection struct {
	UUIDBase
	Key     string `gorm:"type:varchar(64);uniqueIndex" json:"key"`
	Title   string `gorm:"type:varchar(255)" json:"title"`
	Order   int    `gorm:"column:display_order" json:"order"`
	Enabled bool   `json:"enabled"`
}
