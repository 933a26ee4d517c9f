package model

import (
	"time"

	"gorm.io/datatypes"
)

// Catalog rows are created and edited out-of-band by the CMS; this service
// only reads them. A row is visible to the app only when PublishedAt is set.

type Course struct {
	UUIDBase
	Name        string     `gorm:"type:varchar(255)" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Type        string     `gorm:"type:varchar(64);index" json:"type"`
	Language    string     `gorm:"type:varchar(32);index" json:"language"`
	ThumbnailID string     `gorm:"type:varchar(36)" json:"thumbnailId"`
	Order       int        `gorm:"column:display_order" json:"order"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
}

type Chapter struct {
	UUIDBase
	CourseID    string     `gorm:"type:varchar(36);index" json:"courseId"`
	Title       string     `gorm:"type:varchar(255)" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	ThumbnailID string     `gorm:"type:varchar(36)" json:"thumbnailId"`
	GameType    string     `gorm:"type:varchar(64)" json:"gameType"`
	Audience    string     `gorm:"type:varchar(64)" json:"audience"`
	Order       int        `gorm:"column:display_order" json:"order"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
}

// ChapterComponent is a chapter's ordered reference to one of its child
// components (course video or course quiz).
type ChapterComponent struct {
	UUIDBase
	ChapterID     string        `gorm:"type:varchar(36);index;uniqueIndex:idx_chapter_component" json:"chapterId"`
	ComponentID   string        `gorm:"type:varchar(36);index;uniqueIndex:idx_chapter_component" json:"componentId"`
	ComponentKind ComponentKind `gorm:"type:varchar(16)" json:"componentKind"`
	Position      int           `json:"position"`
}

type Video struct {
	UUIDBase
	Title       string     `gorm:"type:varchar(255)" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Duration    string     `gorm:"type:varchar(32)" json:"duration"`
	URL         string     `gorm:"type:varchar(512)" json:"url"`
	ThumbnailID string     `gorm:"type:varchar(36)" json:"thumbnailId"`
	Order       int        `gorm:"column:display_order" json:"order"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
}

type Quiz struct {
	UUIDBase
	Title       string     `gorm:"type:varchar(255)" json:"title"`
	Order       int        `gorm:"column:display_order" json:"order"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
	Questions   []Question `gorm:"polymorphic:Owner;polymorphicValue:quiz" json:"questions,omitempty"`
}

type FreeVideo struct {
	UUIDBase
	Title       string     `gorm:"type:varchar(255)" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Duration    string     `gorm:"type:varchar(32)" json:"duration"`
	URL         string     `gorm:"type:varchar(512)" json:"url"`
	ThumbnailID string     `gorm:"type:varchar(36)" json:"thumbnailId"`
	GameType    string     `gorm:"type:varchar(64);index" json:"gameType"`
	Audience    string     `gorm:"type:varchar(64);index" json:"audience"`
	Language    string     `gorm:"type:varchar(32);index" json:"language"`
	Order       int        `gorm:"column:display_order" json:"order"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
}

type FreeQuiz struct {
	UUIDBase
	Title       string     `gorm:"type:varchar(255)" json:"title"`
	Language    string     `gorm:"type:varchar(32);index" json:"language"`
	ChapterID   string     `gorm:"type:varchar(36);index" json:"chapterId"`
	Order       int        `gorm:"column:display_order" json:"order"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
	Questions   []Question `gorm:"polymorphic:Owner;polymorphicValue:free_quiz" json:"questions,omitempty"`
}

// Question belongs to either a Quiz or a FreeQuiz. Options and CorrectOptions
// hold the CMS option lists verbatim; empty option slots are scrubbed when
// shaping responses, not here.
type Question struct {
	UUIDBase
	OwnerID        string         `gorm:"type:varchar(36);index" json:"-"`
	OwnerType      string         `gorm:"type:varchar(16);index" json:"-"`
	Text           string         `gorm:"type:text" json:"text"`
	Options        datatypes.JSON `json:"options"`
	CorrectOptions datatypes.JSON `json:"correctOptions"`
	Solution       string         `gorm:"type:text" json:"solution"`
	Mandatory      bool           `json:"isMandatory"`
	ImageID        string         `gorm:"type:varchar(36)" json:"imageId"`
	ThumbnailID    string         `gorm:"type:varchar(36)" json:"thumbnailId"`
	VideoURL       string         `gorm:"type:varchar(512)" json:"videoUrl"`
	Position       int            `json:"position"`
}

// UploadFile is one row of the file-upload table; URL is set for files served
// directly, ObjectKey for files stored in the object store.
type UploadFile struct {
	UUIDBase
	Name      string `gorm:"type:varchar(255)" json:"name"`
	URL       string `gorm:"type:varchar(512)" json:"url"`
	ObjectKey string `gorm:"type:varchar(512)" json:"objectKey"`
	Mime      string `gorm:"type:varchar(64)" json:"mime"`
}
