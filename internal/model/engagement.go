package model

import (
	"time"

	"gorm.io/datatypes"
)

// BookmarkKind tells which table the bookmarked item lives in.
type BookmarkKind string

const (
	BookmarkVideo   BookmarkKind = "video"
	BookmarkChapter BookmarkKind = "chapter"
	BookmarkQuiz    BookmarkKind = "quiz"
)

// Bookmark rows toggle: recording a bookmark for an already-bookmarked item
// removes the row.
type Bookmark struct {
	UUIDBase
	UserID string       `gorm:"type:varchar(64);uniqueIndex:idx_user_item_bm;index" json:"userId"`
	Kind   BookmarkKind `gorm:"type:varchar(16);index" json:"kind"`
	ItemID string       `gorm:"type:varchar(36);uniqueIndex:idx_user_item_bm" json:"itemId"`
}

// LastSeen keeps one resume pointer per (user, course, component kind),
// replaced on every write.
type LastSeen struct {
	UUIDBase
	UserID        string         `gorm:"type:varchar(64);uniqueIndex:idx_user_course_kind;index" json:"userId"`
	CourseID      string         `gorm:"type:varchar(36);uniqueIndex:idx_user_course_kind;default:'0'" json:"courseId"`
	ComponentKind ComponentKind  `gorm:"type:varchar(16);uniqueIndex:idx_user_course_kind" json:"componentKind"`
	ChapterID     string         `gorm:"type:varchar(36);default:'0'" json:"chapterId"`
	ComponentID   string         `gorm:"type:varchar(36)" json:"componentId"`
	Progress      datatypes.JSON `json:"progress"`
	Answers       datatypes.JSON `json:"answers"`
	SeenAt        time.Time      `json:"seenAt"`
}

// Feedback is a user's star rating for a video, one row per pair; repeated
// submissions overwrite the rating.
type Feedback struct {
	UUIDBase
	UserID  string `gorm:"type:varchar(64);uniqueIndex:idx_user_video_fb;index" json:"userId"`
	VideoID string `gorm:"type:varchar(36);uniqueIndex:idx_user_video_fb" json:"videoId"`
	Rating  int    `json:"rating"`
}
