package model

import (
	"time"

	"gorm.io/datatypes"
)

type ComponentKind string

const (
	KindVideo ComponentKind = "video"
	KindQuiz  ComponentKind = "quiz"
)

// ProgressStatus is open-ended: clients may send in-progress variants, which
// are stored verbatim. Only StatusCompleted is terminal; everything else
// merges as not-yet-complete.
type ProgressStatus string

const (
	StatusIncomplete ProgressStatus = "incompleted"
	StatusCompleted  ProgressStatus = "completed"
)

// ProgressRecord is one user's state for one component. The unique index on
// (user_id, component_id) makes the upsert in the progress repository safe
// under concurrent writes from the same user.
type ProgressRecord struct {
	UUIDBase
	UserID        string         `gorm:"type:varchar(64);uniqueIndex:idx_user_component;index" json:"userId"`
	CourseID      string         `gorm:"type:varchar(36);default:'0';index" json:"courseId"`
	ChapterID     string         `gorm:"type:varchar(36);default:'0';index" json:"chapterId"`
	ComponentID   string         `gorm:"type:varchar(36);uniqueIndex:idx_user_component" json:"componentId"`
	ComponentKind ComponentKind  `gorm:"type:varchar(16)" json:"componentKind"`
	Status        ProgressStatus `gorm:"type:varchar(16)" json:"status"`
	WatchedTime   float64        `json:"watchedTime"`
	Answers       datatypes.JSON `json:"answers,omitempty"`
	RecordedAt    time.Time      `json:"recordedAt"`
}

// CourseProgress marks a course a user has started; Completed flips once
// every published chapter of the course evaluates complete.
type CourseProgress struct {
	UUIDBase
	UserID    string `gorm:"type:varchar(64);uniqueIndex:idx_user_course" json:"userId"`
	CourseID  string `gorm:"type:varchar(36);uniqueIndex:idx_user_course" json:"courseId"`
	Completed bool   `json:"completed"`
}

// Mapper caches the component -> (course, chapter) resolution so progress
// writes that arrive without parent ids can be placed without walking the
// catalog every time. Rows are dropped by the catalog-sync hook when the
// catalog changes.
type Mapper struct {
	UUIDBase
	ComponentID   string        `gorm:"type:varchar(36);uniqueIndex" json:"componentId"`
	ComponentKind ComponentKind `gorm:"type:varchar(16)" json:"componentKind"`
	CourseID      string        `gorm:"type:varchar(36)" json:"courseId"`
	ChapterID     string        `gorm:"type:varchar(36)" json:"chapterId"`
}
