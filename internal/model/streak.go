package model

import "time"

type StreakItemKind string

const (
	ItemFreeVideo StreakItemKind = "free_video"
	ItemFreeQuiz  StreakItemKind = "free_quiz"
	ItemChapter   StreakItemKind = "chapter"
)

// Streak is one week of the onboarding challenge. StreakNo is 1-based; week N
// closes streakNo*7 days after the user's signup.
type Streak struct {
	UUIDBase
	Name        string     `gorm:"type:varchar(255)" json:"name"`
	StreakNo    int        `gorm:"uniqueIndex" json:"streakNo"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
}

// StreakItem is one required task of a streak week.
type StreakItem struct {
	UUIDBase
	StreakID string         `gorm:"type:varchar(36);index" json:"streakId"`
	ItemID   string         `gorm:"type:varchar(36)" json:"itemId"`
	ItemKind StreakItemKind `gorm:"type:varchar(16)" json:"itemKind"`
	Position int            `json:"position"`
}

// Reward is the CMS definition of what finishing a streak week earns.
type Reward struct {
	UUIDBase
	StreakID    string     `gorm:"type:varchar(36);uniqueIndex" json:"streakId"`
	BadgeName   string     `gorm:"type:varchar(255)" json:"badgeName"`
	Reward      string     `gorm:"type:text" json:"reward"`
	Message     string     `gorm:"type:text" json:"message"`
	Note        string     `gorm:"type:text" json:"note"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
}

// BadgeAndReward is a badge a user has earned. BadgeType carries the streak
// number as a string; the unique index keeps assignment idempotent.
type BadgeAndReward struct {
	UUIDBase
	UserID    string `gorm:"type:varchar(64);uniqueIndex:idx_user_badge;index" json:"userId"`
	BadgeType string `gorm:"type:varchar(32);uniqueIndex:idx_user_badge" json:"badgeType"`
	Badge     string `gorm:"type:varchar(255)" json:"badge"`
	Reward    string `gorm:"type:text" json:"reward"`
	Message   string `gorm:"type:text" json:"message"`
	Note      string `gorm:"type:text" json:"note"`
}
