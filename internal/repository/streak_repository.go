package repository

import (
	"poker_school_backend/internal/model"

	"gorm.io/gorm"
)

type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

func (r *StreakRepository) FindPublished() ([]model.Streak, error) {
	var streaks []model.Streak
	err := r.DB.Where("published_at IS NOT NULL").Order("streak_no ASC").Find(&streaks).Error
	return streaks, err
}

func (r *StreakRepository) FindByNo(streakNo int) (*model.Streak, error) {
	var streak model.Streak
	err := r.DB.Where("streak_no = ? AND published_at IS NOT NULL", streakNo).First(&streak).Error
	return &streak, err
}

func (r *StreakRepository) Items(streakID string) ([]model.StreakItem, error) {
	var items []model.StreakItem
	err := r.DB.Where("streak_id = ?", streakID).Order("position ASC").Find(&items).Error
	return items, err
}

func (r *StreakRepository) RewardFor(streakID string) (*model.Reward, error) {
	var reward model.Reward
	err := r.DB.Where("streak_id = ? AND published_at IS NOT NULL", streakID).First(&reward).Error
	return &reward, err
}
