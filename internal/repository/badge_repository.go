package repository

import (
	"poker_school_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

// Assign grants a badge once per (user, badge type). A repeat grant refreshes
// the reward snapshot instead of inserting a second row.
func (r *BadgeRepository) Assign(b *model.BadgeAndReward) (bool, error) {
	var existing model.BadgeAndReward
	err := r.DB.Where("user_id = ? AND badge_type = ?", b.UserID, b.BadgeType).First(&existing).Error
	already := err == nil

	err = r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "badge_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"badge":   b.Badge,
			"reward":  b.Reward,
			"message": b.Message,
			"note":    b.Note,
		}),
	}).Create(b).Error
	if err != nil {
		return false, err
	}
	return !already, nil
}

func (r *BadgeRepository) FindByUser(userID string) ([]model.BadgeAndReward, error) {
	var badges []model.BadgeAndReward
	err := r.DB.Where("user_id = ?", userID).Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) FindByUserAndType(userID, badgeType string) (*model.BadgeAndReward, error) {
	var badge model.BadgeAndReward
	err := r.DB.Where("user_id = ? AND badge_type = ?", userID, badgeType).First(&badge).Error
	return &badge, err
}
