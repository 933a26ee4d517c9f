package repository

import (
	"errors"
	"time"

	"poker_school_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert writes one progress record under the (user_id, component_id) unique
// index. It runs a locking read inside a transaction; if the insert still
// loses a race the conflict leaves zero rows affected and the merge path
// re-reads and updates instead.
func (r *ProgressRepository) Upsert(incoming *model.ProgressRecord) error {
	incoming.RecordedAt = time.Now()

	return r.DB.Transaction(func(tx *gorm.DB) error {
		read := tx
		// sqlite (tests) has no row locks; its single-writer model covers us
		if tx.Dialector.Name() == "mysql" {
			read = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var existing model.ProgressRecord
		err := read.
			Where("user_id = ? AND component_id = ?", incoming.UserID, incoming.ComponentID).
			First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "component_id"}},
				DoNothing: true,
			}).Create(incoming)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				return nil
			}
			// lost the race to a concurrent writer, merge into its row
			if err := tx.Where("user_id = ? AND component_id = ?", incoming.UserID, incoming.ComponentID).
				First(&existing).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		merged := mergeProgress(&existing, incoming)
		return tx.Save(merged).Error
	})
}

// mergeProgress applies the overwrite rules onto the stored row. A completed
// video keeps its status and watched time; quiz answers are always replaced,
// but a completed quiz stays completed. RecordedAt always takes the write
// time.
func mergeProgress(existing, incoming *model.ProgressRecord) *model.ProgressRecord {
	existing.RecordedAt = incoming.RecordedAt
	if incoming.CourseID != "" && incoming.CourseID != model.NoParent {
		existing.CourseID = incoming.CourseID
	}
	if incoming.ChapterID != "" && incoming.ChapterID != model.NoParent {
		existing.ChapterID = incoming.ChapterID
	}

	switch existing.ComponentKind {
	case model.KindVideo:
		if existing.Status != model.StatusCompleted {
			existing.Status = incoming.Status
			existing.WatchedTime = incoming.WatchedTime
		}
	case model.KindQuiz:
		existing.Answers = incoming.Answers
		if existing.Status != model.StatusCompleted {
			existing.Status = incoming.Status
		}
	}
	return existing
}

func (r *ProgressRepository) FindByUser(userID string) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

func (r *ProgressRepository) FindByUserAndCourse(userID, courseID string) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&records).Error
	return records, err
}

func (r *ProgressRepository) FindByUserAndChapter(userID, chapterID string) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.DB.Where("user_id = ? AND chapter_id = ?", userID, chapterID).Find(&records).Error
	return records, err
}

func (r *ProgressRepository) FindByUserAndComponent(userID, componentID string) (*model.ProgressRecord, error) {
	var record model.ProgressRecord
	err := r.DB.Where("user_id = ? AND component_id = ?", userID, componentID).First(&record).Error
	return &record, err
}

func (r *ProgressRepository) FindByUserAndComponents(userID string, componentIDs []string) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	if len(componentIDs) == 0 {
		return records, nil
	}
	err := r.DB.Where("user_id = ? AND component_id IN ?", userID, componentIDs).Find(&records).Error
	return records, err
}

// ResetQuizStatus flips every user's record for one quiz back to incompleted,
// used when the quiz gains questions after users already finished it.
// LatestVideoInCourse is the user's most recent video record inside a real
// course; orphan records pinned to '0' do not qualify.
func (r *ProgressRepository) LatestVideoInCourse(userID string) (*model.ProgressRecord, error) {
	var rec model.ProgressRecord
	err := r.DB.Where("user_id = ? AND component_kind = ? AND course_id <> ?", userID, model.KindVideo, model.NoParent).
		Order("recorded_at DESC").First(&rec).Error
	return &rec, err
}

func (r *ProgressRepository) ResetQuizStatus(componentID string) error {
	return r.DB.Model(&model.ProgressRecord{}).
		Where("component_id = ? AND component_kind = ?", componentID, model.KindQuiz).
		Update("status", model.StatusIncomplete).Error
}

func (r *ProgressRepository) FindByComponent(componentID string) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.DB.Where("component_id = ?", componentID).Find(&records).Error
	return records, err
}

func (r *ProgressRepository) SaveRecord(record *model.ProgressRecord) error {
	return r.DB.Save(record).Error
}

func (r *ProgressRepository) UpsertCourseProgress(userID, courseID string, completed bool) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"completed": completed}),
	}).Create(&model.CourseProgress{UserID: userID, CourseID: courseID, Completed: completed}).Error
}

func (r *ProgressRepository) FindCourseProgress(userID string) ([]model.CourseProgress, error) {
	var rows []model.CourseProgress
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}
