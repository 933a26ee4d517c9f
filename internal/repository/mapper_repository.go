package repository

import (
	"poker_school_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MapperRepository caches component -> (course, chapter) placements.
type MapperRepository struct {
	DB *gorm.DB
}

func NewMapperRepository(db *gorm.DB) *MapperRepository {
	return &MapperRepository{DB: db}
}

func (r *MapperRepository) FindByComponentID(componentID string) (*model.Mapper, error) {
	var m model.Mapper
	err := r.DB.Where("component_id = ?", componentID).First(&m).Error
	return &m, err
}

func (r *MapperRepository) Save(m *model.Mapper) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "component_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"course_id":  m.CourseID,
			"chapter_id": m.ChapterID,
		}),
	}).Create(m).Error
}

// Invalidate drops cached placements so the next lookup rebuilds them from
// the catalog. Called by the catalog-sync hook.
func (r *MapperRepository) Invalidate(componentIDs []string) error {
	// hard delete: a soft-deleted row would still occupy the unique index
	if len(componentIDs) == 0 {
		return r.DB.Unscoped().Where("1 = 1").Delete(&model.Mapper{}).Error
	}
	return r.DB.Unscoped().Where("component_id IN ?", componentIDs).Delete(&model.Mapper{}).Error
}
