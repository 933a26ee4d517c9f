package repository

import (
	"poker_school_backend/internal/model"

	"gorm.io/gorm"
)

type UploadRepository struct {
	DB *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{DB: db}
}

func (r *UploadRepository) FindByID(id string) (*model.UploadFile, error) {
	var file model.UploadFile
	err := r.DB.Where("id = ?", id).First(&file).Error
	return &file, err
}

func (r *UploadRepository) FindByIDs(ids []string) ([]model.UploadFile, error) {
	var files []model.UploadFile
	if len(ids) == 0 {
		return files, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&files).Error
	return files, err
}
