package service

import (
	"context"
	"net/url"
	"time"

	"poker_school_backend/internal/config"
	"poker_school_backend/internal/repository"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MediaService turns upload-table ids into URLs the app can fetch. Files with
// a stored absolute URL pass through; files kept in the object store get a
// presigned URL.
type MediaService struct {
	UploadRepo *repository.UploadRepository
	Minio      *minio.Client
	Config     *config.StorageConfig
	Logger     *zap.Logger
}

func NewMediaService(uploadRepo *repository.UploadRepository, mc *minio.Client, cfg *config.StorageConfig, logger *zap.Logger) *MediaService {
	return &MediaService{
		UploadRepo: uploadRepo,
		Minio:      mc,
		Config:     cfg,
		Logger:     logger,
	}
}

// ResolveFileURL returns "" for a missing or unresolvable file; thumbnails
// are decoration and must not fail the surrounding request.
func (s *MediaService) ResolveFileURL(ctx context.Context, fileID string) string {
	if fileID == "" {
		return ""
	}
	file, err := s.UploadRepo.FindByID(fileID)
	if err != nil {
		return ""
	}
	if file.URL != "" {
		return file.URL
	}
	if file.ObjectKey == "" || s.Minio == nil {
		return ""
	}

	presigned, err := s.Minio.PresignedGetObject(ctx, s.Config.MinioBucket, file.ObjectKey,
		time.Duration(s.Config.URLExpiryHours)*time.Hour, url.Values{})
	if err != nil {
		s.Logger.Warn("presign failed", zap.String("objectKey", file.ObjectKey), zap.Error(err))
		return ""
	}
	return presigned.String()
}

// ResolveFileURLs resolves a batch in one table read.
func (s *MediaService) ResolveFileURLs(ctx context.Context, fileIDs []string) map[string]string {
	out := make(map[string]string, len(fileIDs))
	dedup := make([]string, 0, len(fileIDs))
	for _, id := range fileIDs {
		if id == "" {
			continue
		}
		if _, seen := out[id]; seen {
			continue
		}
		out[id] = ""
		dedup = append(dedup, id)
	}
	files, err := s.UploadRepo.FindByIDs(dedup)
	if err != nil {
		return out
	}
	for _, f := range files {
		if f.URL != "" {
			out[f.ID] = f.URL
			continue
		}
		if f.ObjectKey != "" && s.Minio != nil {
			presigned, err := s.Minio.PresignedGetObject(ctx, s.Config.MinioBucket, f.ObjectKey,
				time.Duration(s.Config.URLExpiryHours)*time.Hour, url.Values{})
			if err == nil {
				out[f.ID] = presigned.String()
			}
		}
	}
	return out
}
