package service

import (
	"context"
	"testing"

	"poker_school_backend/internal/config"
	"poker_school_backend/internal/model"
	"poker_school_backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newRecommendationFixture(t *testing.T) (*RecommendationService, *gorm.DB) {
	db := newTestDB(t)
	media := NewMediaService(repository.NewUploadRepository(db), nil, &config.StorageConfig{}, zap.NewNop())
	content := NewContentService(repository.NewContentRepository(db), nil, media)
	svc := NewRecommendationService(
		repository.NewProgressRepository(db),
		repository.NewChapterRepository(db),
		repository.NewComponentRepository(db),
		content,
		media,
	)
	return svc, db
}

func seedVideoProgress(t *testing.T, db *gorm.DB, userID, componentID, courseID, chapterID string, status model.ProgressStatus) {
	t.Helper()
	repo := repository.NewProgressRepository(db)
	err := repo.Upsert(&model.ProgressRecord{
		UserID:        userID,
		CourseID:      courseID,
		ChapterID:     chapterID,
		ComponentID:   componentID,
		ComponentKind: model.KindVideo,
		Status:        status,
	})
	if err != nil {
		t.Fatalf("seed progress %s: %v", componentID, err)
	}
}

func TestRecommendFallsBackToFeedsWithoutHistory(t *testing.T) {
	svc, db := newRecommendationFixture(t)

	if err := db.Create(&model.Feed{Title: "Weekly roundup", PublishedAt: published()}).Error; err != nil {
		t.Fatalf("seed feed: %v", err)
	}

	rec, err := svc.Recommend(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Kind != RecommendFeeds {
		t.Fatalf("want feeds fallback, got %q", rec.Kind)
	}
	feeds, ok := rec.Data.([]FeedItem)
	if !ok || len(feeds) != 1 {
		t.Fatalf("feed payload wrong: %+v", rec.Data)
	}
}

func TestRecommendResumesUnfinishedVideo(t *testing.T) {
	svc, db := newRecommendationFixture(t)
	seedCourseTree(t, db)

	seedVideoProgress(t, db, "u1", "v1", "c1", "ch1", model.StatusIncomplete)

	rec, err := svc.Recommend(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Kind != RecommendResume {
		t.Fatalf("want resume, got %q", rec.Kind)
	}
	ptr, ok := rec.Data.(ResumePointer)
	if !ok || ptr.ComponentID != "v1" || ptr.CourseID != "c1" {
		t.Fatalf("resume pointer wrong: %+v", rec.Data)
	}
}

func TestRecommendListsRemainingCourseVideos(t *testing.T) {
	svc, db := newRecommendationFixture(t)
	seedCourseTree(t, db)

	// a second video in the chapter stays unwatched
	if err := db.Create(&model.Video{UUIDBase: model.UUIDBase{ID: "v2"}, Title: "Threebet Pots", URL: "def456", Order: 4, PublishedAt: published()}).Error; err != nil {
		t.Fatalf("seed video: %v", err)
	}
	if err := db.Create(&model.ChapterComponent{ChapterID: "ch1", ComponentID: "v2", ComponentKind: model.KindVideo, Position: 4}).Error; err != nil {
		t.Fatalf("seed ref: %v", err)
	}

	seedVideoProgress(t, db, "u1", "v1", "c1", "ch1", model.StatusCompleted)

	rec, err := svc.Recommend(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Kind != RecommendVideos {
		t.Fatalf("want remaining videos, got %q", rec.Kind)
	}
	videos, ok := rec.Data.([]RecommendedVideo)
	if !ok || len(videos) != 1 {
		t.Fatalf("video payload wrong: %+v", rec.Data)
	}
	if videos[0].ID != "v2" {
		t.Fatalf("completed video must be excluded, got %s", videos[0].ID)
	}
	if videos[0].URL != "https://www.youtube.com/watch?v=def456" {
		t.Fatalf("bare video id not normalized: %q", videos[0].URL)
	}
}

func TestRecommendFeedsWhenCourseFullyWatched(t *testing.T) {
	svc, db := newRecommendationFixture(t)
	seedCourseTree(t, db)

	if err := db.Create(&model.Feed{Title: "Fresh strategy", PublishedAt: published()}).Error; err != nil {
		t.Fatalf("seed feed: %v", err)
	}
	seedVideoProgress(t, db, "u1", "v1", "c1", "ch1", model.StatusCompleted)

	// v1 is the only video in the course, so nothing is left to recommend
	rec, err := svc.Recommend(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Kind != RecommendFeeds {
		t.Fatalf("course fully watched, want feeds fallback, got %q", rec.Kind)
	}
}
