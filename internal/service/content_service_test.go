package service

import (
	"context"
	"testing"
	"time"

	"poker_school_backend/internal/config"
	"poker_school_backend/internal/model"
	"poker_school_backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newContentFixture(t *testing.T) (*ContentService, *gorm.DB) {
	db := newTestDB(t)
	media := NewMediaService(repository.NewUploadRepository(db), nil, &config.StorageConfig{}, zap.NewNop())
	svc := NewContentService(repository.NewContentRepository(db), nil, media)
	return svc, db
}

func TestLiveStreamsTagFilterAndOrder(t *testing.T) {
	svc, db := newContentFixture(t)

	early := time.Now().Add(1 * time.Hour)
	late := time.Now().Add(2 * time.Hour)
	streams := []model.LiveStream{
		{Title: "Cash game review", URL: "dQw4w9WgXcQ", Tags: datatypes.JSON([]byte(`["cash","review"]`)), StartsAt: &late, PublishedAt: published()},
		{Title: "MTT study", URL: "https://youtu.be/abc123", Tags: datatypes.JSON([]byte(`["mtt"]`)), StartsAt: &early, PublishedAt: published()},
		{Title: "Draft", Tags: datatypes.JSON([]byte(`["cash"]`))},
	}
	for i := range streams {
		if err := db.Create(&streams[i]).Error; err != nil {
			t.Fatalf("seed stream: %v", err)
		}
	}

	all, err := svc.LiveStreams(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("LiveStreams: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 published streams, got %d", len(all))
	}
	if all[0].Title != "MTT study" {
		t.Fatalf("expected earliest stream first, got %q", all[0].Title)
	}
	if all[1].URL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Fatalf("bare video id not normalized: %q", all[1].URL)
	}

	cash, err := svc.LiveStreams(context.Background(), "", "cash", "")
	if err != nil {
		t.Fatalf("LiveStreams(tag): %v", err)
	}
	if len(cash) != 1 || cash[0].Title != "Cash game review" {
		t.Fatalf("tag filter returned %+v", cash)
	}

	one, err := svc.LiveStreams(context.Background(), streams[1].ID, "", "")
	if err != nil {
		t.Fatalf("LiveStreams(streamId): %v", err)
	}
	if len(one) != 1 || one[0].ID != streams[1].ID {
		t.Fatalf("streamId filter returned %+v", one)
	}
}

func TestPopupsByDay(t *testing.T) {
	svc, db := newContentFixture(t)

	popups := []model.Popup{
		{Title: "Welcome", Day: "1", PublishedAt: published()},
		{Title: "Keep going", Day: "2", PublishedAt: published()},
		{Title: "Unpublished", Day: "1"},
	}
	for i := range popups {
		if err := db.Create(&popups[i]).Error; err != nil {
			t.Fatalf("seed popup: %v", err)
		}
	}

	dayOne, err := svc.Popups(context.Background(), "1")
	if err != nil {
		t.Fatalf("Popups: %v", err)
	}
	if len(dayOne) != 1 || dayOne[0].Title != "Welcome" {
		t.Fatalf("day filter returned %+v", dayOne)
	}

	all, err := svc.Popups(context.Background(), "")
	if err != nil {
		t.Fatalf("Popups(all): %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 published popups, got %d", len(all))
	}
}
