package service

import (
	"testing"

	"poker_school_backend/internal/model"
	"poker_school_backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newProgressFixture(t *testing.T) (*ProgressService, *gorm.DB) {
	db := newTestDB(t)
	svc := NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewMapperRepository(db),
		repository.NewCourseRepository(db),
		repository.NewChapterRepository(db),
		repository.NewComponentRepository(db),
		repository.NewFeedbackRepository(db),
		nil,
		zap.NewNop(),
	)
	return svc, db
}

func TestWriteOneResolvesPlacementLazily(t *testing.T) {
	svc, db := newProgressFixture(t)

	if err := db.Create(&model.Chapter{UUIDBase: model.UUIDBase{ID: "ch1"}, CourseID: "c1", PublishedAt: published()}).Error; err != nil {
		t.Fatalf("seed chapter: %v", err)
	}
	if err := db.Create(&model.ChapterComponent{ChapterID: "ch1", ComponentID: "v1", ComponentKind: model.KindVideo}).Error; err != nil {
		t.Fatalf("seed ref: %v", err)
	}

	err := svc.writeOne("u1", ProgressWriteItem{
		ComponentID:   "v1",
		ComponentType: string(model.KindVideo),
		Status:        string(model.StatusCompleted),
		WatchedTime:   42,
	})
	if err != nil {
		t.Fatalf("writeOne: %v", err)
	}

	rec, err := svc.ProgressRepo.FindByUserAndComponent("u1", "v1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.CourseID != "c1" || rec.ChapterID != "ch1" {
		t.Fatalf("placement not resolved: course=%s chapter=%s", rec.CourseID, rec.ChapterID)
	}

	// the resolution is now cached
	m, err := svc.MapperRepo.FindByComponentID("v1")
	if err != nil {
		t.Fatalf("mapper entry missing: %v", err)
	}
	if m.CourseID != "c1" || m.ChapterID != "ch1" {
		t.Fatalf("mapper cached wrong placement: %+v", m)
	}
}

func TestWriteOneKeepsStatusVariants(t *testing.T) {
	svc, _ := newProgressFixture(t)

	err := svc.writeOne("u1", ProgressWriteItem{
		ComponentID:   "v1",
		ComponentType: string(model.KindVideo),
		Status:        "inProgress",
		WatchedTime:   10,
	})
	if err != nil {
		t.Fatalf("writeOne: %v", err)
	}

	rec, err := svc.ProgressRepo.FindByUserAndComponent("u1", "v1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.Status != "inProgress" {
		t.Fatalf("status variant not stored verbatim, got %q", rec.Status)
	}

	// an omitted status defaults to incompleted
	if err := svc.writeOne("u1", ProgressWriteItem{ComponentID: "v2", ComponentType: string(model.KindVideo)}); err != nil {
		t.Fatalf("writeOne: %v", err)
	}
	rec, err = svc.ProgressRepo.FindByUserAndComponent("u1", "v2")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.Status != model.StatusIncomplete {
		t.Fatalf("empty status should default to incompleted, got %q", rec.Status)
	}
}

func TestWriteOneOrphanPinsToNoParent(t *testing.T) {
	svc, _ := newProgressFixture(t)

	err := svc.writeOne("u1", ProgressWriteItem{
		ComponentID:   "free1",
		ComponentType: string(model.KindVideo),
		Status:        string(model.StatusCompleted),
	})
	if err != nil {
		t.Fatalf("writeOne: %v", err)
	}

	rec, err := svc.ProgressRepo.FindByUserAndComponent("u1", "free1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.CourseID != model.NoParent || rec.ChapterID != model.NoParent {
		t.Fatalf("orphan should pin to %q, got course=%s chapter=%s", model.NoParent, rec.CourseID, rec.ChapterID)
	}
}

func TestWriteOneRejectsUnknownKind(t *testing.T) {
	svc, _ := newProgressFixture(t)

	err := svc.writeOne("u1", ProgressWriteItem{ComponentID: "x", ComponentType: "podcast"})
	if err == nil {
		t.Fatalf("unknown component kind must be rejected")
	}
	if err := svc.writeOne("u1", ProgressWriteItem{ComponentType: "video"}); err == nil {
		t.Fatalf("missing component id must be rejected")
	}
}

func TestAllProgressGroupsByCourseAndChapter(t *testing.T) {
	svc, _ := newProgressFixture(t)

	seed := []model.ProgressRecord{
		{UserID: "u1", CourseID: "c1", ChapterID: "ch1", ComponentID: "v1", ComponentKind: model.KindVideo, Status: model.StatusCompleted},
		{UserID: "u1", CourseID: "c1", ChapterID: "ch1", ComponentID: "q1", ComponentKind: model.KindQuiz, Status: model.StatusIncomplete},
		{UserID: "u1", CourseID: "c1", ChapterID: "ch2", ComponentID: "v2", ComponentKind: model.KindVideo, Status: model.StatusIncomplete},
	}
	for i := range seed {
		rec := seed[i]
		if err := svc.ProgressRepo.Upsert(&rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if err := svc.ProgressRepo.UpsertCourseProgress("u1", "c1", true); err != nil {
		t.Fatalf("seed course flag: %v", err)
	}

	tree, err := svc.AllProgress("u1")
	if err != nil {
		t.Fatalf("AllProgress: %v", err)
	}
	if len(tree) != 1 {
		t.Fatalf("want 1 course, got %d", len(tree))
	}
	course := tree[0]
	if !course.Completed {
		t.Fatalf("course completed flag lost")
	}
	if len(course.Chapters) != 2 {
		t.Fatalf("want 2 chapters, got %d", len(course.Chapters))
	}
	first := course.Chapters[0]
	if len(first.VideoProgress) != 1 || len(first.QuizProgress) != 1 {
		t.Fatalf("chapter ch1 split wrong: %d videos, %d quizzes",
			len(first.VideoProgress), len(first.QuizProgress))
	}
}
