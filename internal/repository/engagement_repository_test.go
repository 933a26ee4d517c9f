package repository

import (
	"testing"

	"poker_school_backend/internal/model"
)

func TestBookmarkToggle(t *testing.T) {
	repo := NewBookmarkRepository(newTestDB(t))

	on, err := repo.Toggle("u1", model.BookmarkVideo, "vid1")
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !on {
		t.Fatalf("first toggle should bookmark")
	}

	off, err := repo.Toggle("u1", model.BookmarkVideo, "vid1")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if off {
		t.Fatalf("second toggle should remove the bookmark")
	}

	bookmarks, err := repo.FindByUserAndKind("u1", model.BookmarkVideo)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(bookmarks) != 0 {
		t.Fatalf("want no bookmarks after toggle off, got %d", len(bookmarks))
	}
}

func TestBookmarkKindsKeptApart(t *testing.T) {
	repo := NewBookmarkRepository(newTestDB(t))

	if _, err := repo.Toggle("u1", model.BookmarkVideo, "vid1"); err != nil {
		t.Fatalf("video toggle: %v", err)
	}
	if _, err := repo.Toggle("u1", model.BookmarkQuiz, "quiz1"); err != nil {
		t.Fatalf("quiz toggle: %v", err)
	}

	quizzes, err := repo.FindByUserAndKind("u1", model.BookmarkQuiz)
	if err != nil {
		t.Fatalf("find quizzes: %v", err)
	}
	if len(quizzes) != 1 || quizzes[0].ItemID != "quiz1" {
		t.Fatalf("quiz list wrong: %+v", quizzes)
	}
}

func TestLastSeenReplacesSlot(t *testing.T) {
	repo := NewLastSeenRepository(newTestDB(t))

	first := &model.LastSeen{UserID: "u1", CourseID: "c1", ComponentKind: model.KindVideo, ChapterID: "ch1", ComponentID: "vid1"}
	if err := repo.Record(first); err != nil {
		t.Fatalf("first record: %v", err)
	}
	second := &model.LastSeen{UserID: "u1", CourseID: "c1", ComponentKind: model.KindVideo, ChapterID: "ch2", ComponentID: "vid2"}
	if err := repo.Record(second); err != nil {
		t.Fatalf("second record: %v", err)
	}
	quiz := &model.LastSeen{UserID: "u1", CourseID: "c1", ComponentKind: model.KindQuiz, ChapterID: "ch1", ComponentID: "quiz1"}
	if err := repo.Record(quiz); err != nil {
		t.Fatalf("quiz record: %v", err)
	}

	rows, err := repo.FindByUser("u1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want one slot per (course, kind), got %d rows", len(rows))
	}
	for _, r := range rows {
		if r.ComponentKind == model.KindVideo && r.ComponentID != "vid2" {
			t.Fatalf("video slot not replaced: %+v", r)
		}
	}
}

func TestFeedbackUpsertAndAverage(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))

	if err := repo.Upsert("u1", "vid1", 2); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert("u1", "vid1", 4); err != nil {
		t.Fatalf("repeat upsert: %v", err)
	}
	if err := repo.Upsert("u2", "vid1", 2); err != nil {
		t.Fatalf("second user: %v", err)
	}

	fb, err := repo.FindByUserAndVideo("u1", "vid1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if fb.Rating != 4 {
		t.Fatalf("rating not overwritten, got %d", fb.Rating)
	}

	avg, count, err := repo.AverageForVideo("vid1")
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if count != 2 || avg != 3 {
		t.Fatalf("want avg 3 over 2 ratings, got %v over %d", avg, count)
	}
}

func TestMapperInvalidate(t *testing.T) {
	repo := NewMapperRepository(newTestDB(t))

	for _, id := range []string{"comp1", "comp2"} {
		err := repo.Save(&model.Mapper{
			ComponentID:   id,
			ComponentKind: model.KindVideo,
			CourseID:      "c1",
			ChapterID:     "ch1",
		})
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	if err := repo.Invalidate([]string{"comp1"}); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := repo.FindByComponentID("comp1"); err == nil {
		t.Fatalf("comp1 should be gone")
	}
	if _, err := repo.FindByComponentID("comp2"); err != nil {
		t.Fatalf("comp2 should survive: %v", err)
	}
}
