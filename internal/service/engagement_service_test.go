package service

import (
	"context"
	"encoding/json"
	"testing"

	"poker_school_backend/internal/config"
	"poker_school_backend/internal/model"
	"poker_school_backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newEngagementFixture(t *testing.T) (*EngagementService, *gorm.DB) {
	db := newTestDB(t)
	media := NewMediaService(repository.NewUploadRepository(db), nil, &config.StorageConfig{}, zap.NewNop())
	svc := NewEngagementService(
		repository.NewBookmarkRepository(db),
		repository.NewLastSeenRepository(db),
		repository.NewComponentRepository(db),
		repository.NewChapterRepository(db),
		repository.NewMapperRepository(db),
		media,
		zap.NewNop(),
	)
	return svc, db
}

func TestToggleBookmarkRejectsUnknownKind(t *testing.T) {
	svc, _ := newEngagementFixture(t)
	if _, err := svc.ToggleBookmark("u1", "course", "c1"); err == nil {
		t.Fatalf("unknown bookmark type should be rejected")
	}
}

func TestBookmarkedQuizzesDropEmptyAndResolveBothTables(t *testing.T) {
	svc, db := newEngagementFixture(t)
	seedCourseTree(t, db)

	if err := db.Create(&model.FreeQuiz{UUIDBase: model.UUIDBase{ID: "fq1"}, Title: "Free Check", PublishedAt: published()}).Error; err != nil {
		t.Fatalf("seed free quiz: %v", err)
	}
	if err := db.Create(&model.Question{UUIDBase: model.UUIDBase{ID: "fqq1"}, OwnerID: "fq1", OwnerType: "free_quiz", Text: "Call?"}).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}

	for _, id := range []string{"q1", "q2", "fq1"} {
		if _, err := svc.ToggleBookmark("u1", "quiz", id); err != nil {
			t.Fatalf("bookmark %s: %v", id, err)
		}
	}

	quizzes, err := svc.BookmarkedQuizzes(context.Background(), "u1")
	if err != nil {
		t.Fatalf("BookmarkedQuizzes: %v", err)
	}
	if len(quizzes) != 2 {
		t.Fatalf("zero-question quiz should be dropped, got %d", len(quizzes))
	}
	for _, q := range quizzes {
		if q.ID == "q2" {
			t.Fatalf("q2 has no questions and must not appear")
		}
		if q.QuestionCount != 1 {
			t.Fatalf("question count off for %s: %d", q.ID, q.QuestionCount)
		}
	}
}

func TestLastSeenTreeAndSlotReplacement(t *testing.T) {
	svc, db := newEngagementFixture(t)
	seedCourseTree(t, db)

	items := []LastSeenItem{
		{ComponentID: "v1", ComponentType: "video", Progress: json.RawMessage(`{"watchedTime":12}`)},
		{ComponentID: "q1", ComponentType: "quiz", Progress: json.RawMessage(`{"answered":1}`), Answers: json.RawMessage(`{"qq1":["open"]}`)},
	}
	if err := svc.RecordLastSeen("u1", items); err != nil {
		t.Fatalf("RecordLastSeen: %v", err)
	}

	// same course and kind lands in the same slot
	replace := []LastSeenItem{
		{ComponentID: "v1", ComponentType: "video", Progress: json.RawMessage(`{"watchedTime":40}`)},
	}
	if err := svc.RecordLastSeen("u1", replace); err != nil {
		t.Fatalf("replace: %v", err)
	}

	tree, err := svc.LastSeen(context.Background(), "u1")
	if err != nil {
		t.Fatalf("LastSeen: %v", err)
	}
	if len(tree) != 1 || tree[0].CourseID != "c1" {
		t.Fatalf("want one course c1, got %+v", tree)
	}
	if len(tree[0].ChapterProgress) != 1 {
		t.Fatalf("both pointers sit in ch1, got %d chapters", len(tree[0].ChapterProgress))
	}
	ch := tree[0].ChapterProgress[0]
	if len(ch.VideoProgress) != 1 || len(ch.QuizProgress) != 1 {
		t.Fatalf("split off: %+v", ch)
	}
	if string(ch.VideoProgress[0].Progress) != `{"watchedTime":40}` {
		t.Fatalf("video slot not replaced: %s", ch.VideoProgress[0].Progress)
	}
	if string(ch.QuizProgress[0].Answers) != `{"qq1":["open"]}` {
		t.Fatalf("quiz answers lost: %s", ch.QuizProgress[0].Answers)
	}
}
