package repository

import (
	"encoding/json"
	"testing"

	"poker_school_backend/internal/model"
)

func TestUpsertCreatesSingleRow(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	for i := 0; i < 3; i++ {
		err := repo.Upsert(&model.ProgressRecord{
			UserID:        "u1",
			ComponentID:   "vid1",
			ComponentKind: model.KindVideo,
			Status:        model.StatusIncomplete,
			WatchedTime:   float64(10 * (i + 1)),
		})
		if err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	var count int64
	repo.DB.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND component_id = ?", "u1", "vid1").Count(&count)
	if count != 1 {
		t.Fatalf("want 1 row after repeated upserts, got %d", count)
	}

	rec, err := repo.FindByUserAndComponent("u1", "vid1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.WatchedTime != 30 {
		t.Fatalf("want last watchedTime 30, got %v", rec.WatchedTime)
	}
}

func TestUpsertVideoNeverRegressesAfterCompletion(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	write := func(status model.ProgressStatus, watched float64) {
		t.Helper()
		err := repo.Upsert(&model.ProgressRecord{
			UserID:        "u1",
			ComponentID:   "vid1",
			ComponentKind: model.KindVideo,
			Status:        status,
			WatchedTime:   watched,
		})
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	write(model.StatusCompleted, 100)
	write(model.StatusIncomplete, 10)

	rec, err := repo.FindByUserAndComponent("u1", "vid1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.Status != model.StatusCompleted {
		t.Fatalf("completed video downgraded to %s", rec.Status)
	}
	if rec.WatchedTime != 100 {
		t.Fatalf("watchedTime regressed to %v", rec.WatchedTime)
	}

	// once completed the watched time is frozen, even for larger values
	write(model.StatusCompleted, 150)
	rec, _ = repo.FindByUserAndComponent("u1", "vid1")
	if rec.WatchedTime != 100 {
		t.Fatalf("completed watchedTime must stay 100, got %v", rec.WatchedTime)
	}
}

func TestUpsertQuizAnswersAlwaysReplaced(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	answers := func(m map[string][]string) []byte {
		raw, _ := json.Marshal(m)
		return raw
	}

	err := repo.Upsert(&model.ProgressRecord{
		UserID:        "u1",
		ComponentID:   "quiz1",
		ComponentKind: model.KindQuiz,
		Status:        model.StatusCompleted,
		Answers:       answers(map[string][]string{"q1": {"a"}}),
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	err = repo.Upsert(&model.ProgressRecord{
		UserID:        "u1",
		ComponentID:   "quiz1",
		ComponentKind: model.KindQuiz,
		Status:        model.StatusIncomplete,
		Answers:       answers(map[string][]string{"q1": {"b"}, "q2": {"c"}}),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rec, err := repo.FindByUserAndComponent("u1", "quiz1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.Status != model.StatusCompleted {
		t.Fatalf("completed quiz downgraded to %s", rec.Status)
	}
	var got map[string][]string
	if err := json.Unmarshal(rec.Answers, &got); err != nil {
		t.Fatalf("answers unreadable: %v", err)
	}
	if got["q1"][0] != "b" || len(got) != 2 {
		t.Fatalf("answers not replaced: %v", got)
	}
}

func TestUpsertCourseProgressIdempotent(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	if err := repo.UpsertCourseProgress("u1", "c1", false); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := repo.UpsertCourseProgress("u1", "c1", true); err != nil {
		t.Fatalf("second: %v", err)
	}

	rows, err := repo.FindCourseProgress("u1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want 1 course progress row, got %d", len(rows))
	}
	if !rows[0].Completed {
		t.Fatalf("completed flag not updated")
	}
}

func TestResetQuizStatus(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	for _, user := range []string{"u1", "u2"} {
		err := repo.Upsert(&model.ProgressRecord{
			UserID:        user,
			ComponentID:   "quiz1",
			ComponentKind: model.KindQuiz,
			Status:        model.StatusCompleted,
		})
		if err != nil {
			t.Fatalf("seed %s: %v", user, err)
		}
	}

	if err := repo.ResetQuizStatus("quiz1"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	records, err := repo.FindByComponent("quiz1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	for _, rec := range records {
		if rec.Status != model.StatusIncomplete {
			t.Fatalf("user %s still %s after reset", rec.UserID, rec.Status)
		}
	}
}
